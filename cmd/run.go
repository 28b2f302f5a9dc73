package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"auctionhouse/config"
	"auctionhouse/database"
	"auctionhouse/events"
	"auctionhouse/repository"
	"auctionhouse/service"
)

// Run initializes and starts the application. The request layer that
// exposes the services is deployed separately; this process owns the
// expiry sweeper.
func Run(ctx context.Context) error {
	log.Println("Starting auction house...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Start the expiry sweeper
	sweeperService := service.NewSweeperService(uowFactory)
	sweepWorker := service.NewSweepWorker(sweeperService, cfg.SweepInterval)
	stopSweeper, err := sweepWorker.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start expiry sweeper: %w", err)
	}

	// Wait for context cancellation
	log.Printf("Auction house is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down...")
	stopSweeper()

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
