package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// SweepWorker drives the expiry sweeper on a fixed interval
type SweepWorker struct {
	sweeper  SweeperService
	interval time.Duration
	cron     *cron.Cron
}

// NewSweepWorker creates a new sweep worker
func NewSweepWorker(sweeper SweeperService, interval time.Duration) *SweepWorker {
	return &SweepWorker{
		sweeper:  sweeper,
		interval: interval,
	}
}

// Start schedules the periodic sweep and returns a stop function. The
// sweep also stops when ctx is cancelled.
func (w *SweepWorker) Start(ctx context.Context) (func(), error) {
	c := cron.New()

	_, err := c.AddFunc(fmt.Sprintf("@every %s", w.interval), func() {
		settled, err := w.sweeper.SweepExpired(ctx)
		if err != nil {
			log.Errorf("Expiry sweep failed: %v", err)
			return
		}
		if settled > 0 {
			log.WithField("settled", settled).Info("Expiry sweep settled auctions")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule expiry sweep: %w", err)
	}

	c.Start()
	w.cron = c
	log.Infof("Expiry sweeper started, running every %s", w.interval)

	go func() {
		<-ctx.Done()
		log.Info("Expiry sweeper shutting down (context cancelled)...")
		c.Stop()
	}()

	return func() {
		stopCtx := c.Stop()
		// Wait for an in-flight sweep to finish
		<-stopCtx.Done()
	}, nil
}
