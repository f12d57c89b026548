// Package scheduler runs the daily valuation report job.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"fonfolio/internal/service"
)

// reportTimeout bounds one report run, covering the store read and all
// price lookups.
const reportTimeout = 2 * time.Minute

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	cron      *cron.Cron
	portfolio *service.PortfolioService
}

// New creates a scheduler with the daily valuation report registered at the
// given cron schedule. An empty schedule disables the job.
func New(schedule string, portfolio *service.PortfolioService) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		portfolio: portfolio,
	}

	if schedule != "" {
		if _, err := s.cron.AddFunc(schedule, s.runValuationReport); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the cron runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// runValuationReport lists the valued portfolio and logs the totals. Job
// failures are logged, never fatal; the next scheduled run simply tries
// again.
func (s *Scheduler) runValuationReport() {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	holdings, summary, err := s.portfolio.ListValuedHoldings(ctx)
	if err != nil {
		log.Printf("valuation report failed: %v", err)
		return
	}

	unpriced := 0
	for _, h := range holdings {
		if !h.Priced() {
			unpriced++
		}
	}

	log.Printf(
		"valuation report: %d holdings (%d without price), cost %s, value %s, gain %s (%s%%)",
		len(holdings),
		unpriced,
		summary.TotalCost.StringFixed(2),
		summary.TotalValue.StringFixed(2),
		summary.TotalGain.StringFixed(2),
		summary.TotalGainPct.StringFixed(2),
	)
}
