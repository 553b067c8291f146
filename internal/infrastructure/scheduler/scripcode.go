// Package scheduler runs the periodic scrip-code rewrite job. It lives off
// the request path: the field it touches is not part of any unique
// constraint, so the job cannot collide with the membership invariants.
package scheduler

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/tradingportal/companies-api/internal/api/metrics"
	"github.com/tradingportal/companies-api/internal/core/ports"
)

const defaultInterval = time.Hour

// ScripCodeJob periodically rewrites every company's scrip code.
type ScripCodeJob struct {
	companies ports.CompanyRepository
	interval  time.Duration
	log       zerolog.Logger
}

// NewScripCodeJob creates the job. If interval <= 0, defaultInterval is used.
func NewScripCodeJob(companies ports.CompanyRepository, interval time.Duration, log zerolog.Logger) *ScripCodeJob {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &ScripCodeJob{companies: companies, interval: interval, log: log}
}

// Start launches the job loop. It stops when ctx is cancelled.
func (j *ScripCodeJob) Start(ctx context.Context) {
	go j.run(ctx)
}

func (j *ScripCodeJob) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.RunOnce(ctx); err != nil {
				j.log.Error().Err(err).Msg("scrip-code rewrite failed")
			}
		}
	}
}

// RunOnce rewrites the scrip code of every company. Failures on individual
// rows are logged and skipped so one bad row does not stall the sweep.
func (j *ScripCodeJob) RunOnce(ctx context.Context) error {
	ids, err := j.companies.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("scripcode sweep: %w", err)
	}

	updated := 0
	for _, id := range ids {
		code := fmt.Sprintf("%06d", 100000+rand.Intn(900000))
		if err := j.companies.SetScripCode(ctx, id, code); err != nil {
			j.log.Warn().Err(err).Int64("company_id", id).Msg("scripcode update skipped")
			continue
		}
		updated++
		metrics.ScripCodeRewritesTotal.Inc()
	}

	j.log.Info().Int("updated", updated).Int("total", len(ids)).Msg("scrip codes rewritten")
	return nil
}
