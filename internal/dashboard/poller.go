package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dashboard/internal/metrics"
	"dashboard/internal/models"
	"dashboard/internal/simulation"

	"github.com/go-co-op/gocron"
)

// LedgerSource fetches the latest ledger summary
type LedgerSource interface {
	LatestLedger(ctx context.Context) (models.LedgerSummary, error)
}

// Poller fetches the latest ledger on a fixed cadence and falls back to a
// synthesized ledger whenever the request fails. There is no backoff: a
// failing API is retried at the same interval forever.
type Poller struct {
	source   LedgerSource
	synth    *simulation.Synthesizer
	dash     *Dashboard
	interval time.Duration

	scheduler *gocron.Scheduler
	stopOnce  sync.Once
}

// NewPoller creates a poller; Start schedules it
func NewPoller(source LedgerSource, synth *simulation.Synthesizer, dash *Dashboard, interval time.Duration) *Poller {
	return &Poller{
		source:   source,
		synth:    synth,
		dash:     dash,
		interval: interval,
	}
}

// Resolve turns a fetch result into a poll outcome. A failed fetch yields a
// synthesized successor of prev and an offline outcome.
func Resolve(prev *models.LedgerSummary, fetched models.LedgerSummary, err error, synth *simulation.Synthesizer) PollOutcome {
	if err != nil {
		return PollOutcome{Ledger: synth.NextLedger(prev), Online: false}
	}
	return PollOutcome{Ledger: fetched, Online: true}
}

// Poll runs a single tick: fetch, fall back if needed, apply
func (p *Poller) Poll(ctx context.Context) PollOutcome {
	start := time.Now()
	fetched, err := p.source.LatestLedger(ctx)
	metrics.PollDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		slog.Warn("Reporting API unreachable, switching to simulation", "error", err)
		metrics.PollsTotal.WithLabelValues("simulated").Inc()
	} else {
		metrics.PollsTotal.WithLabelValues("api").Inc()
	}

	outcome := Resolve(p.dash.Latest(), fetched, err, p.synth)
	if p.dash.ApplyPoll(ctx, outcome) {
		slog.Debug("Ledger ingested",
			"sequence", outcome.Ledger.Sequence,
			"online", outcome.Online,
			"total_tx", outcome.Ledger.TotalTxCount,
			"filtered_tx", outcome.Ledger.FilteredTxCount,
		)
	}
	return outcome
}

// Start polls once immediately and then every interval until ctx is
// cancelled or Stop is called. Ticks are not serialised: a slow request can
// overlap with the next tick.
func (p *Poller) Start(ctx context.Context) error {
	if p.interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", p.interval)
	}

	p.scheduler = gocron.NewScheduler(time.UTC)
	if _, err := p.scheduler.Every(p.interval).StartImmediately().Do(func() {
		p.Poll(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule poller: %w", err)
	}

	slog.Info("Starting ledger poller", "interval", p.interval)
	p.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		p.Stop()
	}()
	return nil
}

// Stop halts the schedule. In-flight requests are not aborted.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		if p.scheduler != nil {
			p.scheduler.Stop()
			slog.Info("Ledger poller stopped")
		}
	})
}
