// Package dashboard owns the dashboard state: connectivity mode, ledger
// history, the last lookup result and the event log. Views only ever see
// Snapshot values; changes come in as poll outcomes and user intents.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dashboard/internal/eventlog"
	"dashboard/internal/metrics"
	"dashboard/internal/models"
)

// Source is the part of the reporting API the dashboard consumes
type Source interface {
	LatestLedger(ctx context.Context) (models.LedgerSummary, error)
	Account(ctx context.Context, accountID string) (models.AccountRecord, error)
	Transaction(ctx context.Context, hash string) (models.TransactionRecord, error)
}

// Publisher receives a snapshot after every state change
type Publisher interface {
	Publish(ctx context.Context, snap Snapshot)
}

// Snapshot is a read-only copy of the dashboard state
type Snapshot struct {
	Mode           models.ConnectivityMode `json:"mode"`
	Latest         *models.LedgerSummary   `json:"latest_ledger"`
	Ledgers        []models.LedgerSummary  `json:"ledgers"`
	TotalSeries    []int                   `json:"total_tx_series"`
	FilteredSeries []int                   `json:"filtered_tx_series"`
	Account        *models.AccountRecord   `json:"account,omitempty"`
	LookupError    string                  `json:"lookup_error,omitempty"`
	Searching      bool                    `json:"searching"`
	Log            []models.LogEntry       `json:"log"`
	Consent        models.Consent          `json:"consent"`
	TakenAt        time.Time               `json:"taken_at"`
}

// Dashboard is the single owner of all mutable dashboard state
type Dashboard struct {
	mu        sync.RWMutex
	model     Model
	account   *models.AccountRecord
	lookupErr string
	searching int
	consent   models.Consent

	log       *eventlog.Log
	publisher Publisher
}

// New creates a dashboard seeded with the startup log lines
func New(log *eventlog.Log, consent models.Consent) *Dashboard {
	if log == nil {
		log = eventlog.New()
	}
	log.Info("Pakana Dashboard initialized")
	log.Info("Connecting to Reporting API...")

	return &Dashboard{
		model:   NewModel(),
		consent: consent,
		log:     log,
	}
}

// SetPublisher registers the receiver of snapshots
func (d *Dashboard) SetPublisher(p Publisher) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.publisher = p
}

// Log returns the event log
func (d *Dashboard) Log() *eventlog.Log {
	return d.log
}

// Mode returns the current connectivity mode
func (d *Dashboard) Mode() models.ConnectivityMode {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.model.Mode
}

// Latest returns the displayed ledger, or nil before the first poll
func (d *Dashboard) Latest() *models.LedgerSummary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.model.Latest()
}

// Consent returns the analytics consent choice read at startup or set since
func (d *Dashboard) Consent() models.Consent {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.consent
}

// SetConsent records a new consent choice
func (d *Dashboard) SetConsent(ctx context.Context, c models.Consent) {
	d.mu.Lock()
	d.consent = c
	d.mu.Unlock()
	d.publish(ctx)
}

// ApplyPoll folds a poll outcome into the state and reports whether a new
// ledger was ingested.
func (d *Dashboard) ApplyPoll(ctx context.Context, outcome PollOutcome) bool {
	d.mu.Lock()
	prev := d.model
	next, ingested := Reduce(prev, outcome)
	d.model = next
	d.mu.Unlock()

	if prev.Mode != next.Mode {
		slog.Info("Connectivity mode changed", "from", prev.Mode, "to", next.Mode)
	}
	if next.Mode == models.ModeOnline {
		metrics.Online.Set(1)
	} else {
		metrics.Online.Set(0)
	}

	if !ingested {
		metrics.DuplicatePolls.Inc()
		slog.Debug("Ledger already displayed", "sequence", outcome.Ledger.Sequence)
		return false
	}

	metrics.LedgersIngested.Inc()
	metrics.CurrentLedger.Set(float64(outcome.Ledger.Sequence))

	if ShouldAnnounce(prev.Latest() == nil, outcome.Ledger.Sequence) {
		d.log.Info(fmt.Sprintf("Ingested Ledger #%d (%d txs, %d filtered)",
			outcome.Ledger.Sequence, outcome.Ledger.TotalTxCount, outcome.Ledger.FilteredTxCount))
	}

	d.publish(ctx)
	return true
}

// Snapshot returns a copy of the current state
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := Snapshot{
		Mode:           d.model.Mode,
		Latest:         d.model.Latest(),
		Ledgers:        d.model.History.Ledgers(),
		TotalSeries:    d.model.History.TotalSeries(),
		FilteredSeries: d.model.History.FilteredSeries(),
		LookupError:    d.lookupErr,
		Searching:      d.searching > 0,
		Log:            d.log.Entries(),
		Consent:        d.consent,
		TakenAt:        time.Now().UTC(),
	}
	if d.account != nil {
		account := d.account.Clone()
		snap.Account = &account
	}
	return snap
}

// beginLookup clears the previous result, as the search form does on submit
func (d *Dashboard) beginLookup() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.searching++
	d.account = nil
	d.lookupErr = ""
}

// finishLookup stores whichever lookup lands; there is no sequencing between
// concurrent lookups, the last one to finish wins.
func (d *Dashboard) finishLookup(ctx context.Context, account *models.AccountRecord, err error) {
	d.mu.Lock()
	if d.searching > 0 {
		d.searching--
	}
	if err != nil {
		d.account = nil
		d.lookupErr = err.Error()
	} else {
		clone := account.Clone()
		d.account = &clone
		d.lookupErr = ""
	}
	d.mu.Unlock()

	d.publish(ctx)
}

func (d *Dashboard) publish(ctx context.Context) {
	d.mu.RLock()
	p := d.publisher
	d.mu.RUnlock()
	if p == nil {
		return
	}
	p.Publish(ctx, d.Snapshot())
}
