package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"dashboard/internal/apiclient"
	"dashboard/internal/metrics"
	"dashboard/internal/models"
	"dashboard/internal/simulation"

	"github.com/stellar/go/strkey"
)

// QueryKind is the shape a lookup query matched
type QueryKind string

const (
	QueryInvalid     QueryKind = "invalid"
	QueryAccount     QueryKind = "account"
	QueryTransaction QueryKind = "transaction"
)

var (
	accountIDPattern = regexp.MustCompile(`^G[A-Z2-7]{55}$`)
	txHashPattern    = regexp.MustCompile(`^[0-9a-f]{64}$`)
)

// ClassifyQuery matches a query against the public-key and transaction-hash
// shapes. Only the shape is checked, not the strkey checksum.
func ClassifyQuery(query string) QueryKind {
	switch {
	case accountIDPattern.MatchString(query):
		return QueryAccount
	case txHashPattern.MatchString(query):
		return QueryTransaction
	default:
		return QueryInvalid
	}
}

// Looker resolves user lookups against the reporting API, or against the
// simulator while the dashboard is offline.
type Looker struct {
	source Source
	synth  *simulation.Synthesizer
	dash   *Dashboard
	delay  time.Duration
}

// NewLooker creates a Looker; delay is the simulated offline latency
func NewLooker(source Source, synth *simulation.Synthesizer, dash *Dashboard, delay time.Duration) *Looker {
	return &Looker{source: source, synth: synth, dash: dash, delay: delay}
}

// Lookup validates the query, resolves it and records the outcome on the
// dashboard. In-flight lookups are never cancelled by newer ones.
func (l *Looker) Lookup(ctx context.Context, query string) (models.AccountRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.AccountRecord{}, ErrEmptyQuery
	}

	kind := ClassifyQuery(query)
	l.dash.beginLookup()

	account, err := l.resolve(ctx, kind, query)

	metrics.LookupsTotal.WithLabelValues(string(kind), outcomeLabel(err)).Inc()
	if err != nil {
		slog.Debug("Lookup failed", "kind", kind, "query", query, "error", err)
		l.dash.Log().Error("Search failed: " + err.Error())
		l.dash.finishLookup(ctx, nil, err)
		return models.AccountRecord{}, err
	}

	l.dash.finishLookup(ctx, &account, nil)
	return account, nil
}

func (l *Looker) resolve(ctx context.Context, kind QueryKind, query string) (models.AccountRecord, error) {
	if kind == QueryInvalid {
		return models.AccountRecord{}, ErrInvalidFormat
	}

	if kind == QueryAccount && !strkey.IsValidEd25519PublicKey(query) {
		l.dash.Log().Warn(fmt.Sprintf("Account ID %s... does not pass the strkey checksum", abbreviate(query)))
	}

	if l.dash.Mode() == models.ModeOffline {
		return l.simulate(ctx, kind, query)
	}

	switch kind {
	case QueryAccount:
		account, err := l.source.Account(ctx, query)
		if err != nil {
			return models.AccountRecord{}, lookupError("account", err)
		}
		l.dash.Log().Success(fmt.Sprintf("Account found: %s...", abbreviate(account.AccountID)))
		return account, nil

	default:
		if _, err := l.source.Transaction(ctx, query); err != nil {
			return models.AccountRecord{}, lookupError("transaction", err)
		}
		// The fetch succeeded but there is no transaction view yet.
		return models.AccountRecord{}, ErrNotImplemented
	}
}

func (l *Looker) simulate(ctx context.Context, kind QueryKind, query string) (models.AccountRecord, error) {
	select {
	case <-ctx.Done():
		return models.AccountRecord{}, ctx.Err()
	case <-time.After(l.delay):
	}

	if kind == QueryTransaction {
		return models.AccountRecord{}, ErrSimulationUnavailable
	}

	account := l.synth.Account(query)
	l.dash.Log().Success(fmt.Sprintf("Account lookup: %s... (simulated)", abbreviate(query)))
	return account, nil
}

// lookupError maps reporting API failures onto user-facing lookup errors
func lookupError(what string, err error) error {
	var statusErr *apiclient.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s lookup failed: %w", what, err)
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidFormat):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNotImplemented), errors.Is(err, ErrSimulationUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

func abbreviate(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8]
}
