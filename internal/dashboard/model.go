package dashboard

import (
	"dashboard/internal/history"
	"dashboard/internal/models"
)

// Model is the polled part of the dashboard state
type Model struct {
	Mode    models.ConnectivityMode
	History history.Window
}

// NewModel returns the state before the first poll
func NewModel() Model {
	return Model{Mode: models.ModeOnline, History: history.New()}
}

// Latest returns the displayed ledger, or nil before the first poll
func (m Model) Latest() *models.LedgerSummary {
	l, ok := m.History.Latest()
	if !ok {
		return nil
	}
	return &l
}

// PollOutcome is the result of one poll attempt after simulation fallback
type PollOutcome struct {
	Ledger models.LedgerSummary
	Online bool
}

// Reduce applies a poll outcome to prev and reports whether a new ledger was
// ingested. The connectivity mode always follows the outcome; a sequence equal
// to the displayed one leaves the history untouched. prev is not modified.
func Reduce(prev Model, outcome PollOutcome) (Model, bool) {
	next := prev
	next.Mode = models.ModeOffline
	if outcome.Online {
		next.Mode = models.ModeOnline
	}

	if latest := prev.Latest(); latest != nil && latest.Sequence == outcome.Ledger.Sequence {
		return next, false
	}

	next.History = prev.History.Push(outcome.Ledger)
	return next, true
}

// ShouldAnnounce reports whether ingesting seq deserves an event log line:
// only the first ledger ever, then every 10th sequence.
func ShouldAnnounce(first bool, seq uint32) bool {
	return first || seq%10 == 0
}
