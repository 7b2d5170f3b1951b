// Package history keeps the bounded ledger window and the transaction-count
// series the dashboard charts.
package history

import "dashboard/internal/models"

const (
	// WindowSize is how many ledgers the table shows, newest first
	WindowSize = 10

	// SeriesLength is the fixed length of each chart series, oldest first
	SeriesLength = 20
)

// Window is an immutable view of recent ledgers.
// Push returns a new Window and never modifies the receiver.
type Window struct {
	ledgers  []models.LedgerSummary
	total    []int
	filtered []int
}

// New returns an empty window with zero-filled series
func New() Window {
	return Window{
		total:    make([]int, SeriesLength),
		filtered: make([]int, SeriesLength),
	}
}

// Push records a newly seen ledger: it goes to the front of the window
// (truncated to WindowSize) and both series shift left by one.
func (w Window) Push(l models.LedgerSummary) Window {
	size := len(w.ledgers) + 1
	if size > WindowSize {
		size = WindowSize
	}
	ledgers := make([]models.LedgerSummary, 0, size)
	ledgers = append(ledgers, l)
	ledgers = append(ledgers, w.ledgers[:size-1]...)

	return Window{
		ledgers:  ledgers,
		total:    shift(w.total, l.TotalTxCount),
		filtered: shift(w.filtered, l.FilteredTxCount),
	}
}

// Latest returns the newest ledger, if any
func (w Window) Latest() (models.LedgerSummary, bool) {
	if len(w.ledgers) == 0 {
		return models.LedgerSummary{}, false
	}
	return w.ledgers[0], true
}

// Len returns the number of ledgers in the window
func (w Window) Len() int { return len(w.ledgers) }

// Ledgers returns a copy of the window, newest first
func (w Window) Ledgers() []models.LedgerSummary {
	return append([]models.LedgerSummary(nil), w.ledgers...)
}

// TotalSeries returns a copy of the total transaction series, oldest first
func (w Window) TotalSeries() []int { return series(w.total) }

// FilteredSeries returns a copy of the filtered transaction series, oldest first
func (w Window) FilteredSeries() []int { return series(w.filtered) }

// shift drops the oldest value and appends v, keeping SeriesLength values
func shift(src []int, v int) []int {
	out := make([]int, SeriesLength)
	src = series(src)
	copy(out, src[1:])
	out[SeriesLength-1] = v
	return out
}

// series returns a SeriesLength copy; a zero Window has nil series
func series(src []int) []int {
	out := make([]int, SeriesLength)
	if len(src) > SeriesLength {
		src = src[len(src)-SeriesLength:]
	}
	copy(out[SeriesLength-len(src):], src)
	return out
}
