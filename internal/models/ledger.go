package models

import (
	"fmt"
	"time"
)

// LedgerSummary is the per-ledger figure set the dashboard displays.
// Values are never mutated; the next poll supersedes them.
type LedgerSummary struct {
	Sequence        uint32    `json:"sequence"`
	ClosedAt        time.Time `json:"closed_at"`
	TotalTxCount    int       `json:"total_tx_count"`
	FilteredTxCount int       `json:"filtered_tx_count"`
}

// Validate checks the invariants every summary must hold, whether it came
// from the reporting API or was synthesized locally.
func (l LedgerSummary) Validate() error {
	if l.Sequence == 0 {
		return fmt.Errorf("sequence must be positive")
	}
	if l.ClosedAt.IsZero() {
		return fmt.Errorf("closed_at is required")
	}
	if l.TotalTxCount < 0 || l.FilteredTxCount < 0 {
		return fmt.Errorf("transaction counts must not be negative (total=%d, filtered=%d)",
			l.TotalTxCount, l.FilteredTxCount)
	}
	if l.FilteredTxCount > l.TotalTxCount {
		return fmt.Errorf("filtered_tx_count %d exceeds total_tx_count %d",
			l.FilteredTxCount, l.TotalTxCount)
	}
	return nil
}

// TransactionRecord is the transaction payload returned by the reporting API.
// It is decoded but not rendered anywhere yet.
type TransactionRecord struct {
	Hash      string `json:"hash"`
	LedgerSeq int64  `json:"ledger_seq"`
	XDR       string `json:"xdr,omitempty"`
}

// ConnectivityMode tells whether the dashboard shows live or synthesized data
type ConnectivityMode string

const (
	ModeOnline  ConnectivityMode = "online"
	ModeOffline ConnectivityMode = "offline" // simulated data
)
