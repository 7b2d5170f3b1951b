// Package simulation produces plausible placeholder data while the
// reporting API is unreachable.
package simulation

import (
	"math/rand/v2"
	"sync"
	"time"

	"dashboard/internal/models"
)

const (
	// BaselineSequence is used when no ledger has been displayed yet
	BaselineSequence uint32 = 549000

	minTotalTx = 5
	maxTotalTx = 55 // exclusive

	// filteredChance is the probability a synthesized ledger carries filtered transactions
	filteredChance = 0.1
	maxFilteredTx  = 4
)

// Synthesizer generates ledger summaries and canned lookup results.
// Safe for concurrent use.
type Synthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// New creates a Synthesizer seeded from the current time
func New() *Synthesizer {
	seed := uint64(time.Now().UnixNano())
	return NewWithSource(rand.NewPCG(seed, seed>>1), time.Now)
}

// NewWithSource creates a Synthesizer with a fixed random source and clock
func NewWithSource(src rand.Source, now func() time.Time) *Synthesizer {
	return &Synthesizer{rng: rand.New(src), now: now}
}

// NextLedger synthesizes the ledger following prev, or following
// BaselineSequence when prev is nil.
func (s *Synthesizer) NextLedger(prev *models.LedgerSummary) models.LedgerSummary {
	seq := BaselineSequence
	if prev != nil {
		seq = prev.Sequence
	}

	s.mu.Lock()
	total := minTotalTx + s.rng.IntN(maxTotalTx-minTotalTx)
	filtered := 0
	if s.rng.Float64() < filteredChance {
		filtered = 1 + s.rng.IntN(min(maxFilteredTx, total))
	}
	s.mu.Unlock()

	return models.LedgerSummary{
		Sequence:        seq + 1,
		ClosedAt:        s.now().UTC(),
		TotalTxCount:    total,
		FilteredTxCount: filtered,
	}
}

// Account returns the canned account shown for any key-shaped lookup
func (s *Synthesizer) Account(accountID string) models.AccountRecord {
	return models.AccountRecord{
		AccountID:    accountID,
		Balance:      "10000000000",
		BalanceXLM:   "1000.0000000",
		SeqNum:       123456789,
		LastModified: 549123,
		Trustlines: []models.Trustline{
			{Asset: "TOKE:GB77DTKB...", Balance: "7500000", Limit: "9223372036854775807"},
		},
	}
}
