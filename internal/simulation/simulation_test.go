package simulation

import (
	"math/rand/v2"
	"testing"
	"time"

	"dashboard/internal/models"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestSynthesizer(seed uint64) *Synthesizer {
	return NewWithSource(rand.NewPCG(seed, seed), func() time.Time { return fixedNow })
}

func TestNextLedger_FollowsPrevious(t *testing.T) {
	s := newTestSynthesizer(1)
	prev := models.LedgerSummary{Sequence: 549000}

	next := s.NextLedger(&prev)

	if next.Sequence != 549001 {
		t.Errorf("Sequence = %d, expected 549001", next.Sequence)
	}
	if !next.ClosedAt.Equal(fixedNow) {
		t.Errorf("ClosedAt = %v, expected %v", next.ClosedAt, fixedNow)
	}
	if next.FilteredTxCount > next.TotalTxCount {
		t.Errorf("filtered %d exceeds total %d", next.FilteredTxCount, next.TotalTxCount)
	}
}

func TestNextLedger_Baseline(t *testing.T) {
	next := newTestSynthesizer(2).NextLedger(nil)
	if next.Sequence != BaselineSequence+1 {
		t.Errorf("Sequence = %d, expected %d", next.Sequence, BaselineSequence+1)
	}
}

func TestNextLedger_CountsInRange(t *testing.T) {
	s := newTestSynthesizer(3)
	sawFiltered := false
	prev := models.LedgerSummary{Sequence: 10}

	for i := 0; i < 2000; i++ {
		next := s.NextLedger(&prev)
		if next.TotalTxCount < minTotalTx || next.TotalTxCount >= maxTotalTx {
			t.Fatalf("total %d out of [%d,%d)", next.TotalTxCount, minTotalTx, maxTotalTx)
		}
		if next.FilteredTxCount < 0 || next.FilteredTxCount > maxFilteredTx {
			t.Fatalf("filtered %d out of range", next.FilteredTxCount)
		}
		if err := next.Validate(); err != nil {
			t.Fatalf("synthesized ledger invalid: %v", err)
		}
		if next.FilteredTxCount > 0 {
			sawFiltered = true
		}
		prev = next
	}

	if !sawFiltered {
		t.Error("expected at least one ledger with filtered transactions")
	}
}

func TestAccount_Canned(t *testing.T) {
	account := newTestSynthesizer(4).Account("GAAA")
	if account.AccountID != "GAAA" {
		t.Errorf("AccountID = %q", account.AccountID)
	}
	if account.BalanceXLM != "1000.0000000" {
		t.Errorf("BalanceXLM = %q, expected 1000.0000000", account.BalanceXLM)
	}
	if err := account.Validate(); err != nil {
		t.Errorf("canned account invalid: %v", err)
	}
}
