package dashboard

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"dashboard/internal/eventlog"
	"dashboard/internal/models"
	"dashboard/internal/simulation"
)

type fakeSource struct {
	mu           sync.Mutex
	ledger       models.LedgerSummary
	ledgerErr    error
	account      models.AccountRecord
	accountErr   error
	txErr        error
	ledgerCalls  int
	accountCalls int
	txCalls      int
}

func (f *fakeSource) LatestLedger(ctx context.Context) (models.LedgerSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ledgerCalls++
	return f.ledger, f.ledgerErr
}

func (f *fakeSource) Account(ctx context.Context, accountID string) (models.AccountRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accountCalls++
	return f.account, f.accountErr
}

func (f *fakeSource) Transaction(ctx context.Context, hash string) (models.TransactionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txCalls++
	return models.TransactionRecord{Hash: hash, LedgerSeq: 1}, f.txErr
}

func (f *fakeSource) calls() (ledger, account, tx int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ledgerCalls, f.accountCalls, f.txCalls
}

var errUnreachable = errors.New("dial tcp 127.0.0.1:8080: connect: connection refused")

func testSynth() *simulation.Synthesizer {
	return simulation.NewWithSource(rand.NewPCG(7, 7), func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})
}

func testDashboard() *Dashboard {
	return New(eventlog.New(), models.ConsentUnset)
}

func summary(seq uint32) models.LedgerSummary {
	return models.LedgerSummary{
		Sequence:        seq,
		ClosedAt:        time.Unix(1700000000, 0).UTC(),
		TotalTxCount:    20,
		FilteredTxCount: 1,
	}
}

type recordingPublisher struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (r *recordingPublisher) Publish(ctx context.Context, snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, snap)
}

func (r *recordingPublisher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}
