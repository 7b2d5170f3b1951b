package dashboard

import (
	"testing"

	"dashboard/internal/history"
	"dashboard/internal/models"
)

func TestReduce_NewLedger(t *testing.T) {
	next, ingested := Reduce(NewModel(), PollOutcome{Ledger: summary(549001), Online: true})

	if !ingested {
		t.Fatal("expected first ledger to be ingested")
	}
	if next.Mode != models.ModeOnline {
		t.Errorf("Mode = %s, expected online", next.Mode)
	}
	if latest := next.Latest(); latest == nil || latest.Sequence != 549001 {
		t.Errorf("Latest() = %v, expected 549001", latest)
	}
}

func TestReduce_SameSequenceIsIdempotent(t *testing.T) {
	once, _ := Reduce(NewModel(), PollOutcome{Ledger: summary(549001), Online: true})
	twice, ingested := Reduce(once, PollOutcome{Ledger: summary(549001), Online: true})

	if ingested {
		t.Error("duplicate sequence should not be ingested")
	}
	if twice.History.Len() != 1 {
		t.Errorf("history has %d entries, expected 1", twice.History.Len())
	}
	if got := twice.History.TotalSeries(); got[history.SeriesLength-2] != 0 {
		t.Errorf("series shifted on duplicate: %v", got)
	}
}

func TestReduce_ModeFollowsOutcomeEvenOnDuplicate(t *testing.T) {
	online, _ := Reduce(NewModel(), PollOutcome{Ledger: summary(10), Online: true})
	offline, ingested := Reduce(online, PollOutcome{Ledger: summary(10), Online: false})

	if ingested {
		t.Error("duplicate sequence should not be ingested")
	}
	if offline.Mode != models.ModeOffline {
		t.Errorf("Mode = %s, expected offline", offline.Mode)
	}

	back, _ := Reduce(offline, PollOutcome{Ledger: summary(11), Online: true})
	if back.Mode != models.ModeOnline {
		t.Errorf("Mode = %s, expected online after a single success", back.Mode)
	}
}

func TestReduce_DoesNotMutatePrevious(t *testing.T) {
	prev, _ := Reduce(NewModel(), PollOutcome{Ledger: summary(1), Online: true})
	_, _ = Reduce(prev, PollOutcome{Ledger: summary(2), Online: false})

	if prev.History.Len() != 1 || prev.Mode != models.ModeOnline {
		t.Errorf("previous model changed: len=%d mode=%s", prev.History.Len(), prev.Mode)
	}
}

func TestReduce_HistoryBounded(t *testing.T) {
	m := NewModel()
	for seq := uint32(1); seq <= 40; seq++ {
		m, _ = Reduce(m, PollOutcome{Ledger: summary(seq), Online: seq%2 == 0})
		if m.History.Len() > history.WindowSize {
			t.Fatalf("history grew to %d", m.History.Len())
		}
		if len(m.History.TotalSeries()) != history.SeriesLength || len(m.History.FilteredSeries()) != history.SeriesLength {
			t.Fatal("series length changed")
		}
	}
}

func TestShouldAnnounce(t *testing.T) {
	tests := []struct {
		first bool
		seq   uint32
		want  bool
	}{
		{true, 549001, true},
		{false, 549001, false},
		{false, 549010, true},
		{false, 549011, false},
	}
	for _, tt := range tests {
		if got := ShouldAnnounce(tt.first, tt.seq); got != tt.want {
			t.Errorf("ShouldAnnounce(%v, %d) = %v, expected %v", tt.first, tt.seq, got, tt.want)
		}
	}
}
