package views

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"dashboard/internal/dashboard"
	"dashboard/internal/models"
)

// consoleLogLines is how many event log lines the console shows
const consoleLogLines = 5

// ConsoleView draws the dashboard as plain text: status line, ledger table,
// transaction series maxima, lookup result and the newest log lines.
type ConsoleView struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleView creates a ConsoleView writing to out
func NewConsoleView(out io.Writer) *ConsoleView {
	return &ConsoleView{out: out}
}

// Name returns the view name
func (v *ConsoleView) Name() string {
	return "console"
}

// Render writes one frame
func (v *ConsoleView) Render(ctx context.Context, snap dashboard.Snapshot) error {
	var b strings.Builder

	status := "ONLINE"
	if snap.Mode == models.ModeOffline {
		status = "OFFLINE (simulated)"
	}
	fmt.Fprintf(&b, "== Pakana Ledger Dashboard == %s  [%s]\n", snap.TakenAt.Format(time.TimeOnly), status)

	if snap.Latest != nil {
		fmt.Fprintf(&b, "Latest ledger #%d closed %s\n", snap.Latest.Sequence, snap.Latest.ClosedAt.Format(time.TimeOnly))
	} else {
		b.WriteString("Latest ledger ---  Waiting...\n")
	}
	fmt.Fprintf(&b, "Total TX max %d | Filtered TX max %d\n", maxOf(snap.TotalSeries), maxOf(snap.FilteredSeries))

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQUENCE\tCLOSED AT\tTOTAL TX\tFILTERED TX")
	for _, l := range snap.Ledgers {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", l.Sequence, l.ClosedAt.Format(time.TimeOnly), l.TotalTxCount, l.FilteredTxCount)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render ledger table: %w", err)
	}

	switch {
	case snap.Searching:
		b.WriteString("Lookup: searching...\n")
	case snap.LookupError != "":
		fmt.Fprintf(&b, "Lookup error: %s\n", snap.LookupError)
	case snap.Account != nil:
		a := snap.Account
		fmt.Fprintf(&b, "Account %s: %s XLM, seq %d, last modified %d\n", a.AccountID, a.BalanceXLM, a.SeqNum, a.LastModified)
		for _, tl := range a.Trustlines {
			code, _, _ := strings.Cut(tl.Asset, ":")
			fmt.Fprintf(&b, "  %s %s\n", code, tl.Balance)
		}
	}

	for _, entry := range snap.Log[:min(consoleLogLines, len(snap.Log))] {
		fmt.Fprintf(&b, "[%s] %s: %s\n", entry.Timestamp.Format(time.TimeOnly), entry.Severity, entry.Message)
	}
	b.WriteString("\n")

	v.mu.Lock()
	defer v.mu.Unlock()
	if _, err := io.WriteString(v.out, b.String()); err != nil {
		return fmt.Errorf("failed to write console frame: %w", err)
	}
	return nil
}

func maxOf(series []int) int {
	if len(series) == 0 {
		return 0
	}
	return slices.Max(series)
}
