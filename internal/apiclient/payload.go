package apiclient

import (
	"math"
	"strconv"
	"strings"
	"time"

	"dashboard/internal/models"

	"github.com/stellar/go/amount"
)

// closedAtLayouts lists the timestamp formats the reporting API has emitted.
// Older nodes stored time.Time.String() output verbatim.
var closedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05 -0700 MST",
}

type ledgerPayload struct {
	Sequence        *int64 `json:"sequence"`
	ClosedAt        string `json:"closed_at"`
	TotalTxCount    *int   `json:"total_tx_count"`
	FilteredTxCount *int   `json:"filtered_tx_count"`
	TxCount         *int   `json:"tx_count"` // deprecated alias of filtered_tx_count
}

func (p ledgerPayload) toSummary() (models.LedgerSummary, error) {
	if p.Sequence == nil {
		return models.LedgerSummary{}, malformed("ledger without sequence")
	}
	if *p.Sequence <= 0 || *p.Sequence > math.MaxUint32 {
		return models.LedgerSummary{}, malformed("ledger sequence %d out of range", *p.Sequence)
	}

	closedAt, err := parseClosedAt(p.ClosedAt)
	if err != nil {
		return models.LedgerSummary{}, malformed("ledger %d: %v", *p.Sequence, err)
	}

	var filtered int
	switch {
	case p.FilteredTxCount != nil:
		filtered = *p.FilteredTxCount
	case p.TxCount != nil:
		filtered = *p.TxCount
	}

	total := filtered
	if p.TotalTxCount != nil {
		total = *p.TotalTxCount
	}

	summary := models.LedgerSummary{
		Sequence:        uint32(*p.Sequence),
		ClosedAt:        closedAt,
		TotalTxCount:    total,
		FilteredTxCount: filtered,
	}
	if err := summary.Validate(); err != nil {
		return models.LedgerSummary{}, malformed("%v", err)
	}
	return summary, nil
}

func parseClosedAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errMissing("closed_at")
	}
	var lastErr error
	for _, layout := range closedAtLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// normalizeAccount fills balance_xlm from the stroops balance when the API
// omitted it and validates the record.
func normalizeAccount(a models.AccountRecord) (models.AccountRecord, error) {
	if a.BalanceXLM == "" && a.Balance != "" {
		stroops, err := strconv.ParseInt(a.Balance, 10, 64)
		if err != nil {
			return models.AccountRecord{}, malformed("account %s balance %q: %v", a.AccountID, a.Balance, err)
		}
		a.BalanceXLM = amount.StringFromInt64(stroops)
	}
	if err := a.Validate(); err != nil {
		return models.AccountRecord{}, malformed("%v", err)
	}
	return a, nil
}

type missingFieldError string

func (e missingFieldError) Error() string { return string(e) + " is required" }

func errMissing(field string) error { return missingFieldError(field) }
