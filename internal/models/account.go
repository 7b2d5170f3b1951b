package models

import "fmt"

// AccountRecord is a point-in-time snapshot of an account as served by the
// reporting API. It is replaced wholesale by the next successful lookup.
type AccountRecord struct {
	AccountID    string      `json:"account_id"`
	Balance      string      `json:"balance"`     // stroops
	BalanceXLM   string      `json:"balance_xlm"` // 7 decimal places
	SeqNum       int64       `json:"seq_num"`
	LastModified int64       `json:"last_modified"`
	Trustlines   []Trustline `json:"trustlines,omitempty"`
}

// Trustline is a non-native asset holding of an account
type Trustline struct {
	Asset   string `json:"asset"`
	Balance string `json:"balance"`
	Limit   string `json:"limit,omitempty"`
}

// Validate checks the fields the dashboard relies on when rendering
func (a AccountRecord) Validate() error {
	if a.AccountID == "" {
		return fmt.Errorf("account_id is required")
	}
	if a.Balance == "" && a.BalanceXLM == "" {
		return fmt.Errorf("account %s has no balance", a.AccountID)
	}
	if a.SeqNum < 0 || a.LastModified < 0 {
		return fmt.Errorf("account %s has negative sequence fields", a.AccountID)
	}
	for i, tl := range a.Trustlines {
		if tl.Asset == "" {
			return fmt.Errorf("trustline %d has no asset", i)
		}
	}
	return nil
}

// Clone returns a copy that shares no slices with the receiver
func (a AccountRecord) Clone() AccountRecord {
	if a.Trustlines != nil {
		a.Trustlines = append([]Trustline(nil), a.Trustlines...)
	}
	return a
}
