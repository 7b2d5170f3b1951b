package anchor

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"dashboard/internal/eventlog"
	"dashboard/internal/models"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"
)

type fakeStore struct {
	drafts     []models.AnchorDraft
	err        error
	seqNum     int64
	accountErr error
}

func (f *fakeStore) CreateAnchorDraft(ctx context.Context, draft models.AnchorDraft) (models.AnchorReceipt, error) {
	if f.err != nil {
		return models.AnchorReceipt{}, f.err
	}
	f.drafts = append(f.drafts, draft)
	return models.AnchorReceipt{Status: "draft_saved", Hash: draft.PointerHash, Timestamp: 1700000000}, nil
}

func (f *fakeStore) Account(ctx context.Context, accountID string) (models.AccountRecord, error) {
	if f.accountErr != nil {
		return models.AccountRecord{}, f.accountErr
	}
	return models.AccountRecord{AccountID: accountID, SeqNum: f.seqNum, BalanceXLM: "1.0000000"}, nil
}

type fixedMode models.ConnectivityMode

func (m fixedMode) Mode() models.ConnectivityMode { return models.ConnectivityMode(m) }

func validRequest() models.AnchorRequest {
	return models.AnchorRequest{
		URL:         "https://example.org/deed.pdf",
		ProviderID:  "ipfs",
		Description: "Title deed",
	}
}

func TestPointerHash_Deterministic(t *testing.T) {
	a := PointerHash("ipfs", "https://example.org/deed.pdf")
	b := PointerHash("ipfs", "https://example.org/deed.pdf")
	c := PointerHash("s3", "https://example.org/deed.pdf")

	if a != b {
		t.Error("same input produced different hashes")
	}
	if a == c {
		t.Error("provider should change the hash")
	}
	if len(a) != 64 || strings.ToLower(a) != a {
		t.Errorf("expected 64 lowercase hex characters, got %q", a)
	}
	// sha256("") of the empty concatenation
	if got := PointerHash("", ""); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("PointerHash(\"\", \"\") = %s", got)
	}
}

func TestNewDraft_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.AnchorRequest)
	}{
		{"missing url", func(r *models.AnchorRequest) { r.URL = "" }},
		{"relative url", func(r *models.AnchorRequest) { r.URL = "deed.pdf" }},
		{"ftp url", func(r *models.AnchorRequest) { r.URL = "ftp://example.org/deed.pdf" }},
		{"missing provider", func(r *models.AnchorRequest) { r.ProviderID = " " }},
		{"long description", func(r *models.AnchorRequest) { r.Description = strings.Repeat("x", MaxDescription+1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			if _, err := NewDraft(req); !errors.Is(err, ErrInvalidDraft) {
				t.Errorf("expected ErrInvalidDraft, got %v", err)
			}
		})
	}

	draft, err := NewDraft(validRequest())
	if err != nil {
		t.Fatalf("NewDraft() error: %v", err)
	}
	if draft.Provider != "manual" || draft.PointerHash != PointerHash("ipfs", "https://example.org/deed.pdf") {
		t.Errorf("unexpected draft %+v", draft)
	}
}

func TestBuildEnvelope_CarriesMemoHash(t *testing.T) {
	source := keypair.MustRandom().Address()
	hash := PointerHash("ipfs", "https://example.org/deed.pdf")

	envelope, txHash, err := BuildEnvelope(source, 41, hash, network.TestNetworkPassphrase)
	if err != nil {
		t.Fatalf("BuildEnvelope() error: %v", err)
	}
	if len(txHash) != 64 {
		t.Errorf("unexpected tx hash %q", txHash)
	}

	generic, err := txnbuild.TransactionFromXDR(envelope)
	if err != nil {
		t.Fatalf("TransactionFromXDR() error: %v", err)
	}
	tx, ok := generic.Transaction()
	if !ok {
		t.Fatal("expected a plain transaction")
	}
	if tx.SequenceNumber() != 42 {
		t.Errorf("sequence = %d, expected 42", tx.SequenceNumber())
	}
	memo, ok := tx.Memo().(txnbuild.MemoHash)
	if !ok {
		t.Fatalf("expected MemoHash, got %T", tx.Memo())
	}
	if got := hex.EncodeToString(memo[:]); got != hash {
		t.Errorf("memo = %s, expected %s", got, hash)
	}
}

func TestBuildEnvelope_RejectsBadInput(t *testing.T) {
	source := keypair.MustRandom().Address()
	if _, _, err := BuildEnvelope("GNOTAKEY", 0, strings.Repeat("a", 64), network.TestNetworkPassphrase); err == nil {
		t.Error("expected error for invalid account")
	}
	if _, _, err := BuildEnvelope(source, 0, "zz", network.TestNetworkPassphrase); !errors.Is(err, ErrInvalidDraft) {
		t.Errorf("expected ErrInvalidDraft for bad hash, got %v", err)
	}
}

func TestService_Anchor(t *testing.T) {
	store := &fakeStore{seqNum: 100}
	log := eventlog.New()
	source := keypair.MustRandom().Address()
	svc := NewService(store, fixedMode(models.ModeOnline), log, source, network.TestNetworkPassphrase)

	resp, err := svc.Anchor(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Anchor() error: %v", err)
	}
	if len(store.drafts) != 1 {
		t.Fatalf("expected 1 stored draft, got %d", len(store.drafts))
	}
	if resp.Receipt.Status != "draft_saved" || resp.Envelope == "" || resp.Source != source {
		t.Errorf("unexpected response %+v", resp)
	}
	if log.Entries()[0].Severity != models.SeveritySuccess {
		t.Errorf("expected SUCCESS log entry, got %+v", log.Entries()[0])
	}
}

func TestService_AnchorOffline(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, fixedMode(models.ModeOffline), eventlog.New(), keypair.MustRandom().Address(), network.TestNetworkPassphrase)

	if _, err := svc.Anchor(context.Background(), validRequest()); !errors.Is(err, ErrOffline) {
		t.Errorf("expected ErrOffline, got %v", err)
	}
	if len(store.drafts) != 0 {
		t.Error("offline anchor should not store a draft")
	}
}

func TestService_AnchorStoreFailure(t *testing.T) {
	log := eventlog.New()
	store := &fakeStore{err: errors.New("POST /api/v1/lockb0x: 500")}
	svc := NewService(store, fixedMode(models.ModeOnline), log, keypair.MustRandom().Address(), network.TestNetworkPassphrase)

	if _, err := svc.Anchor(context.Background(), validRequest()); err == nil {
		t.Fatal("expected error")
	}
	if log.Entries()[0].Severity != models.SeverityError {
		t.Errorf("expected ERROR log entry, got %+v", log.Entries()[0])
	}
}

