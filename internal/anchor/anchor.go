// Package anchor prepares lockb0x document anchors: a pointer hash of the
// document location, a draft stored by the reporting API and an unsigned
// Stellar transaction carrying the hash as its memo.
package anchor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"dashboard/internal/eventlog"
	"dashboard/internal/metrics"
	"dashboard/internal/models"

	"github.com/stellar/go/strkey"
	"github.com/stellar/go/txnbuild"
)

// MaxDescription is the longest description the reporting API accepts
const MaxDescription = 300

// anchorAmount is the self-payment that carries the memo
const anchorAmount = "0.0000001"

var (
	// ErrInvalidDraft is returned when an anchor request fails validation
	ErrInvalidDraft = errors.New("invalid anchor draft")

	// ErrOffline is returned while the dashboard shows simulated data
	ErrOffline = errors.New("anchoring not available in simulation")
)

// DraftStore persists anchor drafts and reads the anchor account
type DraftStore interface {
	CreateAnchorDraft(ctx context.Context, draft models.AnchorDraft) (models.AnchorReceipt, error)
	Account(ctx context.Context, accountID string) (models.AccountRecord, error)
}

// ModeReader reports the dashboard connectivity mode
type ModeReader interface {
	Mode() models.ConnectivityMode
}

// PointerHash is the lowercase hex SHA-256 of providerID followed by url
func PointerHash(providerID, rawURL string) string {
	sum := sha256.Sum256([]byte(providerID + rawURL))
	return hex.EncodeToString(sum[:])
}

// NewDraft validates an anchor request and turns it into a draft
func NewDraft(req models.AnchorRequest) (models.AnchorDraft, error) {
	req.URL = strings.TrimSpace(req.URL)
	req.ProviderID = strings.TrimSpace(req.ProviderID)

	if req.URL == "" {
		return models.AnchorDraft{}, fmt.Errorf("%w: url is required", ErrInvalidDraft)
	}
	u, err := url.ParseRequestURI(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return models.AnchorDraft{}, fmt.Errorf("%w: url must be an absolute http(s) URL", ErrInvalidDraft)
	}
	if req.ProviderID == "" {
		return models.AnchorDraft{}, fmt.Errorf("%w: provider_id is required", ErrInvalidDraft)
	}
	if len(req.Description) > MaxDescription {
		return models.AnchorDraft{}, fmt.Errorf("%w: description exceeds %d characters", ErrInvalidDraft, MaxDescription)
	}

	return models.AnchorDraft{
		PointerHash: PointerHash(req.ProviderID, req.URL),
		URL:         req.URL,
		Provider:    "manual",
		Description: req.Description,
	}, nil
}

// BuildEnvelope returns the base64 XDR of an unsigned self-payment from
// source with the pointer hash as memo, and its hash on the given network.
func BuildEnvelope(source string, sequence int64, pointerHash, passphrase string) (string, string, error) {
	if !strkey.IsValidEd25519PublicKey(source) {
		return "", "", fmt.Errorf("invalid anchor account %q", source)
	}

	raw, err := hex.DecodeString(pointerHash)
	if err != nil || len(raw) != sha256.Size {
		return "", "", fmt.Errorf("%w: pointer hash must be 64 hex characters", ErrInvalidDraft)
	}
	var memo txnbuild.MemoHash
	copy(memo[:], raw)

	account := txnbuild.NewSimpleAccount(source, sequence)
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &account,
		IncrementSequenceNum: true,
		Operations: []txnbuild.Operation{
			&txnbuild.Payment{
				Destination: source,
				Amount:      anchorAmount,
				Asset:       txnbuild.NativeAsset{},
			},
		},
		BaseFee:       txnbuild.MinBaseFee,
		Memo:          memo,
		Preconditions: txnbuild.Preconditions{TimeBounds: txnbuild.NewInfiniteTimeout()},
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to build anchor transaction: %w", err)
	}

	envelope, err := tx.Base64()
	if err != nil {
		return "", "", fmt.Errorf("failed to encode anchor transaction: %w", err)
	}
	txHash, err := tx.HashHex(passphrase)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash anchor transaction: %w", err)
	}
	return envelope, txHash, nil
}

// Service submits anchor drafts and prepares their transactions
type Service struct {
	store      DraftStore
	mode       ModeReader
	log        *eventlog.Log
	account    string
	passphrase string
}

// NewService creates an anchor service paying from account on the network
// identified by passphrase.
func NewService(store DraftStore, mode ModeReader, log *eventlog.Log, account, passphrase string) *Service {
	return &Service{
		store:      store,
		mode:       mode,
		log:        log,
		account:    account,
		passphrase: passphrase,
	}
}

// Anchor validates the request, stores the draft and returns the unsigned envelope
func (s *Service) Anchor(ctx context.Context, req models.AnchorRequest) (models.AnchorResponse, error) {
	resp, err := s.anchor(ctx, req)
	if err != nil {
		metrics.AnchorDraftsTotal.WithLabelValues("error").Inc()
		s.log.Error("Anchor failed: " + err.Error())
		return models.AnchorResponse{}, err
	}
	metrics.AnchorDraftsTotal.WithLabelValues("saved").Inc()
	s.log.Success(fmt.Sprintf("Anchor draft saved: %.8s...", resp.Receipt.Hash))
	return resp, nil
}

func (s *Service) anchor(ctx context.Context, req models.AnchorRequest) (models.AnchorResponse, error) {
	draft, err := NewDraft(req)
	if err != nil {
		return models.AnchorResponse{}, err
	}
	if s.mode.Mode() == models.ModeOffline {
		return models.AnchorResponse{}, ErrOffline
	}

	receipt, err := s.store.CreateAnchorDraft(ctx, draft)
	if err != nil {
		return models.AnchorResponse{}, err
	}
	if receipt.Hash != draft.PointerHash {
		slog.Warn("Anchor receipt hash differs from pointer hash",
			"pointer_hash", draft.PointerHash,
			"receipt_hash", receipt.Hash,
		)
	}

	// The envelope stays usable for offline signing even when the account
	// cannot be read; the signer then has to fix the sequence number.
	var sequence int64
	if account, err := s.store.Account(ctx, s.account); err != nil {
		slog.Warn("Could not read anchor account sequence", "account", s.account, "error", err)
	} else {
		sequence = account.SeqNum
	}

	envelope, txHash, err := BuildEnvelope(s.account, sequence, draft.PointerHash, s.passphrase)
	if err != nil {
		return models.AnchorResponse{}, err
	}

	return models.AnchorResponse{
		Receipt:  receipt,
		Envelope: envelope,
		TxHash:   txHash,
		Source:   s.account,
	}, nil
}
