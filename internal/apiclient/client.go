package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dashboard/internal/models"
	"dashboard/internal/retry"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxErrorBody caps how much of a failed response is kept in a StatusError
const maxErrorBody = 512

// Options configures a Client
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Retry      retry.Strategy
}

// Client talks to the Pakana reporting API.
// Every request carries the static X-API-Key header; there is no auth refresh.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	retry   retry.Strategy
}

// New creates a reporting API client
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("reporting API base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid reporting API URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid reporting API URL scheme %q", base.Scheme)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	strategy := opts.Retry
	if strategy == nil {
		strategy = retry.NewNoRetryStrategy()
	}

	return &Client{
		baseURL: base,
		apiKey:  opts.APIKey,
		http:    httpClient,
		retry:   strategy,
	}, nil
}

// LatestLedger fetches the most recent ledger summary
// GET /api/v1/ledgers/latest
func (c *Client) LatestLedger(ctx context.Context) (models.LedgerSummary, error) {
	var payload ledgerPayload
	if err := c.do(ctx, http.MethodGet, "/api/v1/ledgers/latest", nil, &payload); err != nil {
		return models.LedgerSummary{}, fmt.Errorf("latest ledger: %w", err)
	}
	summary, err := payload.toSummary()
	if err != nil {
		return models.LedgerSummary{}, fmt.Errorf("latest ledger: %w", err)
	}
	return summary, nil
}

// Account fetches an account snapshot
// GET /api/v1/accounts/{id}
func (c *Client) Account(ctx context.Context, accountID string) (models.AccountRecord, error) {
	var account models.AccountRecord
	path := "/api/v1/accounts/" + url.PathEscape(accountID)
	if err := c.do(ctx, http.MethodGet, path, nil, &account); err != nil {
		return models.AccountRecord{}, fmt.Errorf("account %s: %w", accountID, err)
	}
	account, err := normalizeAccount(account)
	if err != nil {
		return models.AccountRecord{}, fmt.Errorf("account %s: %w", accountID, err)
	}
	return account, nil
}

// Transaction fetches a transaction by hash
// GET /api/v1/transactions/{hash}
func (c *Client) Transaction(ctx context.Context, hash string) (models.TransactionRecord, error) {
	var tx models.TransactionRecord
	path := "/api/v1/transactions/" + url.PathEscape(hash)
	if err := c.do(ctx, http.MethodGet, path, nil, &tx); err != nil {
		return models.TransactionRecord{}, fmt.Errorf("transaction %s: %w", hash, err)
	}
	if tx.Hash == "" {
		return models.TransactionRecord{}, fmt.Errorf("transaction %s: %w", hash, malformed("transaction without hash"))
	}
	return tx, nil
}

// CreateAnchorDraft stores a lockb0x anchoring draft
// POST /api/v1/lockb0x
func (c *Client) CreateAnchorDraft(ctx context.Context, draft models.AnchorDraft) (models.AnchorReceipt, error) {
	var receipt models.AnchorReceipt
	if err := c.do(ctx, http.MethodPost, "/api/v1/lockb0x", draft, &receipt); err != nil {
		return models.AnchorReceipt{}, fmt.Errorf("anchor draft: %w", err)
	}
	if receipt.Hash == "" || receipt.Status == "" {
		return models.AnchorReceipt{}, fmt.Errorf("anchor draft: %w", malformed("receipt without status or hash"))
	}
	return receipt, nil
}

// do executes one request through the retry strategy and decodes a 2xx body into out
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	return c.retry.Execute(ctx, func(ctx context.Context) error {
		var reader io.Reader
		if encoded != nil {
			reader = bytes.NewReader(encoded)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)
		if encoded != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			return &StatusError{
				Method: method,
				Path:   path,
				Code:   resp.StatusCode,
				Body:   strings.TrimSpace(string(snippet)),
			}
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return malformed("decode %s: %v", path, err)
		}
		return nil
	})
}
