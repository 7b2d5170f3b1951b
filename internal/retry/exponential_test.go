package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type statusErr struct{ code int }

func (e statusErr) Error() string   { return fmt.Sprintf("status %d", e.code) }
func (e statusErr) Retryable() bool { return e.code >= 500 }

func TestExponentialBackoffStrategy_Success(t *testing.T) {
	strategy := NewExponentialBackoffStrategy(3, 10*time.Millisecond, 100*time.Millisecond)

	err := strategy.Execute(context.Background(), func(ctx context.Context) error {
		return nil
	})

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
}

func TestExponentialBackoffStrategy_SuccessAfterRetries(t *testing.T) {
	strategy := NewExponentialBackoffStrategy(5, 5*time.Millisecond, 20*time.Millisecond)

	attempts := 0
	err := strategy.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return statusErr{code: 503}
		}
		return nil
	})

	if err != nil {
		t.Errorf("Expected no error after retries, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestExponentialBackoffStrategy_NonRecoverableError(t *testing.T) {
	strategy := NewExponentialBackoffStrategy(5, 5*time.Millisecond, 20*time.Millisecond)

	attempts := 0
	err := strategy.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return statusErr{code: 404}
	})

	if err == nil {
		t.Error("Expected error for non-recoverable failure")
	}
	if attempts != 1 {
		t.Errorf("Expected only 1 attempt for non-recoverable error, got: %d", attempts)
	}
}

func TestExponentialBackoffStrategy_MaxRetriesExceeded(t *testing.T) {
	strategy := NewExponentialBackoffStrategy(3, 5*time.Millisecond, 20*time.Millisecond)

	attempts := 0
	err := strategy.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return errors.New("connection refused")
	})

	if err == nil {
		t.Error("Expected error after max retries exceeded")
	}
	if attempts != 4 {
		t.Errorf("Expected 4 attempts, got: %d", attempts)
	}
}

func TestExponentialBackoffStrategy_ContextCancellation(t *testing.T) {
	strategy := NewExponentialBackoffStrategy(10, 100*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	attempts := 0
	err := strategy.Execute(ctx, func(ctx context.Context) error {
		attempts++
		return errors.New("i/o timeout")
	})

	if err == nil {
		t.Error("Expected error due to context cancellation")
	}
	if attempts < 1 {
		t.Errorf("Expected at least 1 attempt, got: %d", attempts)
	}
}

func TestNoRetryStrategy_SingleAttempt(t *testing.T) {
	attempts := 0
	err := NewNoRetryStrategy().Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return errors.New("connection refused")
	})

	if err == nil {
		t.Error("Expected the error to be returned")
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestNewStrategy(t *testing.T) {
	if got := NewStrategy(Config{}).Name(); got != "NoRetry" {
		t.Errorf("disabled config: got %s, expected NoRetry", got)
	}
	cfg := Config{Enabled: true, MaxRetries: 1, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
	if got := NewStrategy(cfg).Name(); got != "ExponentialBackoff" {
		t.Errorf("enabled config: got %s, expected ExponentialBackoff", got)
	}
}

func TestIsRecoverableError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection reset", errors.New("connection reset by peer"), true},
		{"timeout", errors.New("i/o timeout"), true},
		{"server error", statusErr{code: 502}, true},
		{"wrapped server error", fmt.Errorf("latest ledger: %w", statusErr{code: 503}), true},
		{"not found", statusErr{code: 404}, false},
		{"cancelled", context.Canceled, false},
		{"invalid data", errors.New("invalid data format"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isRecoverableError(tt.err)
			if result != tt.expected {
				t.Errorf("isRecoverableError(%v) = %v, expected %v", tt.err, result, tt.expected)
			}
		})
	}
}
