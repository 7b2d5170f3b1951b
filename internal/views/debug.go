package views

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"dashboard/internal/dashboard"
)

// DebugView prints each snapshot as JSON at debug level
type DebugView struct{}

// NewDebugView creates a DebugView
func NewDebugView() *DebugView {
	return &DebugView{}
}

// Render logs the snapshot
func (v *DebugView) Render(ctx context.Context, snap dashboard.Snapshot) error {
	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		return nil
	}

	jsonData, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot to JSON: %w", err)
	}

	slog.Debug("Dashboard snapshot", "json", string(jsonData))
	return nil
}

// Name returns the view name
func (v *DebugView) Name() string {
	return "debug"
}
