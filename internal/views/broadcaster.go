// Package views renders dashboard snapshots.
package views

import (
	"context"
	"log/slog"

	"dashboard/internal/dashboard"
	"dashboard/internal/metrics"
)

// View renders a read-only dashboard snapshot
type View interface {
	// Render draws one snapshot
	// Returning an error never stops other views
	Render(ctx context.Context, snap dashboard.Snapshot) error

	// Name returns the view name for logging
	Name() string
}

// Broadcaster hands every snapshot to all registered views in order
type Broadcaster struct {
	views []View
}

// NewBroadcaster creates a Broadcaster with the given views
func NewBroadcaster(views []View) *Broadcaster {
	return &Broadcaster{
		views: views,
	}
}

// Publish renders snap on every view
func (b *Broadcaster) Publish(ctx context.Context, snap dashboard.Snapshot) {
	slog.Debug("Broadcaster: publishing snapshot",
		"mode", snap.Mode,
		"views_count", len(b.views),
	)

	for _, view := range b.views {
		if err := view.Render(ctx, snap); err != nil {
			metrics.ViewErrorsTotal.WithLabelValues(view.Name()).Inc()
			slog.Error("View render failed",
				"view", view.Name(),
				"error", err,
			)
		}
	}
}

// Views returns the list of registered views (for inspection/testing)
func (b *Broadcaster) Views() []View {
	return b.views
}
