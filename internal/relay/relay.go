// Package relay republishes a paginated upstream bookmark feed as a
// server-sent-event stream: one data frame per bookmark (the default
// message event, no explicit type), in page order and in-page order, then
// a single terminal stop event.
package relay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-contrib/sse"
)

// Pager fetches one page of the upstream feed. totalPages is the upstream's
// own count and is re-read on every call; the walk ends once the current
// page reaches it.
type Pager interface {
	FetchPage(ctx context.Context, page int) (items []any, totalPages int, err error)
}

// EmitFunc writes one event to the consumer. A write error means the
// consumer is gone and the walk must stop.
type EmitFunc func(sse.Event) error

type Relay struct {
	pager  Pager
	logger *slog.Logger
}

func New(pager Pager, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{pager: pager, logger: logger}
}

// Run walks the feed from page 1 until the upstream reports no more pages,
// emitting every item as a bare data frame and finishing with a stop event.
// On upstream failure the error is returned without a stop event; the
// consumer sees the stream error and closes its side. Cancellation is
// observed between pages: once ctx is done, no further upstream fetch is
// issued.
func (r *Relay) Run(ctx context.Context, emit EmitFunc) error {
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			r.logger.Info("bookmark relay cancelled", "page", page)
			return err
		}

		items, totalPages, err := r.pager.FetchPage(ctx, page)
		if err != nil {
			return fmt.Errorf("fetch bookmark page %d: %w", page, err)
		}

		for _, item := range items {
			if err := emit(sse.Event{Data: item}); err != nil {
				return fmt.Errorf("emit bookmark: %w", err)
			}
		}

		if page >= totalPages {
			r.logger.Info("bookmark relay complete", "pages", page)
			return emit(sse.Event{Event: "stop", Data: ""})
		}
	}
}
