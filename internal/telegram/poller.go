package telegram

import (
	"context"
	"errors"
	"time"

	"github.com/valdezlabs/citabot/pkg/logging"
)

// UpdateSource is the polling side of the Bot API client.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error)
}

// Poller drives the long-poll transport: fetch a batch of updates, dispatch
// them in arrival order, advance the offset, repeat.
type Poller struct {
	source      UpdateSource
	dispatcher  *Dispatcher
	logger      *logging.Logger
	pollTimeout time.Duration
}

// NewPoller creates a long-poll runner.
func NewPoller(source UpdateSource, dispatcher *Dispatcher, pollTimeout time.Duration, logger *logging.Logger) *Poller {
	if source == nil {
		panic("telegram: update source cannot be nil")
	}
	if dispatcher == nil {
		panic("telegram: dispatcher cannot be nil")
	}
	if pollTimeout <= 0 {
		pollTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Poller{
		source:      source,
		dispatcher:  dispatcher,
		logger:      logger.Component("poller"),
		pollTimeout: pollTimeout,
	}
}

// Run polls until ctx is canceled. Updates are handled serially, matching the
// at-most-one-update-per-chat processing model.
func (p *Poller) Run(ctx context.Context) {
	var offset int64
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopping")
			return
		default:
		}

		updates, err := p.source.GetUpdates(ctx, offset, p.pollTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			p.logger.Error("failed to fetch updates", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			_ = p.dispatcher.Dispatch(ctx, update)
		}
	}
}
