// Package engine implements the per-chat booking conversation state machine.
// It owns every session mutation; gateways, calendar, and transports are
// collaborators behind interfaces.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/valdezlabs/citabot/internal/bookinglog"
	"github.com/valdezlabs/citabot/internal/calendar"
	"github.com/valdezlabs/citabot/internal/identity"
	"github.com/valdezlabs/citabot/internal/intent"
	"github.com/valdezlabs/citabot/internal/observability/metrics"
	"github.com/valdezlabs/citabot/internal/schedule"
	"github.com/valdezlabs/citabot/internal/session"
	"github.com/valdezlabs/citabot/pkg/logging"
)

// DocumentValidator asserts identity-document validity from an image.
type DocumentValidator interface {
	Validate(ctx context.Context, image []byte) identity.Result
}

// ScheduleExtractor resolves free-form text into date/time fragments.
type ScheduleExtractor interface {
	Extract(ctx context.Context, text string, now time.Time) schedule.Extraction
}

// Config wires the engine's collaborators.
type Config struct {
	Sessions   session.Repository
	Documents  DocumentValidator
	Extractor  ScheduleExtractor
	Calendar   calendar.Creator
	BookingLog *bookinglog.Store
	Metrics    *metrics.EngineMetrics
	Rules      schedule.Rules
	Now        func() time.Time
	Logger     *logging.Logger
}

// Engine is the conversation state machine. One engine serves all chats; the
// per-chat locker serializes each session's read-modify-write.
type Engine struct {
	sessions   session.Repository
	locker     session.Locker
	documents  DocumentValidator
	extractor  ScheduleExtractor
	calendar   calendar.Creator
	bookingLog *bookinglog.Store
	metrics    *metrics.EngineMetrics
	rules      schedule.Rules
	now        func() time.Time
	logger     *logging.Logger
}

// New creates the conversation engine.
func New(cfg Config) *Engine {
	if cfg.Sessions == nil {
		panic("engine: session repository cannot be nil")
	}
	if cfg.Documents == nil {
		panic("engine: document validator cannot be nil")
	}
	if cfg.Extractor == nil {
		panic("engine: schedule extractor cannot be nil")
	}
	if cfg.Calendar == nil {
		panic("engine: calendar creator cannot be nil")
	}
	if cfg.Rules == (schedule.Rules{}) {
		cfg.Rules = schedule.DefaultRules(time.UTC)
	} else if cfg.Rules.Location == nil {
		cfg.Rules.Location = time.UTC
	}
	if cfg.Now == nil {
		loc := cfg.Rules.Location
		cfg.Now = func() time.Time { return time.Now().In(loc) }
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Engine{
		sessions:   cfg.Sessions,
		documents:  cfg.Documents,
		extractor:  cfg.Extractor,
		calendar:   cfg.Calendar,
		bookingLog: cfg.BookingLog,
		metrics:    cfg.Metrics,
		rules:      cfg.Rules,
		now:        cfg.Now,
		logger:     cfg.Logger.Component("engine"),
	}
}

// HandleText processes one inbound text message and returns the replies to
// send, in order.
func (e *Engine) HandleText(ctx context.Context, chatID int64, text string) ([]string, error) {
	e.locker.Lock(chatID)
	defer e.locker.Unlock(chatID)

	sess, err := e.sessions.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	e.metrics.ObserveUpdate("text", string(sess.State))

	switch sess.State {
	case session.StateIdle:
		return e.handleIdleText(ctx, chatID, text)
	case session.StateWaitingDocument:
		// Waiting on a photo; any text is unmatched input.
		return []string{replyFollowInstructions}, nil
	case session.StateWaitingSchedule:
		return e.handleScheduleText(ctx, chatID, sess, text)
	default:
		// Stale data from an older version. Clear inline: Reset would
		// re-acquire the per-chat mutex held since the top of this call.
		e.logger.Error("session in unknown state, clearing", "chat_id", chatID, "state", sess.State)
		if err := e.sessions.Clear(ctx, chatID); err != nil {
			return nil, err
		}
		return []string{replyIdleGreeting}, nil
	}
}

// HandlePhoto processes one inbound photo and returns the replies to send.
func (e *Engine) HandlePhoto(ctx context.Context, chatID int64, image []byte) ([]string, error) {
	e.locker.Lock(chatID)
	defer e.locker.Unlock(chatID)

	sess, err := e.sessions.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	e.metrics.ObserveUpdate("photo", string(sess.State))

	if sess.State != session.StateWaitingDocument {
		if sess.State == session.StateIdle {
			return []string{replyIdleGreeting}, nil
		}
		return []string{replyFollowInstructions}, nil
	}

	result := e.documents.Validate(ctx, image)
	if !result.Valid {
		// Unchanged state; the user simply retries with a better photo.
		return []string{replyCheckingDocument, replyDocumentRejected}, nil
	}

	sess.State = session.StateWaitingSchedule
	sess.HolderName = result.HolderName
	if err := e.sessions.Put(ctx, chatID, sess); err != nil {
		return nil, err
	}

	e.logger.Info("document verified", "chat_id", chatID)
	return []string{replyCheckingDocument, replyDocumentVerified(result.HolderName)}, nil
}

// Fallback answers input the transport could not classify (stickers, voice
// notes, etc.) with a context-appropriate prompt. No state changes.
func (e *Engine) Fallback(ctx context.Context, chatID int64) ([]string, error) {
	e.locker.Lock(chatID)
	defer e.locker.Unlock(chatID)

	sess, err := e.sessions.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	e.metrics.ObserveUpdate("other", string(sess.State))

	if sess.State == session.StateIdle {
		return []string{replyIdleGreeting}, nil
	}
	return []string{replyFollowInstructions}, nil
}

// Reset forces the chat back to idle regardless of current state. Used by the
// /start command.
func (e *Engine) Reset(ctx context.Context, chatID int64) ([]string, error) {
	e.locker.Lock(chatID)
	defer e.locker.Unlock(chatID)

	if err := e.sessions.Clear(ctx, chatID); err != nil {
		return nil, err
	}
	return []string{replyIdleGreeting}, nil
}

func (e *Engine) handleIdleText(ctx context.Context, chatID int64, text string) ([]string, error) {
	if !intent.HasBookingIntent(text) {
		return []string{replyIdleGreeting}, nil
	}

	// Entering the flow clears anything left over from a prior attempt.
	sess := session.New()
	sess.State = session.StateWaitingDocument
	if err := e.sessions.Put(ctx, chatID, sess); err != nil {
		return nil, err
	}
	return []string{replyRequestDocument}, nil
}

func (e *Engine) handleScheduleText(ctx context.Context, chatID int64, sess session.Session, text string) ([]string, error) {
	now := e.now()
	extraction := e.extractor.Extract(ctx, text, now)
	merged := schedule.Merge(sess.PartialDate, sess.PartialTime, extraction)

	switch merged.Missing {
	case schedule.MissingUnrecognized, schedule.MissingError:
		return []string{replyProcessingSchedule, replyScheduleRetry}, nil

	case schedule.MissingBoth:
		return []string{replyProcessingSchedule, replyNeedBoth}, nil

	case schedule.MissingHour:
		sess.PartialDate = merged.Date
		if err := e.sessions.Put(ctx, chatID, sess); err != nil {
			return nil, err
		}
		date, err := time.ParseInLocation(schedule.DateLayout, merged.Date, e.rules.Location)
		if err != nil {
			// Defer the malformed-date verdict to validation on the next turn.
			return []string{replyProcessingSchedule, replyScheduleRetry}, nil
		}
		return []string{replyProcessingSchedule, replyGotDate(date)}, nil

	case schedule.MissingDate:
		sess.PartialTime = merged.Time
		if err := e.sessions.Put(ctx, chatID, sess); err != nil {
			return nil, err
		}
		return []string{replyProcessingSchedule, replyGotTime(merged.Time)}, nil
	}

	instant, err := schedule.Validate(merged.Date, merged.Time, now, e.rules)
	if err != nil {
		e.metrics.ObserveValidation(validationVerdict(err))
		// State and partials stay put so the user can resend a corrected value.
		return []string{replyProcessingSchedule, validationReply(err)}, nil
	}
	e.metrics.ObserveValidation("ok")

	return e.book(ctx, chatID, sess, instant)
}

// book creates the calendar event and resets the session afterwards. The
// reset happens on failure too, so a transient calendar error sends the user
// back through document verification. Known asymmetry, preserved on purpose.
func (e *Engine) book(ctx context.Context, chatID int64, sess session.Session, instant time.Time) ([]string, error) {
	confirmation, bookErr := e.calendar.CreateAppointment(ctx, sess.HolderName, instant)

	if clearErr := e.sessions.Clear(ctx, chatID); clearErr != nil {
		e.logger.Error("failed to reset session after booking", "error", clearErr, "chat_id", chatID)
	}

	if bookErr != nil {
		e.metrics.ObserveBooking("failed")
		e.logger.Error("calendar booking failed", "error", bookErr, "chat_id", chatID)
		return []string{replyProcessingSchedule, replyBookingFailed}, nil
	}

	e.metrics.ObserveBooking("created")
	e.logger.Info("booking confirmed", "chat_id", chatID, "scheduled_for", instant, "link", confirmation.Link)

	if err := e.bookingLog.RecordBooking(ctx, bookinglog.Record{
		ChatID:       chatID,
		HolderName:   sess.HolderName,
		ScheduledFor: instant,
		EventID:      confirmation.EventID,
		EventLink:    confirmation.Link,
	}); err != nil {
		e.logger.Error("failed to record booking", "error", err, "chat_id", chatID)
	}

	return []string{replyProcessingSchedule, replyBookingConfirmed(sess.HolderName, instant)}, nil
}

func validationReply(err error) string {
	switch {
	case errors.Is(err, schedule.ErrPast):
		return replySchedulePast
	case errors.Is(err, schedule.ErrTooFarFuture):
		return replyScheduleTooFar
	case errors.Is(err, schedule.ErrOutsideHours):
		return replyScheduleOutsideHours
	default:
		return replyScheduleMalformed
	}
}

func validationVerdict(err error) string {
	switch {
	case errors.Is(err, schedule.ErrPast):
		return "past"
	case errors.Is(err, schedule.ErrTooFarFuture):
		return "too_far_future"
	case errors.Is(err, schedule.ErrOutsideHours):
		return "outside_hours"
	default:
		return "malformed"
	}
}
