package telegram

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/valdezlabs/citabot/pkg/logging"
)

// ConversationEngine is the single entry point both transports feed into.
type ConversationEngine interface {
	HandleText(ctx context.Context, chatID int64, text string) ([]string, error)
	HandlePhoto(ctx context.Context, chatID int64, image []byte) ([]string, error)
	Fallback(ctx context.Context, chatID int64) ([]string, error)
	Reset(ctx context.Context, chatID int64) ([]string, error)
}

// Sender delivers replies back to a chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// PhotoDownloader fetches the bytes of an attached photo.
type PhotoDownloader interface {
	DownloadPhoto(ctx context.Context, fileID string) ([]byte, error)
}

// Dispatcher routes one Bot API update to the conversation engine and sends
// the engine's replies back. Both the poller and the webhook handler go
// through it, so transport choice never changes conversation behavior.
type Dispatcher struct {
	engine ConversationEngine
	sender Sender
	photos PhotoDownloader
	logger *logging.Logger
}

// NewDispatcher creates an update dispatcher.
func NewDispatcher(engine ConversationEngine, sender Sender, photos PhotoDownloader, logger *logging.Logger) *Dispatcher {
	if engine == nil {
		panic("telegram: engine cannot be nil")
	}
	if sender == nil {
		panic("telegram: sender cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		engine: engine,
		sender: sender,
		photos: photos,
		logger: logger.Component("dispatcher"),
	}
}

// Dispatch handles one update end to end. Failures are scoped to this update:
// they are logged and reported, never fatal to the caller's loop.
func (d *Dispatcher) Dispatch(ctx context.Context, update Update) error {
	if update.Message == nil {
		return nil
	}
	msg := update.Message
	chatID := msg.Chat.ID
	log := d.logger.With("chat_id", chatID, "update_id", update.UpdateID, "dispatch_id", uuid.NewString())

	replies, err := d.route(ctx, msg, log)
	if err != nil {
		log.Error("update handling failed", "error", err)
		return err
	}

	for _, reply := range replies {
		if err := d.sender.SendMessage(ctx, chatID, reply); err != nil {
			log.Error("failed to send reply", "error", err)
			return err
		}
	}
	return nil
}

func (d *Dispatcher) route(ctx context.Context, msg *Message, log *logging.Logger) ([]string, error) {
	chatID := msg.Chat.ID

	if fileID := msg.LargestPhoto(); fileID != "" {
		if d.photos == nil {
			return d.engine.Fallback(ctx, chatID)
		}
		image, err := d.photos.DownloadPhoto(ctx, fileID)
		if err != nil {
			log.Error("photo download failed", "error", err, "file_id", fileID)
			// Treat an undownloadable photo like a non-image: re-prompt.
			return d.engine.Fallback(ctx, chatID)
		}
		return d.engine.HandlePhoto(ctx, chatID, image)
	}

	text := strings.TrimSpace(msg.Text)
	switch {
	case text == "":
		return d.engine.Fallback(ctx, chatID)
	case isResetCommand(text):
		return d.engine.Reset(ctx, chatID)
	default:
		return d.engine.HandleText(ctx, chatID, text)
	}
}

func isResetCommand(text string) bool {
	return text == "/start" || strings.HasPrefix(text, "/start ")
}
