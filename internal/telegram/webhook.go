package telegram

import (
	"encoding/json"
	"net/http"

	"github.com/valdezlabs/citabot/pkg/logging"
)

// WebhookHandler is the push transport: Telegram POSTs one update per
// request. The update is handled synchronously; Telegram retries delivery on
// failure and the per-chat session lock absorbs duplicates.
type WebhookHandler struct {
	dispatcher *Dispatcher
	logger     *logging.Logger
}

// NewWebhookHandler creates the webhook endpoint handler.
func NewWebhookHandler(dispatcher *Dispatcher, logger *logging.Logger) *WebhookHandler {
	if dispatcher == nil {
		panic("telegram: dispatcher cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WebhookHandler{
		dispatcher: dispatcher,
		logger:     logger.Component("webhook"),
	}
}

// Handle processes POST /telegram/webhook.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var update Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Error("failed to decode webhook update", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), update); err != nil {
		http.Error(w, "Failed to process update", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
