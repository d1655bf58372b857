// Package telegram is the messaging transport: a Bot API client plus the
// polling and webhook adapters that feed inbound updates to the conversation
// engine. Transport-specific code lives here and nowhere else.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/valdezlabs/citabot/pkg/logging"
)

const (
	defaultBaseURL   = "https://api.telegram.org"
	defaultUserAgent = "citabot/0.1"

	// maxDownloadBytes caps photo downloads; Bot API photos stay well under this.
	maxDownloadBytes = 20 << 20
)

// Config controls how the Bot API client behaves.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
	UserAgent  string
}

// Client wraps the Telegram Bot API endpoints the bot relies on.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
	userAgent  string
}

// NewClient creates a configured Client with sane defaults.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("telegram: bot token is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 65 * time.Second // must outlast the long-poll window
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		token:      cfg.Token,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger.Component("telegram"),
		userAgent:  userAgent,
	}, nil
}

// SendMessage delivers a plain-text message to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	var envelope apiEnvelope
	err := c.postJSON(ctx, "sendMessage", sendMessageRequest{ChatID: chatID, Text: text}, &envelope)
	if err != nil {
		return err
	}
	if !envelope.OK {
		return fmt.Errorf("telegram: sendMessage rejected: %s", envelope.Description)
	}
	return nil
}

// GetUpdates long-polls for new updates starting at offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	payload := map[string]any{
		"offset":  offset,
		"timeout": int(timeout.Seconds()),
	}
	var resp getUpdatesResponse
	if err := c.postJSON(ctx, "getUpdates", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("telegram: getUpdates rejected: %s", resp.Description)
	}
	return resp.Result, nil
}

// DownloadPhoto resolves a file id to its storage path and fetches the bytes.
func (c *Client) DownloadPhoto(ctx context.Context, fileID string) ([]byte, error) {
	var resp getFileResponse
	if err := c.postJSON(ctx, "getFile", map[string]string{"file_id": fileID}, &resp); err != nil {
		return nil, err
	}
	if !resp.OK || resp.Result.FilePath == "" {
		return nil, fmt.Errorf("telegram: getFile rejected: %s", resp.Description)
	}

	url := fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, resp.Result.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("telegram: failed to build download request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram: photo download failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram: photo download returned status %d", res.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxDownloadBytes))
	if err != nil {
		return nil, fmt.Errorf("telegram: failed to read photo body: %w", err)
	}
	return data, nil
}

func (c *Client) postJSON(ctx context.Context, method string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram: failed to encode %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: %s call failed: %w", method, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("telegram: %s returned status %d: %s", method, res.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("telegram: failed to decode %s response: %w", method, err)
	}
	return nil
}
