package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL: srv.URL,
		Token:   "test-token",
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestSendMessage(t *testing.T) {
	var got sendMessageRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))

	err := client.SendMessage(context.Background(), 42, "hola")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ChatID)
	assert.Equal(t, "hola", got.Text)
}

func TestSendMessageRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok": false, "description": "chat not found"}`))
	}))

	err := client.SendMessage(context.Background(), 42, "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSendMessageHTTPError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))

	err := client.SendMessage(context.Background(), 42, "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGetUpdates(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/getUpdates", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.EqualValues(t, 7, payload["offset"])
		assert.EqualValues(t, 30, payload["timeout"])

		_, _ = w.Write([]byte(`{
			"ok": true,
			"result": [
				{"update_id": 7, "message": {"message_id": 1, "chat": {"id": 42}, "text": "hola"}},
				{"update_id": 8, "message": {"message_id": 2, "chat": {"id": 42}, "photo": [
					{"file_id": "small", "width": 90, "height": 90},
					{"file_id": "large", "width": 800, "height": 800}
				]}}
			]
		}`))
	}))

	updates, err := client.GetUpdates(context.Background(), 7, 30*time.Second)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, "hola", updates[0].Message.Text)
	assert.Equal(t, "large", updates[1].Message.LargestPhoto())
}

func TestDownloadPhoto(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bottest-token/getFile":
			_, _ = w.Write([]byte(`{"ok": true, "result": {"file_id": "large", "file_path": "photos/file_1.jpg"}}`))
		case "/file/bottest-token/photos/file_1.jpg":
			_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	data, err := client.DownloadPhoto(context.Background(), "large")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, data)
}

func TestDownloadPhotoGetFileRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok": false, "description": "file not found"}`))
	}))

	_, err := client.DownloadPhoto(context.Background(), "gone")
	assert.Error(t, err)
}

func TestLargestPhoto(t *testing.T) {
	var nilMsg *Message
	assert.Empty(t, nilMsg.LargestPhoto())
	assert.Empty(t, (&Message{}).LargestPhoto())
}
