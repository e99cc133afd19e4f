// internal/chat/gateway_test.go
package chat

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"client-lookup-bot/internal/common/logger"
)

type recordedCall struct {
	kind    string
	command string
	text    TextEvent
	form    FormReplyEvent
}

type handlerRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (h *handlerRecorder) HandleText(_ context.Context, ev TextEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, recordedCall{kind: "text", text: ev})
}

func (h *handlerRecorder) HandleFormReply(_ context.Context, ev FormReplyEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, recordedCall{kind: "form", form: ev})
}

func (h *handlerRecorder) Command(_ context.Context, name string, ev TextEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, recordedCall{kind: "command", command: name, text: ev})
}

func newGatewayServer(t *testing.T) (*handlerRecorder, *httptest.Server) {
	t.Helper()

	rec := &handlerRecorder{}
	mux := http.NewServeMux()
	NewGateway(rec, logger.NewTestLogger(t)).Routes(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return rec, server
}

func TestGateway_MessageEvent(t *testing.T) {
	rec, server := newGatewayServer(t)

	body := `{"StreamID": "room-1", "Initiator": "alice", "Text": "find juan"}`
	resp, err := http.Post(server.URL+"/events/message", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, "text", rec.calls[0].kind)
	assert.Equal(t, "find juan", rec.calls[0].text.Text)
	assert.Equal(t, "room-1", rec.calls[0].text.StreamID)
}

func TestGateway_SlashCommandRouted(t *testing.T) {
	rec, server := newGatewayServer(t)

	body := `{"StreamID": "room-1", "Text": "/reload now please"}`
	resp, err := http.Post(server.URL+"/events/message", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Len(t, rec.calls, 1)
	assert.Equal(t, "command", rec.calls[0].kind)
	assert.Equal(t, "reload", rec.calls[0].command)
}

func TestGateway_FormEvent(t *testing.T) {
	rec, server := newGatewayServer(t)

	body := `{"StreamID": "room-1", "MessageID": "m-1",
		"FormID": "client_selection_abc", "Values": {"action": "client_12345"}}`
	resp, err := http.Post(server.URL+"/events/form", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, "form", rec.calls[0].kind)
	assert.Equal(t, "client_selection_abc", rec.calls[0].form.FormID)
	assert.Equal(t, "client_12345", rec.calls[0].form.Values["action"])
}

func TestGateway_RejectsBadPayload(t *testing.T) {
	rec, server := newGatewayServer(t)

	resp, err := http.Post(server.URL+"/events/message", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, rec.calls)
}

func TestGateway_RejectsGet(t *testing.T) {
	_, server := newGatewayServer(t)

	resp, err := http.Get(server.URL + "/events/form")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCommandName(t *testing.T) {
	tests := []struct {
		text     string
		name     string
		expected bool
	}{
		{"/help", "help", true},
		{"/Reload", "reload", true},
		{"  /favourites  ", "favourites", true},
		{"/", "", false},
		{"help", "", false},
	}

	for _, tt := range tests {
		name, ok := commandName(tt.text)
		assert.Equal(t, tt.expected, ok, tt.text)
		assert.Equal(t, tt.name, name, tt.text)
	}
}

func TestWebhookMessenger_SendMessage(t *testing.T) {
	var gotPath string
	var gotBody outboundMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := NewWebhookMessenger(server.URL, 2*time.Second, logger.NewTestLogger(t))
	require.NoError(t, m.SendMessage("room-1", "<messageML>hi</messageML>"))

	assert.Equal(t, "/messages", gotPath)
	assert.Equal(t, "room-1", gotBody.StreamID)
	assert.Equal(t, "<messageML>hi</messageML>", gotBody.Content)
}

func TestWebhookMessenger_SendAttachment(t *testing.T) {
	var gotBody outboundAttachment
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := NewWebhookMessenger(server.URL, 2*time.Second, logger.NewTestLogger(t))
	require.NoError(t, m.SendAttachment("room-1", "caption", "T-1.pdf", []byte("%PDF")))

	assert.Equal(t, "T-1.pdf", gotBody.Filename)
	decoded, err := base64.StdEncoding.DecodeString(gotBody.Data)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), decoded)
}

func TestWebhookMessenger_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	m := NewWebhookMessenger(server.URL, 2*time.Second, logger.NewTestLogger(t))
	err := m.SendMessage("room-1", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
