// internal/chat/webhook.go
package chat

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"client-lookup-bot/internal/common/httpclient"
	"client-lookup-bot/internal/common/logger"
)

// WebhookMessenger delivers replies to the transport's reply webhook.
type WebhookMessenger struct {
	baseURL string
	client  *httpclient.Client
	logger  logger.Logger
}

func NewWebhookMessenger(baseURL string, timeout time.Duration, log logger.Logger) *WebhookMessenger {
	return &WebhookMessenger{
		baseURL: baseURL,
		client:  httpclient.NewClient(timeout),
		logger:  log.WithFields(map[string]interface{}{"component": "webhook-messenger"}),
	}
}

type outboundMessage struct {
	StreamID string `json:"stream_id"`
	Content  string `json:"content"`
}

type outboundAttachment struct {
	StreamID string `json:"stream_id"`
	Content  string `json:"content"`
	Filename string `json:"filename"`
	Data     string `json:"data"` // base64
}

func (m *WebhookMessenger) SendMessage(streamID, content string) error {
	return m.post(m.baseURL+"/messages", outboundMessage{
		StreamID: streamID,
		Content:  content,
	})
}

func (m *WebhookMessenger) SendAttachment(streamID, content, filename string, data []byte) error {
	return m.post(m.baseURL+"/attachments", outboundAttachment{
		StreamID: streamID,
		Content:  content,
		Filename: filename,
		Data:     base64.StdEncoding.EncodeToString(data),
	})
}

func (m *WebhookMessenger) post(url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.DoWithContext(context.Background(), req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
