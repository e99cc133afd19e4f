// internal/chat/gateway.go
package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"client-lookup-bot/internal/common/logger"
)

// Handler consumes inbound chat events. dispatch.Router implements it.
type Handler interface {
	HandleText(ctx context.Context, ev TextEvent)
	HandleFormReply(ctx context.Context, ev FormReplyEvent)
	Command(ctx context.Context, name string, ev TextEvent)
}

// Gateway bridges the external chat transport into the handler. The
// transport posts events as JSON; slash commands are split off here so the
// handler sees them as named commands, the way the transport registers them.
type Gateway struct {
	handler Handler
	logger  logger.Logger
}

func NewGateway(handler Handler, log logger.Logger) *Gateway {
	return &Gateway{
		handler: handler,
		logger:  log.WithFields(map[string]interface{}{"component": "chat-gateway"}),
	}
}

// Routes mounts the event endpoints on mux.
func (g *Gateway) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/events/message", g.handleMessage)
	mux.HandleFunc("/events/form", g.handleForm)
}

func (g *Gateway) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var ev TextEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		g.logger.Warn("undecodable message event", map[string]interface{}{"error": err.Error()})
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if name, ok := commandName(ev.Text); ok {
		g.handler.Command(r.Context(), name, ev)
	} else {
		g.handler.HandleText(r.Context(), ev)
	}
	w.WriteHeader(http.StatusAccepted)
}

func (g *Gateway) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var ev FormReplyEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		g.logger.Warn("undecodable form event", map[string]interface{}{"error": err.Error()})
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	g.handler.HandleFormReply(r.Context(), ev)
	w.WriteHeader(http.StatusAccepted)
}

// commandName extracts the slash command, if any: "/reload now" yields
// ("reload", true).
func commandName(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/") {
		return "", false
	}
	fields := strings.Fields(trimmed[1:])
	if len(fields) == 0 {
		return "", false
	}
	return strings.ToLower(fields[0]), true
}
