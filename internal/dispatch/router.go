// internal/dispatch/router.go
// Package dispatch classifies inbound chat events and drives each
// interaction through search, selection, enrichment and document delivery.
package dispatch

import (
	"context"
	"time"

	"client-lookup-bot/internal/chat"
	"client-lookup-bot/internal/common/dedup"
	commonerrors "client-lookup-bot/internal/common/errors"
	"client-lookup-bot/internal/common/logger"
	"client-lookup-bot/internal/common/metrics"
	"client-lookup-bot/internal/directory"
	"client-lookup-bot/internal/document"
	"client-lookup-bot/internal/enrichment"
	"client-lookup-bot/internal/render"
	"client-lookup-bot/internal/search"
	"client-lookup-bot/internal/selection"
)

type Router struct {
	store     *directory.Store
	loader    *directory.Loader
	orch      *enrichment.Orchestrator
	documents *document.Fetcher
	messenger chat.Messenger
	dedup     dedup.Store
	errors    *commonerrors.Handler
	logger    logger.Logger
}

func NewRouter(
	store *directory.Store,
	loader *directory.Loader,
	orch *enrichment.Orchestrator,
	documents *document.Fetcher,
	messenger chat.Messenger,
	dedupStore dedup.Store,
	log logger.Logger,
) *Router {
	return &Router{
		store:     store,
		loader:    loader,
		orch:      orch,
		documents: documents,
		messenger: messenger,
		dedup:     dedupStore,
		errors:    commonerrors.NewHandler(log),
		logger:    log.WithFields(map[string]interface{}{"component": "dispatch"}),
	}
}

// HandleText processes an inbound free-text message.
func (r *Router) HandleText(ctx context.Context, ev chat.TextEvent) {
	defer r.observe("text", time.Now())

	route, query := ClassifyText(ev.Text)
	switch route {
	case RouteFavourites:
		metrics.SearchesTotal.WithLabelValues("favourites").Inc()
		r.send(ev.StreamID, render.FavouritesBar(r.store.All().Favourites))
	case RouteSearch:
		r.handleSearch(ev, query)
	default:
		// Unclassified text is ignored; the room carries normal chatter too.
	}
}

func (r *Router) handleSearch(ev chat.TextEvent, query string) {
	trigger := "implicit"
	if len(ev.Text) != len(query) {
		trigger = "explicit"
	}
	metrics.SearchesTotal.WithLabelValues(trigger).Inc()

	matches := search.Search(query, r.store.All())
	r.logger.Info("search handled", map[string]interface{}{
		"initiator": ev.Initiator,
		"query":     query,
		"matches":   len(matches),
	})

	if len(matches) == 0 {
		r.send(ev.StreamID, render.NoMatches(query))
		return
	}

	formID := selection.NewFormID(render.FormPrefixSelection)
	r.send(ev.StreamID, render.SelectionForm(matches, formID))
}

// HandleFormReply processes a submitted interactive form. Duplicate
// submissions of the same message id are dropped.
func (r *Router) HandleFormReply(ctx context.Context, ev chat.FormReplyEvent) {
	defer r.observe("form", time.Now())

	if ev.MessageID != "" {
		seen, err := r.dedup.Seen(ctx, ev.MessageID)
		if err != nil {
			// Dedup store trouble must not block the interaction.
			r.logger.Warn("dedup check failed", map[string]interface{}{
				"messageId": ev.MessageID,
				"error":     err.Error(),
			})
		} else if seen {
			r.logger.Debug("dropping duplicate form reply", map[string]interface{}{
				"messageId": ev.MessageID,
			})
			return
		}
	}

	switch ClassifyForm(ev.FormID) {
	case FormHandlerClientSelection:
		r.handleClientSelection(ctx, ev)
	case FormHandlerTradeDocument:
		r.handleTradeDocument(ctx, ev)
	default:
		r.logger.Debug("unrecognized form id", map[string]interface{}{"formId": ev.FormID})
	}
}

func (r *Router) handleClientSelection(ctx context.Context, ev chat.FormReplyEvent) {
	token := selection.Decode(ev.Values)
	metrics.SelectionsTotal.WithLabelValues(token.Kind.String()).Inc()

	if !token.IsClient() {
		r.errors.Normalize(commonerrors.NewNoSelectionError())
		r.send(ev.StreamID, render.NoSelection())
		return
	}

	rec, ok := r.store.Lookup(token.ID)
	if !ok {
		r.errors.Normalize(commonerrors.NewUnknownClientError(token.ID))
		r.send(ev.StreamID, render.ClientNotFound())
		return
	}

	r.send(ev.StreamID, render.SelectionConfirmed(rec))

	// Capability replies go out strictly in pipeline order.
	tradesFormID := selection.NewFormID(render.FormPrefixTrades)
	for _, res := range r.orch.Enrich(ctx, rec.ID) {
		r.send(ev.StreamID, render.EnrichmentResult(res, rec, tradesFormID))
	}

	r.logger.Info("client enriched", map[string]interface{}{
		"initiator": ev.Initiator,
		"clientId":  rec.ID,
		"client":    rec.Name,
	})
}

func (r *Router) handleTradeDocument(ctx context.Context, ev chat.FormReplyEvent) {
	token := selection.Decode(ev.Values)
	metrics.SelectionsTotal.WithLabelValues(token.Kind.String()).Inc()

	if token.Kind != selection.TradeDocument {
		r.errors.Normalize(commonerrors.NewNoSelectionError())
		r.send(ev.StreamID, render.NoSelection())
		return
	}

	payload, err := r.documents.Fetch(ctx, token.ID)
	if err != nil {
		stdErr := r.errors.Normalize(err)
		if stdErr.Code == commonerrors.ErrCodeDocumentNotFound {
			metrics.DocumentFetches.WithLabelValues("not_found").Inc()
			r.send(ev.StreamID, render.ContractNotFound(token.ID))
		} else {
			metrics.DocumentFetches.WithLabelValues("unavailable").Inc()
			r.send(ev.StreamID, render.DocumentUnavailable(token.ID))
		}
		return
	}

	metrics.DocumentFetches.WithLabelValues("present").Inc()
	if err := r.messenger.SendAttachment(ev.StreamID,
		render.DocumentCaption(payload.Filename), payload.Filename, payload.Bytes); err != nil {
		r.logger.Error("attachment send failed", map[string]interface{}{
			"tradeNumber": token.ID,
			"error":       err.Error(),
		})
	}
}

// Command handles the explicit slash commands the gateway registers.
func (r *Router) Command(ctx context.Context, name string, ev chat.TextEvent) {
	defer r.observe("command", time.Now())

	switch name {
	case "help":
		r.send(ev.StreamID, render.Help(r.store.Stats()))
	case "favourites":
		r.send(ev.StreamID, render.FavouritesBar(r.store.All().Favourites))
	case "reload":
		r.handleReload(ev)
	}
}

func (r *Router) handleReload(ev chat.TextEvent) {
	if err := r.loader.Load(); err != nil {
		r.errors.Normalize(err)
		r.send(ev.StreamID, render.ReloadFailed())
		return
	}
	r.send(ev.StreamID, render.ReloadResult(r.store.Stats(), false))
	// Refresh the pinned favourites after a successful reload.
	r.send(ev.StreamID, render.FavouritesBar(r.store.All().Favourites))
}

func (r *Router) send(streamID, content string) {
	if err := r.messenger.SendMessage(streamID, content); err != nil {
		r.logger.Error("reply send failed", map[string]interface{}{
			"streamId": streamID,
			"error":    err.Error(),
		})
	}
}

func (r *Router) observe(handler string, start time.Time) {
	metrics.InteractionDuration.WithLabelValues(handler).Observe(time.Since(start).Seconds())
}
