// internal/enrichment/orchestrator.go
package enrichment

import (
	"context"

	commonerrors "client-lookup-bot/internal/common/errors"
	"client-lookup-bot/internal/common/logger"
	"client-lookup-bot/internal/common/metrics"
)

// step is one named entry of the declarative capability pipeline.
type step struct {
	capability Capability
	fetch      func(ctx context.Context, clientID string) (interface{}, error)
}

// Orchestrator issues the per-client capability calls. Calls run strictly
// sequentially in capability order; a failure on one capability never skips
// or cancels the remaining ones.
type Orchestrator struct {
	pipeline []step
	logger   logger.Logger
}

func NewOrchestrator(client *Client, log logger.Logger) *Orchestrator {
	fetchers := map[Capability]func(ctx context.Context, id string) (interface{}, error){
		CapabilityStatus: func(ctx context.Context, id string) (interface{}, error) {
			return client.FetchStatus(ctx, id)
		},
		CapabilityCredit: func(ctx context.Context, id string) (interface{}, error) {
			return client.FetchCredit(ctx, id)
		},
		CapabilityTrades: func(ctx context.Context, id string) (interface{}, error) {
			return client.FetchTrades(ctx, id)
		},
	}

	pipeline := make([]step, 0, len(Capabilities))
	for _, capability := range Capabilities {
		pipeline = append(pipeline, step{capability: capability, fetch: fetchers[capability]})
	}

	return &Orchestrator{
		pipeline: pipeline,
		logger:   log.WithFields(map[string]interface{}{"component": "enrichment"}),
	}
}

// Enrich evaluates every capability for clientID and reports outcomes in
// declaration order.
func (o *Orchestrator) Enrich(ctx context.Context, clientID string) []Result {
	results := make([]Result, 0, len(o.pipeline))

	for _, s := range o.pipeline {
		outcome := o.run(ctx, s, clientID)
		metrics.EnrichmentOutcomes.WithLabelValues(string(s.capability), outcome.Kind.String()).Inc()
		results = append(results, Result{Capability: s.capability, Outcome: outcome})
	}

	return results
}

func (o *Orchestrator) run(ctx context.Context, s step, clientID string) Outcome {
	payload, err := s.fetch(ctx, clientID)
	if err == nil {
		// An empty trades list is "no data", not a present payload.
		if trades, ok := payload.([]TradeRecord); ok && len(trades) == 0 {
			return Outcome{Kind: Empty}
		}
		return Outcome{Kind: Present, Payload: payload}
	}

	if commonerrors.CodeOf(err) == commonerrors.ErrCodeBackendNotFound {
		return Outcome{Kind: Empty}
	}

	o.logger.Warn("capability unavailable", map[string]interface{}{
		"capability": string(s.capability),
		"clientId":   clientID,
		"error":      err.Error(),
	})
	return Outcome{Kind: Unavailable, Reason: err.Error()}
}
