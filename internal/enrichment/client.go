// internal/enrichment/client.go
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"client-lookup-bot/internal/common/config"
	commonerrors "client-lookup-bot/internal/common/errors"
	"client-lookup-bot/internal/common/httpclient"
	"client-lookup-bot/internal/common/logger"
)

// tradeRecordSchema validates each item of the trades backend response.
// Invalid items are skipped per item; they never fail the whole call.
const tradeRecordSchema = `{
	"type": "object",
	"properties": {
		"trade_number":    {"type": "string"},
		"trade_date":      {"type": "string"},
		"product":         {"type": "string"},
		"direction":       {"type": "string"},
		"currency_pair":   {"type": "string"},
		"notional_amount": {"type": "number"},
		"price":           {"type": "number"},
		"spread":          {"type": "number"}
	},
	"required": ["trade_number", "notional_amount"]
}`

// Client calls the three capability backends. Each call runs with its own
// timeout and connection scope.
type Client struct {
	config      *Config
	status      *httpclient.Client
	credit      *httpclient.Client
	trades      *httpclient.Client
	tradeSchema gojsonschema.JSONLoader
	logger      logger.Logger
}

func NewClient(cfg *Config, log logger.Logger) *Client {
	return &Client{
		config:      cfg,
		status:      httpclient.NewClient(config.GetDuration(cfg.Status.Timeout)),
		credit:      httpclient.NewClient(config.GetDuration(cfg.Credit.Timeout)),
		trades:      httpclient.NewClient(config.GetDuration(cfg.Trades.Timeout)),
		tradeSchema: gojsonschema.NewStringLoader(tradeRecordSchema),
		logger:      log.WithFields(map[string]interface{}{"component": "enrichment-client"}),
	}
}

// FetchStatus resolves the status capability for a client id.
func (c *Client) FetchStatus(ctx context.Context, clientID string) (*StatusPayload, error) {
	body, err := c.get(ctx, c.status, config.GetDuration(c.config.Status.Timeout),
		c.config.Status.URLFor("status", clientID),
		string(CapabilityStatus), clientID)
	if err != nil {
		return nil, err
	}

	var payload StatusPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, commonerrors.NewBackendUnavailableError(string(CapabilityStatus), err)
	}
	return &payload, nil
}

// FetchCredit resolves the credit exposure capability for a client id.
func (c *Client) FetchCredit(ctx context.Context, clientID string) (*CreditPayload, error) {
	body, err := c.get(ctx, c.credit, config.GetDuration(c.config.Credit.Timeout),
		c.config.Credit.URLFor("credit", clientID),
		string(CapabilityCredit), clientID)
	if err != nil {
		return nil, err
	}

	var payload CreditPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, commonerrors.NewBackendUnavailableError(string(CapabilityCredit), err)
	}
	return &payload, nil
}

// FetchTrades resolves the recent trades capability for a client id. Rows
// failing schema validation are skipped and logged.
func (c *Client) FetchTrades(ctx context.Context, clientID string) ([]TradeRecord, error) {
	body, err := c.get(ctx, c.trades, config.GetDuration(c.config.Trades.Timeout),
		c.config.Trades.URLFor("trades", clientID),
		string(CapabilityTrades), clientID)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, commonerrors.NewBackendUnavailableError(string(CapabilityTrades), err)
	}

	trades := make([]TradeRecord, 0, len(raw))
	for i, item := range raw {
		result, err := gojsonschema.Validate(c.tradeSchema, gojsonschema.NewBytesLoader(item))
		if err != nil || !result.Valid() {
			c.logger.Warn("skipping invalid trade record", map[string]interface{}{
				"clientId": clientID,
				"index":    i,
			})
			continue
		}

		var trade TradeRecord
		if err := json.Unmarshal(item, &trade); err != nil {
			c.logger.Warn("skipping undecodable trade record", map[string]interface{}{
				"clientId": clientID,
				"index":    i,
				"error":    err.Error(),
			})
			continue
		}
		trades = append(trades, trade)
	}

	return trades, nil
}

// get issues one backend call and maps the response to the error taxonomy:
// 200 returns the body, 404 yields BACKEND_NOT_FOUND, anything else yields
// BACKEND_UNAVAILABLE or BACKEND_TIMEOUT.
func (c *Client) get(ctx context.Context, client *httpclient.Client, timeout time.Duration, url, capability, id string) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := client.Get(callCtx, url)
	if err != nil {
		if isTimeout(callCtx, err) {
			return nil, commonerrors.NewBackendTimeoutError(capability)
		}
		return nil, commonerrors.NewBackendUnavailableError(capability, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, commonerrors.NewBackendUnavailableError(capability, err)
		}
		return body, nil
	case http.StatusNotFound:
		return nil, commonerrors.NewBackendNotFoundError(capability, id)
	default:
		return nil, commonerrors.NewBackendUnavailableError(capability,
			fmt.Errorf("backend returned %d", resp.StatusCode))
	}
}

func isTimeout(ctx context.Context, err error) bool {
	return ctx.Err() == context.DeadlineExceeded ||
		strings.Contains(err.Error(), "timeout") ||
		strings.Contains(err.Error(), "deadline") ||
		strings.Contains(err.Error(), "Client.Timeout")
}
