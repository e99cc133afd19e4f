// internal/render/render_test.go
package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"client-lookup-bot/internal/directory"
	"client-lookup-bot/internal/enrichment"
)

func TestSelectionForm_ButtonsCarryNamespacedIDs(t *testing.T) {
	out := SelectionForm([]directory.Record{
		{ID: "12345", Name: "Juan Pérez", Favourite: true},
		{ID: "67890", Name: "María García"},
	}, "client_selection_abc")

	assert.Contains(t, out, `form id="client_selection_abc"`)
	assert.Contains(t, out, `name="client_12345"`)
	assert.Contains(t, out, `name="client_67890"`)
	assert.Contains(t, out, "⭐ Juan Pérez")
	assert.NotContains(t, out, "⭐ María")
}

func TestSelectionForm_Empty(t *testing.T) {
	out := SelectionForm(nil, "client_selection_abc")
	assert.Contains(t, out, "No clients found")
	assert.NotContains(t, out, "<form")
}

func TestFavouritesBar_UsesFavNamespace(t *testing.T) {
	out := FavouritesBar([]directory.Record{{ID: "22222", Name: "Ana Martínez", Favourite: true}})
	assert.Contains(t, out, `form id="favourites_bar"`)
	assert.Contains(t, out, `name="fav_22222"`)
}

func TestTradesTable_RowsCarryDocumentButtons(t *testing.T) {
	out := TradesTable([]enrichment.TradeRecord{
		{
			TradeNumber:    "T-1",
			TradeDate:      "2024-05-01",
			Product:        "FX Spot",
			Direction:      "Buy",
			CurrencyPair:   "EURUSD",
			NotionalAmount: 1250000,
			Price:          1.0845,
			Spread:         0.0002,
		},
	}, "Juan Pérez", "trades_xyz")

	assert.Contains(t, out, `name="trade_doc_T-1"`)
	assert.Contains(t, out, "1,250,000")
	assert.Contains(t, out, "EURUSD")
	assert.Contains(t, out, `form id="trades_xyz"`)
}

func TestEnrichmentResult_Unavailable(t *testing.T) {
	out := EnrichmentResult(enrichment.Result{
		Capability: enrichment.CapabilityStatus,
		Outcome:    enrichment.Outcome{Kind: enrichment.Unavailable, Reason: "timeout"},
	}, directory.Record{Name: "Juan Pérez"}, "trades_xyz")

	assert.Contains(t, out, "Status unavailable")
	assert.Contains(t, out, "Juan Pérez")
}

func TestEnrichmentResult_PresentPayloads(t *testing.T) {
	status := EnrichmentResult(enrichment.Result{
		Capability: enrichment.CapabilityStatus,
		Outcome:    enrichment.Outcome{Kind: enrichment.Present, Payload: &enrichment.StatusPayload{StatusLine: "Active"}},
	}, directory.Record{Name: "Ana"}, "")
	assert.Contains(t, status, "Active")

	credit := EnrichmentResult(enrichment.Result{
		Capability: enrichment.CapabilityCredit,
		Outcome:    enrichment.Outcome{Kind: enrichment.Present, Payload: &enrichment.CreditPayload{CreditLine: "1.2M USD"}},
	}, directory.Record{Name: "Ana"}, "")
	assert.Contains(t, credit, "1.2M USD")
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1250000, "1,250,000"},
		{-5000, "-5,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatAmount(tt.in))
	}
}
