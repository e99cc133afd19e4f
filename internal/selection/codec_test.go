// internal/selection/codec_test.go
package selection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		id   string
	}{
		{"client", Client, "12345"},
		{"favourite", Favourite, "67890"},
		{"trade document", TradeDocument, "T-2024-001"},
		{"id containing underscore", Client, "ab_cd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := Encode(tt.kind, tt.id)
			tok := Decode(map[string]string{"action": encoded})
			assert.Equal(t, tt.kind, tok.Kind)
			assert.Equal(t, tt.id, tok.ID)
		})
	}
}

func TestDecode_ActionFieldWins(t *testing.T) {
	tok := Decode(map[string]string{
		"action":    "client_12345",
		"fav_99999": "clicked",
	})
	assert.Equal(t, Client, tok.Kind)
	assert.Equal(t, "12345", tok.ID)
}

func TestDecode_FallsBackToFieldNameScan(t *testing.T) {
	tok := Decode(map[string]string{"fav_67890": "clicked"})
	assert.Equal(t, Favourite, tok.Kind)
	assert.Equal(t, "67890", tok.ID)
}

func TestDecode_UnrecognizedActionFallsThroughToScan(t *testing.T) {
	tok := Decode(map[string]string{
		"action":        "something_else",
		"trade_doc_T-1": "clicked",
	})
	assert.Equal(t, TradeDocument, tok.Kind)
	assert.Equal(t, "T-1", tok.ID)
}

func TestDecode_NoSelection(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{"empty map", map[string]string{}},
		{"nil map", nil},
		{"unrecognized fields", map[string]string{"comment": "hi", "submit": "yes"}},
		{"empty action only", map[string]string{"action": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := Decode(tt.values)
			assert.Equal(t, None, tok.Kind)
			assert.False(t, tok.IsClient())
		})
	}
}

func TestToken_IsClient(t *testing.T) {
	assert.True(t, Token{Kind: Client}.IsClient())
	assert.True(t, Token{Kind: Favourite}.IsClient())
	assert.False(t, Token{Kind: TradeDocument}.IsClient())
}

func TestNewFormID_Unique(t *testing.T) {
	a := NewFormID("client_selection_")
	b := NewFormID("client_selection_")
	assert.True(t, strings.HasPrefix(a, "client_selection_"))
	assert.NotEqual(t, a, b)
}
