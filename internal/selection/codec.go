// internal/selection/codec.go
// Package selection encodes candidates as interactive control identifiers
// and decodes submitted form values back into typed tokens.
package selection

import (
	"strings"

	"github.com/google/uuid"
)

// Kind tags what a decoded selection refers to.
type Kind int

const (
	// None is the explicit "no selection" result. Decoding never fails.
	None Kind = iota
	Client
	Favourite
	TradeDocument
)

// Namespace prefixes for control identifiers. trade_doc ids are trade
// numbers, not client ids, so the namespaces never collide.
const (
	PrefixClient        = "client_"
	PrefixFavourite     = "fav_"
	PrefixTradeDocument = "trade_doc_"
)

// Token is the decoded, typed representation of a user's button choice.
type Token struct {
	Kind Kind
	ID   string
}

func (k Kind) String() string {
	switch k {
	case Client:
		return "client"
	case Favourite:
		return "favourite"
	case TradeDocument:
		return "trade_document"
	default:
		return "none"
	}
}

// IsClient reports whether the token resolves to a client record lookup.
// Client and Favourite are two encodings of the same thing.
func (t Token) IsClient() bool {
	return t.Kind == Client || t.Kind == Favourite
}

// Encode builds the control identifier for a candidate.
func Encode(kind Kind, id string) string {
	switch kind {
	case Client:
		return PrefixClient + id
	case Favourite:
		return PrefixFavourite + id
	case TradeDocument:
		return PrefixTradeDocument + id
	default:
		return ""
	}
}

// NewFormID mints a unique interaction surface id so replies can be
// correlated to the handler that produced the list.
func NewFormID(prefix string) string {
	return prefix + uuid.NewString()
}

// Decode extracts a Token from submitted form values. The field literally
// named "action" wins; otherwise field names are scanned for a recognized
// namespace prefix, first match in map iteration order. When nothing
// matches, the result is Token{Kind: None} — never an error.
func Decode(values map[string]string) Token {
	if action, ok := values["action"]; ok && action != "" {
		if tok, ok := fromIdentifier(action); ok {
			return tok
		}
	}

	for name := range values {
		if name == "action" {
			continue
		}
		if tok, ok := fromIdentifier(name); ok {
			return tok
		}
	}

	return Token{Kind: None}
}

func fromIdentifier(id string) (Token, bool) {
	// trade_doc_ is checked before client_ and fav_; none is a prefix of
	// another, but keeping the longest first makes the order irrelevant.
	switch {
	case strings.HasPrefix(id, PrefixTradeDocument):
		return Token{Kind: TradeDocument, ID: strings.TrimPrefix(id, PrefixTradeDocument)}, true
	case strings.HasPrefix(id, PrefixClient):
		return Token{Kind: Client, ID: strings.TrimPrefix(id, PrefixClient)}, true
	case strings.HasPrefix(id, PrefixFavourite):
		return Token{Kind: Favourite, ID: strings.TrimPrefix(id, PrefixFavourite)}, true
	default:
		return Token{}, false
	}
}
