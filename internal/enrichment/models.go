// internal/enrichment/models.go
package enrichment

// Capability names one of the enrichment data sources. Replies are emitted
// strictly in the order of Capabilities.
type Capability string

const (
	CapabilityStatus Capability = "status"
	CapabilityCredit Capability = "credit"
	CapabilityTrades Capability = "trades"
)

// Capabilities is the fixed evaluation and reporting order.
var Capabilities = []Capability{CapabilityStatus, CapabilityCredit, CapabilityTrades}

// OutcomeKind is the three-way result of one capability call. Every call
// path terminates in one of these; there is no unhandled failure.
type OutcomeKind int

const (
	Present OutcomeKind = iota
	Empty
	Unavailable
)

func (k OutcomeKind) String() string {
	switch k {
	case Present:
		return "present"
	case Empty:
		return "empty"
	default:
		return "unavailable"
	}
}

// Outcome carries one capability's result. Payload is set only for Present;
// Reason only for Unavailable.
type Outcome struct {
	Kind    OutcomeKind
	Payload interface{}
	Reason  string
}

// Result pairs a capability with its outcome.
type Result struct {
	Capability Capability
	Outcome    Outcome
}

// StatusPayload is the status backend's response body.
type StatusPayload struct {
	StatusLine string `json:"status_line"`
}

// CreditPayload is the credit backend's response body.
type CreditPayload struct {
	CreditLine string `json:"credit_line"`
}

// TradeRecord is one row of the trades backend's response.
type TradeRecord struct {
	TradeNumber    string  `json:"trade_number"`
	TradeDate      string  `json:"trade_date"`
	Product        string  `json:"product"`
	Direction      string  `json:"direction"`
	CurrencyPair   string  `json:"currency_pair"`
	NotionalAmount float64 `json:"notional_amount"`
	Price          float64 `json:"price"`
	Spread         float64 `json:"spread"`
}
