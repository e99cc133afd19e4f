// internal/render/render.go
// Package render builds the messageML reply blocks. The contract is the
// presence and ordering of data fields; styling is incidental.
package render

import (
	"fmt"
	"strings"

	"client-lookup-bot/internal/directory"
	"client-lookup-bot/internal/enrichment"
	"client-lookup-bot/internal/selection"
)

// FormPrefixSelection and FormIDFavourites identify the interaction surfaces
// the form-reply classifier routes on.
const (
	FormPrefixSelection = "client_selection_"
	FormPrefixTrades    = "trades_"
	FormIDFavourites    = "favourites_bar"
)

// SelectionForm renders one button per search result. formID must be minted
// per rendered list.
func SelectionForm(matches []directory.Record, formID string) string {
	if len(matches) == 0 {
		return "<messageML>No clients found matching your search.</messageML>"
	}

	var b strings.Builder
	b.WriteString("<messageML><h3>Client Search Results</h3>")
	b.WriteString(fmt.Sprintf(`<form id="%s"><h4>Select Client:</h4>`, formID))
	for _, rec := range matches {
		star := ""
		if rec.Favourite {
			star = "⭐ "
		}
		b.WriteString(fmt.Sprintf(`<button name="%s" type="action">%s%s - ID: %s</button><br/>`,
			selection.Encode(selection.Client, rec.ID), star, rec.Name, rec.ID))
	}
	b.WriteString("</form></messageML>")
	return b.String()
}

// FavouritesBar renders the pinned favourites list.
func FavouritesBar(favourites []directory.Record) string {
	if len(favourites) == 0 {
		return "<messageML>No favourite clients configured.</messageML>"
	}

	var b strings.Builder
	b.WriteString("<messageML><h4>⭐ Favourite Clients:</h4>")
	b.WriteString(fmt.Sprintf(`<form id="%s">`, FormIDFavourites))
	for _, rec := range favourites {
		b.WriteString(fmt.Sprintf(`<button name="%s" type="action">%s (%s)</button>`,
			selection.Encode(selection.Favourite, rec.ID), rec.Name, rec.ID))
	}
	b.WriteString("</form></messageML>")
	return b.String()
}

// NoMatches renders the empty search result reply.
func NoMatches(query string) string {
	return fmt.Sprintf("<messageML><p>No matches for %q</p></messageML>", query)
}

// SelectionConfirmed renders the confirmation block sent before enrichment.
func SelectionConfirmed(rec directory.Record) string {
	star := ""
	if rec.Favourite {
		star = "⭐ "
	}
	return fmt.Sprintf("<messageML><b>✅ %s%s - %s</b></messageML>", star, rec.Name, rec.ID)
}

// EnrichmentResult renders one capability outcome as its reply block.
func EnrichmentResult(res enrichment.Result, client directory.Record, tradesFormID string) string {
	switch res.Outcome.Kind {
	case enrichment.Unavailable:
		return fmt.Sprintf("<messageML><b>⚠️ %s unavailable for %s</b><br/><i>%s backend may be down</i></messageML>",
			capabilityTitle(res.Capability), client.Name, res.Capability)
	case enrichment.Empty:
		return fmt.Sprintf("<messageML><b>No %s data for %s</b></messageML>",
			res.Capability, client.Name)
	}

	switch payload := res.Outcome.Payload.(type) {
	case *enrichment.StatusPayload:
		return fmt.Sprintf("<messageML><b>Status:</b> %s</messageML>", payload.StatusLine)
	case *enrichment.CreditPayload:
		return fmt.Sprintf("<messageML><b>Credit:</b> %s</messageML>", payload.CreditLine)
	case []enrichment.TradeRecord:
		return TradesTable(payload, client.Name, tradesFormID)
	default:
		return fmt.Sprintf("<messageML><b>No %s data for %s</b></messageML>",
			res.Capability, client.Name)
	}
}

// TradesTable renders the recent trades with one document button per row.
func TradesTable(trades []enrichment.TradeRecord, clientName, formID string) string {
	if len(trades) == 0 {
		return fmt.Sprintf("<messageML><b>📊 No trades found for %s</b></messageML>", clientName)
	}

	var b strings.Builder
	b.WriteString("<messageML>")
	b.WriteString(fmt.Sprintf("<b>📊 Last %d trade(s) for %s:</b>", len(trades), clientName))
	b.WriteString(fmt.Sprintf(`<form id="%s"><table>`, formID))
	b.WriteString("<tr><th>Trade#</th><th>Date</th><th>Product</th><th>Dir</th>" +
		"<th>Currency Pair</th><th>Amount</th><th>Price</th><th>Spread</th><th>Doc</th></tr>")
	for _, trade := range trades {
		b.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%g</td><td>%g</td>"+
				`<td><button name="%s" type="action">📄</button></td></tr>`,
			trade.TradeNumber, trade.TradeDate, trade.Product, trade.Direction,
			trade.CurrencyPair, formatAmount(trade.NotionalAmount), trade.Price, trade.Spread,
			selection.Encode(selection.TradeDocument, trade.TradeNumber)))
	}
	b.WriteString("</table></form></messageML>")
	return b.String()
}

// Error blocks

func NoSelection() string {
	return "<messageML><b>❌ No selection detected</b><br/><i>Please click a client button</i></messageML>"
}

func ClientNotFound() string {
	return "<messageML><b>❌ Client not found</b><br/><i>Please try again</i></messageML>"
}

func ContractNotFound(tradeNumber string) string {
	return fmt.Sprintf("<messageML><b>❌ Contract not found for trade %s</b></messageML>", tradeNumber)
}

func DocumentUnavailable(tradeNumber string) string {
	return fmt.Sprintf("<messageML><b>⚠️ Could not fetch document for trade %s</b></messageML>", tradeNumber)
}

func DocumentCaption(filename string) string {
	return fmt.Sprintf("<messageML><p>📄 %s</p></messageML>", filename)
}

func ReloadResult(stats directory.Stats, usedSample bool) string {
	if usedSample {
		return fmt.Sprintf("<messageML><b>⚠️ Using sample data: %d clients, %d favourites</b></messageML>",
			stats.Clients, stats.Favourites)
	}
	return fmt.Sprintf("<messageML><b>✅ Reloaded %d clients, %d favourites</b></messageML>",
		stats.Clients, stats.Favourites)
}

func ReloadFailed() string {
	return "<messageML><b>⚠️ Reload failed, keeping current client data</b></messageML>"
}

func Help(stats directory.Stats) string {
	var b strings.Builder
	b.WriteString("<messageML><h2>📞 Client Lookup Bot - Help</h2>")
	b.WriteString("<h3>Quick Commands:</h3><ul>")
	b.WriteString("<li><b>find juan 123</b> - Search for clients matching \"juan\" and \"123\"</li>")
	b.WriteString("<li><b>find 456</b> - Search for clients with ID containing 456</li>")
	b.WriteString("<li><b>fav</b> - Show favourite clients instantly</li>")
	b.WriteString("</ul>")
	b.WriteString(fmt.Sprintf("<p><b>Loaded:</b> %d clients, %d favourites</p>", stats.Clients, stats.Favourites))
	b.WriteString("</messageML>")
	return b.String()
}

func capabilityTitle(c enrichment.Capability) string {
	switch c {
	case enrichment.CapabilityStatus:
		return "Status"
	case enrichment.CapabilityCredit:
		return "Credit"
	case enrichment.CapabilityTrades:
		return "Trades"
	default:
		return string(c)
	}
}

// formatAmount adds thousands separators to a notional amount.
func formatAmount(amount float64) string {
	s := fmt.Sprintf("%.0f", amount)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
