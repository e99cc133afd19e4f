// internal/dispatch/classifier.go
package dispatch

import (
	"strings"
)

// TextRoute is the outcome of free-text classification.
type TextRoute int

const (
	RouteNone TextRoute = iota
	RouteSearch
	RouteFavourites
)

const (
	commandPrefix  = "/"
	mentionMarker  = "@"
	searchTrigger  = "find "
	favouritesWord = "fav"
	maxImplicitLen = 4
)

// stopWords disqualify short messages from implicit search. Substring
// containment over the whole text, matching the conversational filter of
// the lookup room.
var stopWords = []string{
	"hello", "hola", "thanks", "gracias", "how", "como", "please", "por", "favor", "fav",
}

// ClassifyText classifies inbound free-text, first match wins:
// slash commands are reserved and never classified here; "find " routes to
// search with the trigger stripped; exactly "fav" shows favourites; short
// non-conversational text is an implicit search; anything else is ignored.
func ClassifyText(text string) (TextRoute, string) {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	if strings.HasPrefix(lower, commandPrefix) {
		return RouteNone, ""
	}

	if strings.HasPrefix(lower, searchTrigger) {
		return RouteSearch, strings.TrimSpace(trimmed[len(searchTrigger):])
	}

	if lower == favouritesWord {
		return RouteFavourites, ""
	}

	words := strings.Fields(lower)
	if len(words) <= maxImplicitLen && len(lower) > 1 && !strings.HasPrefix(lower, mentionMarker) {
		for _, stop := range stopWords {
			if strings.Contains(lower, stop) {
				return RouteNone, ""
			}
		}
		return RouteSearch, trimmed
	}

	return RouteNone, ""
}

// FormHandlerKind names the handler a form id routes to.
type FormHandlerKind int

const (
	FormHandlerNone FormHandlerKind = iota
	FormHandlerClientSelection
	FormHandlerTradeDocument
)

// formRule binds a form id pattern (exact id or id prefix) to one handler.
type formRule struct {
	exact   string
	prefix  string
	handler FormHandlerKind
}

// formRules is the fixed ruleset. At most one handler may claim a form id;
// overlaps resolve deterministically in matchForm.
var formRules = []formRule{
	{exact: "favourites_bar", handler: FormHandlerClientSelection},
	{prefix: "client_selection_", handler: FormHandlerClientSelection},
	{prefix: "trades_", handler: FormHandlerTradeDocument},
}

// matchForm resolves a form id against rules. Precedence when several rules
// match: exact-id rules beat prefix rules, a longer prefix beats a shorter
// one, and remaining ties go to the rule declared first.
func matchForm(rules []formRule, formID string) FormHandlerKind {
	best := FormHandlerNone
	bestExact := false
	bestPrefixLen := -1

	for _, rule := range rules {
		if rule.exact != "" && rule.exact == formID {
			if !bestExact {
				best = rule.handler
				bestExact = true
			}
			continue
		}
		if bestExact {
			continue
		}
		if rule.prefix != "" && strings.HasPrefix(formID, rule.prefix) {
			if len(rule.prefix) > bestPrefixLen {
				best = rule.handler
				bestPrefixLen = len(rule.prefix)
			}
		}
	}

	return best
}

// ClassifyForm routes a submitted form's identifier to its handler.
func ClassifyForm(formID string) FormHandlerKind {
	return matchForm(formRules, formID)
}
