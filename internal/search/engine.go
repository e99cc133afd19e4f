// internal/search/engine.go
// Package search ranks directory records against a free-text query.
package search

import (
	"sort"
	"strings"

	"client-lookup-bot/internal/directory"
)

// Search returns the records matching query, favourites first then name
// ascending. An empty query is an explicit no-op and returns nothing; it
// never means "all records". A record matches iff every whitespace token of
// the lowercased query is a substring of the record's lowercased name or id.
func Search(query string, snap *directory.Snapshot) []directory.Record {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return nil
	}

	terms := strings.Fields(query)

	var matches []directory.Record
	for _, rec := range snap.Clients {
		if matchesAll(rec, terms) {
			matches = append(matches, rec)
		}
	}

	// Stable two-way partition: favourites before non-favourites, then
	// alphabetical by name within each partition.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Favourite != matches[j].Favourite {
			return matches[i].Favourite
		}
		return matches[i].Name < matches[j].Name
	})

	return matches
}

func matchesAll(rec directory.Record, terms []string) bool {
	name := strings.ToLower(rec.Name)
	id := strings.ToLower(rec.ID)
	for _, term := range terms {
		if !strings.Contains(name, term) && !strings.Contains(id, term) {
			return false
		}
	}
	return true
}
