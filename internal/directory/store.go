// internal/directory/store.go
// Package directory holds the in-memory client directory and its derived
// favourites subset. Snapshots are replaced wholesale; readers always see
// either the old snapshot or the fully built new one.
package directory

import (
	"sort"
	"sync"
	"time"

	"client-lookup-bot/internal/common/metrics"
)

// MaxFavourites caps the derived favourites list.
const MaxFavourites = 10

// Record is a single directory entry.
type Record struct {
	ID        string
	Name      string
	Favourite bool
}

// Snapshot is an immutable view of the directory. Favourites is always a
// subset of Clients: flagged records sorted ascending by name, capped at
// MaxFavourites.
type Snapshot struct {
	Clients    []Record
	Favourites []Record
	LoadedAt   time.Time
}

// Stats summarizes the current snapshot for the health endpoint.
type Stats struct {
	Clients    int       `json:"clients"`
	Favourites int       `json:"favourites"`
	LoadedAt   time.Time `json:"loadedAt"`
}

type Store struct {
	mu       sync.RWMutex
	snapshot *Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// Replace builds a snapshot from records, preserving input order, and swaps
// it in atomically. Favourites are recomputed wholesale, never patched.
func (s *Store) Replace(records []Record) {
	snap := buildSnapshot(records)

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	metrics.DirectorySize.WithLabelValues("clients").Set(float64(len(snap.Clients)))
	metrics.DirectorySize.WithLabelValues("favourites").Set(float64(len(snap.Favourites)))
}

// All returns the current snapshot, or an empty one before the first load.
func (s *Store) All() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return &Snapshot{}
	}
	return s.snapshot
}

// Loaded reports whether a snapshot has ever been installed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot != nil
}

// Lookup finds a record by id in the current snapshot.
func (s *Store) Lookup(id string) (Record, bool) {
	snap := s.All()
	for _, r := range snap.Clients {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

func (s *Store) Stats() Stats {
	snap := s.All()
	return Stats{
		Clients:    len(snap.Clients),
		Favourites: len(snap.Favourites),
		LoadedAt:   snap.LoadedAt,
	}
}

func buildSnapshot(records []Record) *Snapshot {
	clients := make([]Record, len(records))
	copy(clients, records)

	var favourites []Record
	for _, r := range clients {
		if r.Favourite {
			favourites = append(favourites, r)
		}
	}
	sort.SliceStable(favourites, func(i, j int) bool {
		return favourites[i].Name < favourites[j].Name
	})
	if len(favourites) > MaxFavourites {
		favourites = favourites[:MaxFavourites]
	}

	return &Snapshot{
		Clients:    clients,
		Favourites: favourites,
		LoadedAt:   time.Now().UTC(),
	}
}
