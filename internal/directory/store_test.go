// internal/directory/store_test.go
package directory

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"client-lookup-bot/internal/common/logger"
)

func createRecord(id, name string, fav bool) Record {
	return Record{ID: id, Name: name, Favourite: fav}
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clients.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStore_FavouritesDerivation(t *testing.T) {
	store := NewStore()
	store.Replace([]Record{
		createRecord("3", "Carmen", true),
		createRecord("1", "Luis", false),
		createRecord("2", "Ana", true),
	})

	snap := store.All()
	require.Len(t, snap.Clients, 3)
	require.Len(t, snap.Favourites, 2)
	assert.Equal(t, "Ana", snap.Favourites[0].Name)
	assert.Equal(t, "Carmen", snap.Favourites[1].Name)

	// Input order preserved for the full list.
	assert.Equal(t, "Carmen", snap.Clients[0].Name)
	assert.Equal(t, "Luis", snap.Clients[1].Name)
}

func TestStore_FavouritesCappedAtTen(t *testing.T) {
	var records []Record
	for i := 0; i < 15; i++ {
		records = append(records, createRecord(
			fmt.Sprintf("%d", i),
			fmt.Sprintf("Client %02d", i),
			true,
		))
	}

	store := NewStore()
	store.Replace(records)

	snap := store.All()
	require.Len(t, snap.Favourites, MaxFavourites)
	for i := 1; i < len(snap.Favourites); i++ {
		assert.LessOrEqual(t, snap.Favourites[i-1].Name, snap.Favourites[i].Name)
	}
}

func TestStore_LookupByID(t *testing.T) {
	store := NewStore()
	store.Replace([]Record{createRecord("12345", "Juan Pérez", true)})

	rec, ok := store.Lookup("12345")
	require.True(t, ok)
	assert.Equal(t, "Juan Pérez", rec.Name)

	_, ok = store.Lookup("99999")
	assert.False(t, ok)
}

func TestStore_EmptyBeforeFirstLoad(t *testing.T) {
	store := NewStore()
	assert.False(t, store.Loaded())
	assert.Empty(t, store.All().Clients)
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeCSV(t, "client_id,client_name,is_favourite\n"+
		" 12345 , Juan Pérez ,true\n"+
		"67890,María García,false\n")

	store := NewStore()
	loader := NewLoader(store, path, logger.NewTestLogger(t))

	require.NoError(t, loader.Load())

	snap := store.All()
	require.Len(t, snap.Clients, 2)
	// Whitespace trimmed on ingest.
	assert.Equal(t, "12345", snap.Clients[0].ID)
	assert.Equal(t, "Juan Pérez", snap.Clients[0].Name)
	assert.True(t, snap.Clients[0].Favourite)
	assert.False(t, snap.Clients[1].Favourite)
}

func TestLoader_MalformedRowSkippedNotFatal(t *testing.T) {
	path := writeCSV(t, "client_id,client_name,is_favourite\n"+
		"12345,Juan Pérez,true\n"+
		",,\n"+
		"67890,María García,false\n")

	store := NewStore()
	loader := NewLoader(store, path, logger.NewTestLogger(t))

	require.NoError(t, loader.Load())
	assert.Len(t, store.All().Clients, 2)
}

func TestLoader_ReloadFailureKeepsPriorSnapshot(t *testing.T) {
	path := writeCSV(t, "client_id,client_name,is_favourite\n12345,Juan Pérez,true\n")

	store := NewStore()
	loader := NewLoader(store, path, logger.NewTestLogger(t))
	require.NoError(t, loader.Load())
	require.Len(t, store.All().Clients, 1)

	broken := NewLoader(store, filepath.Join(t.TempDir(), "missing.csv"), logger.NewTestLogger(t))
	err := broken.Load()
	require.Error(t, err)

	// Prior snapshot stays usable.
	assert.Len(t, store.All().Clients, 1)
	assert.Equal(t, "Juan Pérez", store.All().Clients[0].Name)
}

func TestLoader_MissingColumnFailsWholeLoad(t *testing.T) {
	path := writeCSV(t, "client_id,client_name\n12345,Juan Pérez\n")

	store := NewStore()
	loader := NewLoader(store, path, logger.NewTestLogger(t))

	err := loader.Load()
	require.Error(t, err)
	assert.False(t, store.Loaded())
}

func TestLoader_LoadSample(t *testing.T) {
	store := NewStore()
	loader := NewLoader(store, "unused.csv", logger.NewTestLogger(t))

	loader.LoadSample()
	snap := store.All()
	assert.Len(t, snap.Clients, 8)
	assert.NotEmpty(t, snap.Favourites)
}
