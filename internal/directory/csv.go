// internal/directory/csv.go
package directory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	commonerrors "client-lookup-bot/internal/common/errors"
	"client-lookup-bot/internal/common/logger"
)

// Loader ingests tabular rows into the Store. A load either fully succeeds
// and replaces the snapshot, or fully fails and leaves the prior snapshot
// untouched. Sample data is substituted only when no snapshot exists yet.
type Loader struct {
	store  *Store
	path   string
	logger logger.Logger
}

func NewLoader(store *Store, path string, log logger.Logger) *Loader {
	return &Loader{
		store:  store,
		path:   path,
		logger: log.WithFields(map[string]interface{}{"component": "directory-loader"}),
	}
}

// Load ingests the configured CSV source.
func (l *Loader) Load() error {
	return l.LoadFile(l.path)
}

// LoadFile reads the CSV at path and replaces the directory snapshot.
// Columns: client_id, client_name, is_favourite. Fields are trimmed;
// malformed rows are skipped and counted, never aborting the batch.
func (l *Loader) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return commonerrors.NewDirectoryLoadFailedError(err)
	}
	defer f.Close()

	records, skipped, err := l.parse(f)
	if err != nil {
		return commonerrors.NewDirectoryLoadFailedError(err)
	}

	l.store.Replace(records)
	l.logger.Info("directory loaded", map[string]interface{}{
		"path":        path,
		"clients":     len(records),
		"favourites":  len(l.store.All().Favourites),
		"skippedRows": skipped,
	})
	return nil
}

// LoadSample installs the built-in sample directory. Used only when the
// first load fails and no snapshot exists.
func (l *Loader) LoadSample() {
	l.store.Replace(SampleRecords())
	l.logger.Warn("using sample client data", map[string]interface{}{
		"clients": len(SampleRecords()),
	})
}

func (l *Loader) parse(r io.Reader) ([]Record, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"client_id", "client_name", "is_favourite"} {
		if _, ok := cols[required]; !ok {
			return nil, 0, fmt.Errorf("missing column %q", required)
		}
	}

	var records []Record
	skipped := 0
	line := 1
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			decodeErr := commonerrors.NewRowDecodeFailedError(line, err)
			l.logger.Warn("skipping malformed row", map[string]interface{}{
				"line":  line,
				"error": decodeErr.Details,
			})
			skipped++
			continue
		}

		rec, err := rowToRecord(row, cols)
		if err != nil {
			decodeErr := commonerrors.NewRowDecodeFailedError(line, err)
			l.logger.Warn("skipping malformed row", map[string]interface{}{
				"line":  line,
				"error": decodeErr.Details,
			})
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, skipped, fmt.Errorf("no decodable rows")
	}

	return records, skipped, nil
}

func rowToRecord(row []string, cols map[string]int) (Record, error) {
	get := func(name string) (string, error) {
		i := cols[name]
		if i >= len(row) {
			return "", fmt.Errorf("row too short for column %q", name)
		}
		return strings.TrimSpace(row[i]), nil
	}

	id, err := get("client_id")
	if err != nil {
		return Record{}, err
	}
	name, err := get("client_name")
	if err != nil {
		return Record{}, err
	}
	fav, err := get("is_favourite")
	if err != nil {
		return Record{}, err
	}

	if id == "" || name == "" {
		return Record{}, fmt.Errorf("empty client_id or client_name")
	}

	return Record{
		ID:        id,
		Name:      name,
		Favourite: strings.EqualFold(fav, "true"),
	}, nil
}

// SampleRecords returns the fallback directory used when no CSV is present
// on first start.
func SampleRecords() []Record {
	return []Record{
		{ID: "12345", Name: "Juan Pérez", Favourite: true},
		{ID: "67890", Name: "María García", Favourite: false},
		{ID: "11111", Name: "Carlos Rodriguez", Favourite: true},
		{ID: "22222", Name: "Ana Martínez", Favourite: true},
		{ID: "33333", Name: "José López", Favourite: false},
		{ID: "44444", Name: "Carmen Sánchez", Favourite: true},
		{ID: "55555", Name: "Luis Fernández", Favourite: false},
		{ID: "66666", Name: "Isabel Ruiz", Favourite: true},
	}
}
