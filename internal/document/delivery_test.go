// internal/document/delivery_test.go
package document

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "client-lookup-bot/internal/common/errors"
	"client-lookup-bot/internal/common/logger"
)

func newTestFetcher(t *testing.T, baseURL string) *Fetcher {
	return NewFetcher(baseURL, 2*time.Second, logger.NewTestLogger(t))
}

func TestFetcher_DispositionFilenameUsed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="confirmation-T-1.pdf"`)
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	payload, err := newTestFetcher(t, srv.URL).Fetch(context.Background(), "T-1")
	require.NoError(t, err)
	assert.Equal(t, "confirmation-T-1.pdf", payload.Filename)
	assert.Equal(t, []byte("%PDF-1.4 fake"), payload.Bytes)
}

func TestFetcher_FilenameFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("doc-bytes"))
	}))
	defer srv.Close()

	payload, err := newTestFetcher(t, srv.URL).Fetch(context.Background(), "T-2024-001")
	require.NoError(t, err)
	assert.Equal(t, "T-2024-001.pdf", payload.Filename)
}

func TestFetcher_NotFoundIsDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestFetcher(t, srv.URL).Fetch(context.Background(), "T-404")
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeDocumentNotFound, commonerrors.CodeOf(err))
}

func TestFetcher_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestFetcher(t, srv.URL).Fetch(context.Background(), "T-500")
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeDocumentFailed, commonerrors.CodeOf(err))
}

func TestFetcher_MalformedDispositionFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", "not a disposition;;;")
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	payload, err := newTestFetcher(t, srv.URL).Fetch(context.Background(), "T-3")
	require.NoError(t, err)
	assert.Equal(t, "T-3.pdf", payload.Filename)
}
