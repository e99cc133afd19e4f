// internal/document/delivery.go
// Package document resolves a trade identifier to its source document for
// attachment to a reply.
package document

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	commonerrors "client-lookup-bot/internal/common/errors"
	"client-lookup-bot/internal/common/httpclient"
	"client-lookup-bot/internal/common/logger"
)

// DefaultExtension is appended when the backend supplies no filename hint.
const DefaultExtension = "pdf"

// Payload is a fetched document ready for attachment.
type Payload struct {
	Filename string
	Bytes    []byte
}

type Fetcher struct {
	baseURL string
	timeout time.Duration
	client  *httpclient.Client
	logger  logger.Logger
}

// NewFetcher builds a document fetcher. Documents carry larger payloads than
// enrichment responses, so the timeout bound here is the longer one.
func NewFetcher(baseURL string, timeout time.Duration, log logger.Logger) *Fetcher {
	return &Fetcher{
		baseURL: baseURL,
		timeout: timeout,
		client:  httpclient.NewClient(timeout),
		logger:  log.WithFields(map[string]interface{}{"component": "document-fetcher"}),
	}
}

// Fetch retrieves the source document for a trade number. 404 maps to
// DOCUMENT_NOT_FOUND so the caller can reply "contract not found" rather
// than a generic failure.
func (f *Fetcher) Fetch(ctx context.Context, tradeNumber string) (*Payload, error) {
	callCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/document/%s", f.baseURL, tradeNumber)
	resp, err := f.client.Get(callCtx, url)
	if err != nil {
		return nil, commonerrors.NewDocumentFailedError(tradeNumber, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, commonerrors.NewDocumentNotFoundError(tradeNumber)
	default:
		return nil, commonerrors.NewDocumentFailedError(tradeNumber,
			fmt.Errorf("backend returned %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, commonerrors.NewDocumentFailedError(tradeNumber, err)
	}

	filename := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if filename == "" {
		filename = fmt.Sprintf("%s.%s", tradeNumber, DefaultExtension)
	}

	f.logger.Info("document fetched", map[string]interface{}{
		"tradeNumber": tradeNumber,
		"filename":    filename,
		"bytes":       len(data),
	})

	return &Payload{Filename: filename, Bytes: data}, nil
}

func filenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["filename"])
}
