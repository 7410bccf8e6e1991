package ingestion

import (
	"bytes"
	"context"
	"os"

	"github.com/jonathan/fm-scout/internal/fetch"
	"github.com/jonathan/fm-scout/internal/types"
)

// Document is an export read from a file or URL.
type Document struct {
	Raw      *types.RawTable
	Metadata *Metadata
}

// Load reads the export at source, which is either a local file path or an http(s) URL.
func Load(ctx context.Context, source string, opts *fetch.Options) (*Document, error) {
	content, err := readSource(ctx, source, opts)
	if err != nil {
		return nil, err
	}

	raw, err := ReadHTML(bytes.NewReader(content))
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Source = source
		}
		return nil, err
	}

	meta := NewMetadata(content, source)
	meta.Columns = len(raw.Columns)
	meta.Rows = len(raw.Rows)

	return &Document{Raw: raw, Metadata: meta}, nil
}

func readSource(ctx context.Context, source string, opts *fetch.Options) ([]byte, error) {
	if fetch.IsURL(source) {
		res, err := fetch.URL(ctx, source, opts)
		if err != nil {
			return nil, &LoadError{Source: source, Message: "failed to fetch export", Cause: err}
		}
		return res.Body, nil
	}

	content, err := os.ReadFile(source)
	if err != nil {
		return nil, &LoadError{Source: source, Message: "failed to read export file", Cause: err}
	}
	return content, nil
}
