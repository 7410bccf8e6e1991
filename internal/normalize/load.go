package normalize

import (
	"context"

	"github.com/jonathan/fm-scout/internal/fetch"
	"github.com/jonathan/fm-scout/internal/ingestion"
	"github.com/jonathan/fm-scout/internal/types"
)

// Load reads the export at source (file path or http(s) URL) and normalizes it.
// The source is recorded on the table unless opts.Source is set.
func Load(ctx context.Context, source string, fetchOpts *fetch.Options, opts Options) (*types.Table, *ingestion.Metadata, error) {
	doc, err := ingestion.Load(ctx, source, fetchOpts)
	if err != nil {
		return nil, nil, err
	}

	if opts.Source == "" {
		opts.Source = source
	}
	table, err := Normalize(doc.Raw, opts)
	if err != nil {
		return nil, doc.Metadata, err
	}
	return table, doc.Metadata, nil
}
