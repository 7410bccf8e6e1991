// Package ingestion reads player exports into string-typed tables.
package ingestion

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/fm-scout/internal/types"
)

var headerSpace = regexp.MustCompile(`\s+`)

// ReadHTML extracts the first table of an HTML export. The header comes from the
// table's <thead> when present, otherwise from its first row.
func ReadHTML(r io.Reader) (*types.RawTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &LoadError{Source: "html", Message: "failed to parse HTML", Cause: err}
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, &SchemaError{Message: "document contains no table"}
	}
	table := tables.First()

	hasHead := table.Find("thead tr").Length() > 0
	raw := &types.RawTable{}
	headerDone := false

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		// Rows of nested tables belong to cells, not to this table.
		if row.ParentsFiltered("table").First().Get(0) != table.Get(0) {
			return
		}
		inHead := row.ParentsFiltered("thead").Length() > 0

		cells := row.ChildrenFiltered("th,td")
		if cells.Length() == 0 {
			return
		}

		if !headerDone && (inHead || !hasHead) {
			cells.Each(func(_ int, c *goquery.Selection) {
				raw.Columns = append(raw.Columns, headerSpace.ReplaceAllString(strings.TrimSpace(c.Text()), " "))
			})
			headerDone = true
			return
		}
		if inHead {
			return
		}

		values := make([]string, 0, cells.Length())
		cells.Each(func(_ int, c *goquery.Selection) {
			values = append(values, c.Text())
		})
		raw.Rows = append(raw.Rows, values)
	})

	if len(raw.Columns) == 0 {
		return nil, &SchemaError{Message: "table has no header row"}
	}

	return raw, nil
}

// ValidateColumns checks that raw carries every column of the export schema.
func ValidateColumns(raw *types.RawTable) error {
	present := make(map[string]bool, len(raw.Columns))
	for _, c := range raw.Columns {
		present[c] = true
	}

	var missing []string
	for _, c := range types.RequiredRawColumns() {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Message: "export does not match the player table schema", Missing: missing}
	}
	return nil
}
