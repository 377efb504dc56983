// Package export renders canonical patent sets in the formats the downstream
// profile tooling consumes: a pretty-printed JSON document, a CSV for manual
// entry, terminal listings, and a PDF of the portfolio report.
package export

import (
	"encoding/json"
	"io"

	"github.com/joelkehle/patentfolio/internal/canonical"
	"github.com/joelkehle/patentfolio/internal/discovery"
)

// WriteJSON writes the canonical set as a pretty-printed JSON array.
func WriteJSON(w io.Writer, patents []canonical.Patent) error {
	if patents == nil {
		patents = []canonical.Patent{}
	}
	b, err := json.MarshalIndent(patents, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// WriteResult writes the full discovery result, query and run metadata
// included. This is the raw artifact kept alongside the canonical set.
func WriteResult(w io.Writer, result discovery.Result) error {
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
