package export

import (
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/joelkehle/patentfolio/internal/canonical"
)

// MaxCSVAbstractChars is the abstract cap in the tabular format; longer
// abstracts are truncated with a trailing ellipsis marker.
const MaxCSVAbstractChars = 500

var csvHeader = []string{
	"Title", "Patent Number", "Issue Date", "Inventors",
	"Assignee", "Abstract", "Google Patents URL",
}

// WriteCSV writes the canonical set as the tabular document consumed for
// manual profile entry.
func WriteCSV(w io.Writer, patents []canonical.Patent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range patents {
		row := []string{
			p.Title,
			p.Number,
			p.Date.String(),
			joinInventors(p.Inventors),
			joinAssignees(p.Assignees),
			truncateAbstract(p.Summary),
			p.URL,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// truncateAbstract caps the abstract at MaxCSVAbstractChars characters,
// never splitting a multi-byte rune.
func truncateAbstract(s string) string {
	if utf8.RuneCountInString(s) <= MaxCSVAbstractChars {
		return s
	}
	return string([]rune(s)[:MaxCSVAbstractChars]) + "..."
}

func joinInventors(inventors []canonical.Inventor) string {
	names := make([]string, 0, len(inventors))
	for _, inv := range inventors {
		names = append(names, inv.Name)
	}
	return strings.Join(names, ", ")
}

func joinAssignees(assignees []canonical.Assignee) string {
	names := make([]string, 0, len(assignees))
	for _, a := range assignees {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}
