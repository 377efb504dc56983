package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/joelkehle/patentfolio/internal/canonical"
)

// WriteTable writes a compact number+title listing.
func WriteTable(w io.Writer, patents []canonical.Patent) {
	if len(patents) == 0 {
		fmt.Fprintln(w, "No patents to display")
		return
	}
	fmt.Fprintf(w, "\n=== Found %d Patents ===\n\n", len(patents))
	fmt.Fprintf(w, "%-15s %-80s\n", "Patent Number", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 95))
	for _, p := range patents {
		title := p.Title
		if len(title) > 77 {
			title = title[:74] + "..."
		}
		fmt.Fprintf(w, "%-15s %-80s\n", orNA(p.Number), title)
	}
	fmt.Fprintln(w, strings.Repeat("-", 95))
	fmt.Fprintf(w, "Total: %d patents\n", len(patents))
}

// WriteDetailed writes one section per patent with every exported field.
func WriteDetailed(w io.Writer, patents []canonical.Patent) {
	if len(patents) == 0 {
		fmt.Fprintln(w, "No patents to display")
		return
	}
	fmt.Fprintf(w, "\n=== Found %d Patents (Detailed View) ===\n\n", len(patents))
	for i, p := range patents {
		fmt.Fprintln(w, strings.Repeat("=", 80))
		fmt.Fprintf(w, "Patent %d of %d\n", i+1, len(patents))
		fmt.Fprintln(w, strings.Repeat("=", 80))
		fmt.Fprintf(w, "Title: %s\n", orNA(p.Title))
		fmt.Fprintf(w, "Patent Number: US%s\n", orNA(p.Number))
		if names := joinNonEmptyInventors(p.Inventors); names != "" {
			fmt.Fprintf(w, "Inventors: %s\n", names)
		} else {
			fmt.Fprintln(w, "Inventors: Not available")
		}
		if p.URL != "" {
			fmt.Fprintf(w, "URL: %s\n", p.URL)
		} else {
			fmt.Fprintln(w, "URL: Not available")
		}
		if p.Summary != "" {
			fmt.Fprintf(w, "Abstract: %s\n", p.Summary)
		} else {
			fmt.Fprintln(w, "Abstract: Not available")
		}
		if d := p.Date.String(); d != "" {
			fmt.Fprintf(w, "Issue Date: %s\n", d)
		} else {
			fmt.Fprintln(w, "Issue Date: Not available")
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "Total: %d patents\n", len(patents))
}

func joinNonEmptyInventors(inventors []canonical.Inventor) string {
	var names []string
	for _, inv := range inventors {
		if strings.TrimSpace(inv.Name) != "" {
			names = append(names, inv.Name)
		}
	}
	return strings.Join(names, ", ")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
