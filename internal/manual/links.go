// Package manual backs the fallback workflow for inventors the automated
// sources cannot cover: direct search links plus a CSV entry template.
package manual

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/joelkehle/patentfolio/internal/discovery"
	"github.com/joelkehle/patentfolio/internal/googlepatents"
)

const (
	usptoSearchURL = "https://ppubs.uspto.gov/pubwebapp/static/pages/ppubsbasic.html"
	wipoSearchURL  = "https://patentscope.wipo.int/search/en/search.jsf"
)

// SearchLink pairs a database label with its search URL. The USPTO and WIPO
// portals do not accept query parameters, so those links point at the search
// form and the suggested query travels alongside.
type SearchLink struct {
	Name  string
	URL   string
	Query string
}

// SearchLinks builds the per-database link list for an inventor, in a fixed
// presentation order.
func SearchLinks(inventor, assignee string) []SearchLink {
	googleQuery := googlepatents.BuildSearchQuery(discovery.Query{Inventor: inventor, Assignee: assignee})

	usptoQuery := inventor
	if assignee != "" {
		usptoQuery += " AND " + assignee
	}

	wipoQuery := fmt.Sprintf("IN:(%s)", inventor)
	if assignee != "" {
		wipoQuery += fmt.Sprintf(" AND AN:(%s)", assignee)
	}

	return []SearchLink{
		{
			Name:  "Google Patents",
			URL:   "https://patents.google.com/?q=" + url.QueryEscape(googleQuery),
			Query: googleQuery,
		},
		{Name: "USPTO Public Search", URL: usptoSearchURL, Query: usptoQuery},
		{Name: "WIPO PatentScope", URL: wipoSearchURL, Query: wipoQuery},
	}
}

// WriteInstructions prints the manual search walkthrough for an inventor.
func WriteInstructions(w io.Writer, inventor, assignee string) {
	fmt.Fprintf(w, "\n=== Manual Patent Search for %s ===\n", inventor)
	if assignee != "" {
		fmt.Fprintf(w, "Assignee filter: %s\n", assignee)
	}

	fmt.Fprintln(w, "\nSearch Links:")
	for _, link := range SearchLinks(inventor, assignee) {
		fmt.Fprintf(w, "   %s: %s\n", link.Name, link.URL)
		fmt.Fprintf(w, "      query: %s\n", link.Query)
	}

	fmt.Fprintln(w, "\nManual Process:")
	fmt.Fprintln(w, "1. Open each link above and run the suggested query")
	fmt.Fprintln(w, "2. For each relevant patent found, collect:")
	fmt.Fprintln(w, "   - Patent Title")
	fmt.Fprintln(w, "   - Patent Number (e.g., US10123456B2)")
	fmt.Fprintln(w, "   - Issue/Publication Date")
	fmt.Fprintln(w, "   - All Inventors (verify the target name is listed)")
	fmt.Fprintln(w, "   - Assignee/Applicant")
	fmt.Fprintln(w, "   - Abstract/Summary")
	fmt.Fprintln(w, "   - Patent URL")

	fmt.Fprintln(w, "\nData Collection Template:")
	fmt.Fprintln(w, "Generate a CSV template for easy data entry:")
	fmt.Fprintln(w, "   patent-template -o manual_patents.csv")

	fmt.Fprintln(w, "\nSearch Tips:")
	fmt.Fprintf(w, "- In Google Patents, use an exact match: inventor:%q\n", inventor)
	fmt.Fprintln(w, "- In USPTO, search the Inventor Name field")
	initials := nameVariants(inventor)
	if len(initials) > 0 {
		fmt.Fprintf(w, "- Try name variations (%s)\n", strings.Join(initials, ", "))
	}
	fmt.Fprintln(w, "- Filter by assignee to narrow results")
	fmt.Fprintln(w, "- Check both granted patents and published applications")
}

func nameVariants(inventor string) []string {
	parts := strings.Fields(inventor)
	if len(parts) < 2 {
		return nil
	}
	first, last := parts[0], parts[len(parts)-1]
	return []string{
		fmt.Sprintf("%c. %s", first[0], last),
		fmt.Sprintf("%s %c.", first, last[0]),
	}
}
