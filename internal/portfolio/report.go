package portfolio

import (
	"fmt"
	"strings"
	"time"

	"github.com/joelkehle/patentfolio/internal/discovery"
)

// BuildReportMarkdown renders a discovery run and its portfolio summary as a
// human-readable markdown report.
func BuildReportMarkdown(res discovery.Result, sum Summary) string {
	var b strings.Builder
	buildHeader(&b, res)
	if len(res.Patents) == 0 {
		fmt.Fprintf(&b, "No patents found for the specified inventor and assignee.\n")
		return b.String()
	}
	buildPatentTable(&b, res)
	buildSummarySection(&b, sum)
	buildMetadata(&b, res)
	return b.String()
}

func buildHeader(b *strings.Builder, res discovery.Result) {
	fmt.Fprintf(b, "# Patent Portfolio Report\n\n")
	fmt.Fprintf(b, "- Inventor: %s\n", safe(res.Query.Inventor))
	if strings.TrimSpace(res.Query.Assignee) != "" {
		fmt.Fprintf(b, "- Assignee filter: %s\n", safe(res.Query.Assignee))
	}
	fmt.Fprintf(b, "- Date: %s\n\n", time.Now().Format(time.RFC3339))
}

func buildPatentTable(b *strings.Builder, res discovery.Result) {
	fmt.Fprintf(b, "## Patents\n\n")
	fmt.Fprintf(b, "| Patent Number | Title | Issue Date | Assignee |\n|---|---|---|---|\n")
	for _, p := range res.Patents {
		assignee := ""
		if len(p.Assignees) > 0 {
			assignee = p.Assignees[0].Name
		}
		number := p.Number
		if p.URL != "" {
			number = fmt.Sprintf("[%s](%s)", p.Number, p.URL)
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", number, safe(p.Title), safe(p.Date.String()), safe(assignee))
	}
	b.WriteString("\n")
}

// SummaryMarkdown renders only the portfolio summary section, for terminal
// output beneath a table or detailed listing.
func SummaryMarkdown(sum Summary) string {
	var b strings.Builder
	buildSummarySection(&b, sum)
	return b.String()
}

func buildSummarySection(b *strings.Builder, sum Summary) {
	fmt.Fprintf(b, "## Portfolio Summary\n\n")
	fmt.Fprintf(b, "- **%d total patents**\n", sum.TotalPatents)
	if sum.MinYear != 0 {
		fmt.Fprintf(b, "- Patent timeline: **%d - %d** (%d years)\n", sum.MinYear, sum.MaxYear, sum.MaxYear-sum.MinYear+1)
	}
	if sum.EarliestNumber != "" {
		fmt.Fprintf(b, "- Patent numbers range: **%s** to **%s**\n", sum.EarliestNumber, sum.LatestNumber)
	}
	var areas []CategoryCount
	for _, c := range sum.Categories {
		if c.Count > 0 {
			areas = append(areas, c)
		}
	}
	if len(areas) > 0 {
		fmt.Fprintf(b, "- Key technology areas:\n")
		for _, c := range areas {
			fmt.Fprintf(b, "  - **%s** (%d patents)\n", c.Label, c.Count)
		}
	}
	if sum.PatentsPerYear != nil {
		fmt.Fprintf(b, "- Average innovation rate: **%.1f patents/year**\n", *sum.PatentsPerYear)
	}
	b.WriteString("\n")
}

func buildMetadata(b *strings.Builder, res discovery.Result) {
	fmt.Fprintf(b, "## Metadata\n\n")
	fmt.Fprintf(b, "- Runtime (ms): %d\n", res.Metadata.DurationMS)
	if len(res.Metadata.SourcesQueried) > 0 {
		fmt.Fprintf(b, "- Sources: %s\n", strings.Join(res.Metadata.SourcesQueried, ", "))
	}
	fmt.Fprintf(b, "- Records fetched: %d\n", res.Metadata.RecordsFetched)
	fmt.Fprintf(b, "- Records matched: %d\n", res.Metadata.RecordsMatched)
	fmt.Fprintf(b, "- Duplicates dropped: %d\n", res.Metadata.DuplicatesDropped)
}

func safe(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(none)"
	}
	return strings.ReplaceAll(s, "\n", " ")
}
