package manual

import (
	"encoding/csv"
	"fmt"
	"io"
)

// DefaultTemplateRows is the number of blank entry rows appended after the
// sample row.
const DefaultTemplateRows = 10

var templateHeader = []string{
	"Title", "Patent Number", "Issue Date", "Inventors",
	"Assignee", "Abstract", "Google Patents URL",
}

var templateSample = []string{
	"Method and Apparatus for Dynamic CPU Frequency Scaling",
	"US10123456B2",
	"2023-05-15",
	"Ashok Raj, John Smith, Jane Doe",
	"Intel Corporation",
	"A system and method for dynamically adjusting processor frequency based on workload demand...",
	"https://patents.google.com/patent/US10123456B2",
}

// WriteTemplate emits the manual entry CSV: header, one sample row, then
// blankRows empty rows. Negative blankRows falls back to the default.
func WriteTemplate(w io.Writer, blankRows int) error {
	if blankRows < 0 {
		blankRows = DefaultTemplateRows
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(templateHeader); err != nil {
		return fmt.Errorf("writing template header: %w", err)
	}
	if err := cw.Write(templateSample); err != nil {
		return fmt.Errorf("writing template sample row: %w", err)
	}
	blank := make([]string, len(templateHeader))
	for i := 0; i < blankRows; i++ {
		if err := cw.Write(blank); err != nil {
			return fmt.Errorf("writing template row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTemplateInstructions prints the fill-in guidance that accompanies a
// generated template.
func WriteTemplateInstructions(w io.Writer, filename string) {
	fmt.Fprintf(w, "Created patent template: %s\n", filename)
	fmt.Fprintln(w, "\nInstructions:")
	fmt.Fprintln(w, "1. Search the patent databases manually using the links provided")
	fmt.Fprintln(w, "2. Fill in the patent details in the CSV template")
	fmt.Fprintln(w, "3. Copy data from the CSV when adding patents to a profile manually")
	fmt.Fprintln(w, "\nCSV Format:")
	fmt.Fprintln(w, "- Title: Full patent title")
	fmt.Fprintln(w, "- Patent Number: US patent number (e.g., US10123456B2)")
	fmt.Fprintln(w, "- Issue Date: YYYY-MM-DD format")
	fmt.Fprintln(w, "- Inventors: Comma-separated list")
	fmt.Fprintln(w, "- Assignee: Company name")
	fmt.Fprintln(w, "- Abstract: Brief description (keep under 2000 chars)")
	fmt.Fprintln(w, "- URL: Google Patents link")
}
