package manual

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
)

func TestSearchLinksQueries(t *testing.T) {
	links := SearchLinks("Ashok Raj", "Intel Corporation")
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(links))
	}

	google := links[0]
	if google.Name != "Google Patents" {
		t.Errorf("first link should be Google Patents, got %s", google.Name)
	}
	if google.Query != `inventor:"Ashok Raj" assignee:"Intel Corporation"` {
		t.Errorf("google query = %q", google.Query)
	}
	if !strings.Contains(google.URL, "patents.google.com/?q=") {
		t.Errorf("google URL = %q", google.URL)
	}
	if strings.Contains(google.URL, " ") {
		t.Errorf("google URL should be escaped: %q", google.URL)
	}

	if links[1].Query != "Ashok Raj AND Intel Corporation" {
		t.Errorf("uspto query = %q", links[1].Query)
	}
	if links[2].Query != "IN:(Ashok Raj) AND AN:(Intel Corporation)" {
		t.Errorf("wipo query = %q", links[2].Query)
	}
}

func TestSearchLinksWithoutAssignee(t *testing.T) {
	links := SearchLinks("Ashok Raj", "")
	if links[0].Query != `inventor:"Ashok Raj"` {
		t.Errorf("google query = %q", links[0].Query)
	}
	if links[1].Query != "Ashok Raj" {
		t.Errorf("uspto query = %q", links[1].Query)
	}
	if links[2].Query != "IN:(Ashok Raj)" {
		t.Errorf("wipo query = %q", links[2].Query)
	}
}

func TestWriteInstructions(t *testing.T) {
	var buf bytes.Buffer
	WriteInstructions(&buf, "Ashok Raj", "Intel Corporation")
	out := buf.String()

	for _, want := range []string{
		"Manual Patent Search for Ashok Raj",
		"Assignee filter: Intel Corporation",
		"Google Patents",
		"USPTO Public Search",
		"WIPO PatentScope",
		`inventor:"Ashok Raj"`,
		"A. Raj",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("instructions missing %q", want)
		}
	}
}

func TestWriteTemplate(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplate(&buf, 4); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading template: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected header + sample + 4 blanks, got %d rows", len(rows))
	}
	if rows[0][0] != "Title" || rows[0][6] != "Google Patents URL" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "US10123456B2" {
		t.Errorf("sample row number = %q", rows[1][1])
	}
	for i, cell := range rows[2] {
		if cell != "" {
			t.Errorf("blank row cell %d = %q", i, cell)
		}
	}
}

func TestWriteTemplateDefaultRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplate(&buf, -1); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading template: %v", err)
	}
	if len(rows) != 2+DefaultTemplateRows {
		t.Errorf("expected %d rows, got %d", 2+DefaultTemplateRows, len(rows))
	}
}
