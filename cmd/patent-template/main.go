package main

import (
	"flag"
	"log"
	"os"

	"github.com/joelkehle/patentfolio/internal/manual"
)

func main() {
	output := flag.String("o", "patent_template.csv", "Output CSV file")
	numRows := flag.Int("n", manual.DefaultTemplateRows, "Number of empty rows to create")
	flag.Parse()

	f, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	if err := manual.WriteTemplate(f, *numRows); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}

	manual.WriteTemplateInstructions(os.Stdout, *output)
}
