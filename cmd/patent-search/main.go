package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/joelkehle/patentfolio/internal/canonical"
	"github.com/joelkehle/patentfolio/internal/discovery"
	"github.com/joelkehle/patentfolio/internal/export"
	"github.com/joelkehle/patentfolio/internal/googlepatents"
	"github.com/joelkehle/patentfolio/internal/manual"
	"github.com/joelkehle/patentfolio/internal/narrative"
	"github.com/joelkehle/patentfolio/internal/patentsview"
	"github.com/joelkehle/patentfolio/internal/portfolio"
	"github.com/joelkehle/patentfolio/internal/telemetry"
)

func main() {
	output := flag.String("o", "patents.json", "Output JSON file")
	assignee := flag.String("assignee", "", "Filter by assignee organization")
	apiKey := flag.String("api-key", "", "PatentsView API key (falls back to PATENTSVIEW_API_KEY)")
	useGoogle := flag.Bool("use-google", false, "Use Google Patents search instead of the PatentsView API")
	listMode := flag.Bool("list", false, "Display patents in table format")
	detailMode := flag.Bool("detail", false, "Display patents in detailed format")
	pdfPath := flag.String("pdf", "", "Write a PDF portfolio report to this path")
	withNarrative := flag.Bool("narrative", false, "Draft a profile highlights paragraph (needs ANTHROPIC_API_KEY)")
	manualHelp := flag.Bool("manual", false, "Print manual search links and instructions, then exit")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] \"Inventor Name\"\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	inventor := strings.TrimSpace(flag.Arg(0))
	if *listMode && *detailMode {
		log.Fatal("cannot use both -list and -detail")
	}

	godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdown, err := telemetry.Setup(ctx, "patent-search")
	if err != nil {
		log.Fatal(err)
	}
	defer shutdown(context.Background())

	if *manualHelp {
		manual.WriteInstructions(os.Stdout, inventor, *assignee)
		return
	}

	adapters := buildAdapters(*useGoogle, *apiKey)

	desc := fmt.Sprintf("Searching for patents by inventor: %s", inventor)
	if *assignee != "" {
		desc += fmt.Sprintf(" assigned to: %s", *assignee)
	}
	if *useGoogle {
		desc += " (using Google Patents)"
	}
	fmt.Println(desc)

	pipeline := discovery.NewPipeline(adapters...)
	result, err := pipeline.Run(ctx, discovery.Query{Inventor: inventor, Assignee: *assignee})
	if err != nil {
		log.Fatal(err)
	}
	if len(result.Patents) == 0 {
		fmt.Println("No patents found for the specified inventor and assignee.")
		return
	}

	summary := portfolio.Analyze(result.Patents)

	switch {
	case *listMode:
		export.WriteTable(os.Stdout, result.Patents)
	case *detailMode:
		export.WriteDetailed(os.Stdout, result.Patents)
	default:
		fmt.Printf("Found %d unique patents\n", len(result.Patents))
	}
	fmt.Println(portfolio.SummaryMarkdown(summary))

	if *withNarrative {
		printNarrative(ctx, inventor, result.Patents, summary)
	}

	// In list/detail mode files are written only for an explicit -o.
	if (!*listMode && !*detailMode) || *output != "patents.json" {
		saveFiles(*output, result)
	}

	if *pdfPath != "" {
		if err := writePDF(ctx, *pdfPath, result, summary); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("PDF report saved to: %s\n", *pdfPath)
	}
}

// buildAdapters assembles the source list. The default run queries the
// PatentsView API when a key is available and always supplements with the
// Google Patents scrape; a missing key skips the API adapter, it is not an
// error. -use-google switches to the scrape alone.
func buildAdapters(useGoogle bool, apiKey string) []discovery.SourceAdapter {
	scraper := googlepatents.New(googlepatents.Config{})
	if useGoogle {
		return []discovery.SourceAdapter{scraper}
	}
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("PATENTSVIEW_API_KEY"))
	}
	api, err := patentsview.New(patentsview.Config{APIKey: apiKey})
	if err != nil {
		log.Printf("patentsview adapter skipped: %v", err)
		return []discovery.SourceAdapter{scraper}
	}
	return []discovery.SourceAdapter{api, scraper}
}

func saveFiles(output string, result discovery.Result) {
	rawPath := strings.Replace(output, ".json", "_raw.json", 1)
	csvPath := strings.Replace(output, ".json", ".csv", 1)

	if err := writeResultJSON(rawPath, result); err != nil {
		log.Fatal(err)
	}
	if err := writeFile(output, func(f *os.File) error {
		return export.WriteJSON(f, result.Patents)
	}); err != nil {
		log.Fatal(err)
	}
	if err := writeFile(csvPath, func(f *os.File) error {
		return export.WriteCSV(f, result.Patents)
	}); err != nil {
		log.Fatal(err)
	}

	fmt.Println("\nFiles saved:")
	fmt.Printf("Profile format: %s\n", output)
	fmt.Printf("Raw data: %s\n", rawPath)
	fmt.Printf("CSV format: %s\n", csvPath)
}

func writeResultJSON(path string, result discovery.Result) error {
	return writeFile(path, func(f *os.File) error {
		return export.WriteResult(f, result)
	})
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writePDF(ctx context.Context, path string, result discovery.Result, sum portfolio.Summary) error {
	report := portfolio.BuildReportMarkdown(result, sum)
	pdf, err := export.NewPDFRenderer().Render(ctx, report)
	if err != nil {
		return fmt.Errorf("rendering PDF report: %w", err)
	}
	return os.WriteFile(path, pdf, 0o644)
}

func printNarrative(ctx context.Context, inventor string, patents []canonical.Patent, sum portfolio.Summary) {
	caller, err := narrative.NewAnthropicCallerFromEnv()
	if err != nil {
		log.Printf("narrative skipped: %v", err)
		return
	}
	text, err := narrative.NewWriter(caller).Write(ctx, inventor, patents, sum)
	if err != nil {
		log.Printf("narrative skipped: %v", err)
		return
	}
	fmt.Println("\nProfile highlights:")
	fmt.Println(text)
}
