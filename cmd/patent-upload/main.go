package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/joelkehle/patentfolio/internal/canonical"
	"github.com/joelkehle/patentfolio/internal/linkedin"
)

const defaultRedirectURI = "http://localhost:8080/callback"

func main() {
	clientID := flag.String("client-id", "", "LinkedIn app client ID (falls back to LINKEDIN_CLIENT_ID)")
	clientSecret := flag.String("client-secret", "", "LinkedIn app client secret (falls back to LINKEDIN_CLIENT_SECRET)")
	redirectURI := flag.String("redirect-uri", defaultRedirectURI, "OAuth redirect URI registered with the app")
	noSkipDuplicates := flag.Bool("no-skip-duplicates", false, "Upload even when the patent number already exists on the profile")
	journalPath := flag.String("journal", "", "Record per-patent outcomes in this sqlite file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] patents.json\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	patents, err := loadPatents(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Loaded %d patents from %s\n", len(patents), flag.Arg(0))

	if err := linkedin.ValidatePatents(patents); err != nil {
		log.Fatal(err)
	}

	client, err := linkedin.NewClient(linkedin.Config{
		ClientID:     envFallback(*clientID, "LINKEDIN_CLIENT_ID"),
		ClientSecret: envFallback(*clientSecret, "LINKEDIN_CLIENT_SECRET"),
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := authenticate(ctx, client, *redirectURI); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Authentication successful.")

	cfg := linkedin.UploaderConfig{}
	if *journalPath != "" {
		journal, err := linkedin.OpenJournal(*journalPath)
		if err != nil {
			log.Fatal(err)
		}
		defer journal.Close()
		cfg.Journal = journal
	}

	fmt.Printf("\nUploading %d patents...\n", len(patents))
	results, records, err := linkedin.NewUploader(client, cfg).Upload(ctx, patents, !*noSkipDuplicates)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range records {
		switch r.Outcome {
		case linkedin.OutcomeCreated:
			fmt.Printf("uploaded: %s (%s)\n", r.Title, r.Number)
		case linkedin.OutcomeDuplicate:
			fmt.Printf("skipped duplicate: %s (%s)\n", r.Title, r.Number)
		case linkedin.OutcomeFailed:
			fmt.Printf("failed: %s (%s): %v\n", r.Title, r.Number, r.Err)
		}
	}

	fmt.Println("\n=== Upload Results ===")
	fmt.Printf("Successfully uploaded: %d\n", results.Created)
	fmt.Printf("Failed uploads: %d\n", results.Failed)
	fmt.Printf("Skipped duplicates: %d\n", results.Skipped)
	fmt.Printf("Total processed: %d\n", results.Created+results.Failed+results.Skipped)
}

func loadPatents(path string) ([]canonical.Patent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var patents []canonical.Patent
	if err := json.Unmarshal(data, &patents); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return patents, nil
}

// authenticate runs the console half of the authorization-code flow: show the
// URL, read the pasted code, exchange it for a token.
func authenticate(ctx context.Context, client *linkedin.Client, redirectURI string) error {
	fmt.Println("\n=== LinkedIn Authentication Required ===")
	fmt.Println("1. Open the authorization URL below and log in")
	fmt.Println("2. Authorize the application")
	fmt.Println("3. Copy the 'code' parameter from the redirect URL and paste it here")
	fmt.Printf("\n%s\n\n", client.AuthorizationURL(redirectURI))

	fmt.Print("Enter the authorization code from the redirect URL: ")
	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("no authorization code entered")
	}
	return client.ExchangeCode(ctx, code, redirectURI)
}

func envFallback(v, key string) string {
	if v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(key))
}
