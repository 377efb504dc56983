package linkedin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joelkehle/patentfolio/internal/canonical"
)

func uploadPatent(number, title string) canonical.Patent {
	return canonical.Patent{
		Title:  title,
		Number: number,
		Status: canonical.StatusGranted,
		Office: canonical.Office{Name: canonical.OfficeName},
	}
}

// fakeProfileAPI serves the minimal profile endpoints the uploader touches.
func fakeProfileAPI(t *testing.T, existing []string, createStatus int) (*httptest.Server, *int32) {
	t.Helper()
	var creates int32
	mux := http.NewServeMux()
	mux.HandleFunc("/people/~", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"member1"}`))
	})
	mux.HandleFunc("/people/member1/patents", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			atomic.AddInt32(&creates, 1)
			w.WriteHeader(createStatus)
			return
		}
		elements := make([]map[string]string, 0, len(existing))
		for _, n := range existing {
			elements = append(elements, map[string]string{"number": n})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"elements": elements})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &creates
}

func authedClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(Config{
		ClientID:     "id",
		ClientSecret: "secret",
		APIBase:      srv.URL,
		OAuthBase:    srv.URL,
		HTTPClient:   srv.Client(),
	})
	if err != nil {
		t.Fatal(err)
	}
	c.accessToken = "token"
	return c
}

func TestValidatePatents(t *testing.T) {
	if err := ValidatePatents([]canonical.Patent{uploadPatent("1", "T")}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if err := ValidatePatents([]canonical.Patent{uploadPatent("", "T")}); err == nil || !strings.Contains(err.Error(), "number") {
		t.Fatalf("expected missing number error, got %v", err)
	}
	if err := ValidatePatents([]canonical.Patent{uploadPatent("1", " ")}); err == nil || !strings.Contains(err.Error(), "title") {
		t.Fatalf("expected missing title error, got %v", err)
	}
}

func TestUploadOutcomes(t *testing.T) {
	srv, creates := fakeProfileAPI(t, []string{"222"}, http.StatusCreated)
	u := NewUploader(authedClient(t, srv), UploaderConfig{SubmitDelay: time.Millisecond})

	patents := []canonical.Patent{
		uploadPatent("111", "New one"),
		uploadPatent("222", "Already on profile"),
	}
	results, records, err := u.Upload(context.Background(), patents, true)
	if err != nil {
		t.Fatal(err)
	}
	if results.Created != 1 || results.Skipped != 1 || results.Failed != 0 {
		t.Fatalf("unexpected results %+v", results)
	}
	if atomic.LoadInt32(creates) != 1 {
		t.Fatalf("expected exactly one create call, got %d", *creates)
	}
	if records[0].Outcome != OutcomeCreated || records[1].Outcome != OutcomeDuplicate {
		t.Fatalf("unexpected record outcomes %+v", records)
	}
}

func TestUploadFailedRecordContinuesBatch(t *testing.T) {
	srv, creates := fakeProfileAPI(t, nil, http.StatusUnprocessableEntity)
	u := NewUploader(authedClient(t, srv), UploaderConfig{SubmitDelay: time.Millisecond})

	results, records, err := u.Upload(context.Background(), []canonical.Patent{
		uploadPatent("111", "A"),
		uploadPatent("112", "B"),
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	if results.Failed != 2 || results.Created != 0 {
		t.Fatalf("unexpected results %+v", results)
	}
	if atomic.LoadInt32(creates) != 2 {
		t.Fatalf("expected both creates attempted, got %d", *creates)
	}
	if records[0].Err == nil {
		t.Fatal("expected per-record error retained")
	}
}

func TestUploadValidationRejectsBeforeAnyCall(t *testing.T) {
	srv, creates := fakeProfileAPI(t, nil, http.StatusCreated)
	u := NewUploader(authedClient(t, srv), UploaderConfig{SubmitDelay: time.Millisecond})

	_, _, err := u.Upload(context.Background(), []canonical.Patent{uploadPatent("", "No number")}, true)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if atomic.LoadInt32(creates) != 0 {
		t.Fatal("expected no create calls after validation failure")
	}
}

func TestUploadCancelledBetweenSubmissions(t *testing.T) {
	srv, _ := fakeProfileAPI(t, nil, http.StatusCreated)
	u := NewUploader(authedClient(t, srv), UploaderConfig{SubmitDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	_, _, err := u.Upload(ctx, []canonical.Patent{uploadPatent("1", "T")}, false)
	if err == nil {
		t.Fatal("expected context cancellation to abort")
	}
}

func TestUploadJournalRecordsOutcomes(t *testing.T) {
	srv, _ := fakeProfileAPI(t, []string{"222"}, http.StatusCreated)
	journal, err := OpenJournal(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer journal.Close()

	u := NewUploader(authedClient(t, srv), UploaderConfig{SubmitDelay: time.Millisecond, Journal: journal})
	_, _, err = u.Upload(context.Background(), []canonical.Patent{
		uploadPatent("111", "New"),
		uploadPatent("222", "Duplicate"),
	}, true)
	if err != nil {
		t.Fatal(err)
	}

	entries, err := journal.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(entries))
	}
	if entries[0].Outcome != string(OutcomeCreated) || entries[1].Outcome != string(OutcomeDuplicate) {
		t.Fatalf("unexpected journal outcomes %+v", entries)
	}
}

func TestAuthorizationURL(t *testing.T) {
	c, err := NewClient(Config{ClientID: "id", ClientSecret: "secret"})
	if err != nil {
		t.Fatal(err)
	}
	u := c.AuthorizationURL("http://localhost:8080/callback")
	for _, want := range []string{"response_type=code", "client_id=id", "redirect_uri=", "scope="} {
		if !strings.Contains(u, want) {
			t.Fatalf("authorization url missing %q: %s", want, u)
		}
	}
}

func TestExchangeCodeStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accessToken" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = r.ParseForm()
		if r.PostForm.Get("grant_type") != "authorization_code" {
			t.Errorf("unexpected grant type %q", r.PostForm.Get("grant_type"))
		}
		_, _ = w.Write([]byte(`{"access_token":"tok123"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(Config{ClientID: "id", ClientSecret: "secret", OAuthBase: srv.URL, HTTPClient: srv.Client()})
	if err := c.ExchangeCode(context.Background(), "code", "http://localhost:8080/callback"); err != nil {
		t.Fatal(err)
	}
	if c.accessToken != "tok123" {
		t.Fatalf("expected stored token, got %q", c.accessToken)
	}
}

func TestAPIRequestsRequireAuthentication(t *testing.T) {
	c, _ := NewClient(Config{ClientID: "id", ClientSecret: "secret"})
	if _, err := c.ProfileID(context.Background()); err == nil {
		t.Fatal("expected error before authentication")
	}
}
