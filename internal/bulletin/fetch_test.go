package bulletin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/law-makers/bulletin/pkg/models"
)

var january = models.Month{Year: 2024, Month: time.January}

func newTestFetcher(baseURL string) *Fetcher {
	return NewFetcher(&http.Client{Timeout: 5 * time.Second}, nil, FetcherOptions{
		BaseURL:   baseURL,
		UserAgent: "TestBulletin/1.0",
		Headers:   map[string]string{"X-Custom-Header": "TestValue"},
	})
}

func TestFetcher_Fetch(t *testing.T) {
	var gotPath, gotUA, gotCustom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		gotCustom = r.Header.Get("X-Custom-Header")
		w.Write([]byte(page(table(familyHeader, familyRowsA))))
	}))
	defer server.Close()

	p, err := newTestFetcher(server.URL).Fetch(context.Background(), january)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if gotPath != "/2024/visa-bulletin-for-january-2024.html" {
		t.Errorf("Unexpected request path %s", gotPath)
	}
	if gotUA != "TestBulletin/1.0" {
		t.Errorf("Expected configured user agent, got %q", gotUA)
	}
	if gotCustom != "TestValue" {
		t.Errorf("Expected custom header, got %q", gotCustom)
	}
	if p.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", p.StatusCode)
	}
	if p.Month != january {
		t.Errorf("Expected month %s, got %s", january, p.Month)
	}
	if p.Doc.Find("table").Length() != 1 {
		t.Errorf("Expected 1 table in parsed document")
	}
}

func TestFetcher_NotFoundMarker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(notFoundPage))
	}))
	defer server.Close()

	_, err := newTestFetcher(server.URL).Fetch(context.Background(), january)
	if !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("Expected ErrPageNotFound, got %v", err)
	}
	if CodeOf(err) != ErrCodeNotFound {
		t.Errorf("Expected NOT_FOUND code, got %s", CodeOf(err))
	}
}

func TestFetcher_NotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := newTestFetcher(server.URL).Fetch(context.Background(), january)
	if !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("Expected ErrPageNotFound, got %v", err)
	}
}

func TestFetcher_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestFetcher(server.URL).Fetch(context.Background(), january)
	if err == nil {
		t.Fatal("Expected error for 503")
	}
	if errors.Is(err, ErrPageNotFound) {
		t.Error("503 must not be treated as a missing bulletin")
	}
	if CodeOf(err) != ErrCodeHTTPStatus {
		t.Errorf("Expected HTTP_STATUS, got %s", CodeOf(err))
	}
}

func TestFetcher_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	_, err := newTestFetcher(baseURL).Fetch(context.Background(), january)
	if err == nil {
		t.Fatal("Expected error for closed server")
	}
	if CodeOf(err) != ErrCodeNetworkError {
		t.Errorf("Expected NETWORK_ERROR, got %v", err)
	}
}

func TestFetcher_URLDefaults(t *testing.T) {
	f := NewFetcher(nil, nil, FetcherOptions{FiscalYearPath: true})
	got := f.URL(models.Month{Year: 2024, Month: time.November})
	want := DefaultBaseURL + "/2025/visa-bulletin-for-november-2024.html"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}
