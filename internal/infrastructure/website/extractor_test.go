package website

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
	"github.com/mlazarev/campaign-engine/internal/taxonomy"
)

const bakeryPage = `<!DOCTYPE html>
<html>
<head>
<title>Cozy Crumb Bakery | Fresh Sourdough Daily</title>
<meta name="description" content="Neighborhood bakery and cafe with a seasonal pastry menu">
</head>
<body>
<h1>Welcome to Cozy Crumb</h1>
<p>We are a neighborhood bakery baking sourdough in a wood-fired kitchen.</p>
<ul>
<li>Sourdough loaves</li>
<li>Croissants</li>
<li>Seasonal cakes</li>
</ul>
</body>
</html>`

func mustTable(t *testing.T) *taxonomy.Table {
	t.Helper()
	table, err := taxonomy.Default()
	if err != nil {
		t.Fatalf("load taxonomy: %v", err)
	}
	return table
}

func TestExtractDistillsBusinessFacts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(bakeryPage))
	}))
	defer server.Close()

	extractor := New(mustTable(t), Options{RatePerSec: 100})
	evidence, ok := extractor.Extract(context.Background(), domain.WebsiteLinks{Website: server.URL})

	if !ok {
		t.Fatalf("expected usable evidence")
	}
	if evidence.CompanyName != "Cozy Crumb Bakery" {
		t.Fatalf("expected cleaned title as company name, got %q", evidence.CompanyName)
	}
	if !containsWord(evidence.IndustryKeywords, "bakery") {
		t.Fatalf("expected bakery keyword, got %v", evidence.IndustryKeywords)
	}
	if len(evidence.Products) == 0 {
		t.Fatalf("expected list items as products")
	}
	if evidence.PageExcerpt == "" {
		t.Fatalf("expected page excerpt")
	}
}

func TestExtractPrefersOGSiteName(t *testing.T) {
	page := `<html><head><title>Home</title><meta property="og:site_name" content="Silver Birch Studio"></head><body><p>wedding photography portraits</p></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	extractor := New(mustTable(t), Options{RatePerSec: 100})
	evidence, ok := extractor.Extract(context.Background(), domain.WebsiteLinks{Website: server.URL})

	if !ok {
		t.Fatalf("expected evidence")
	}
	if evidence.CompanyName != "Silver Birch Studio" {
		t.Fatalf("expected og:site_name, got %q", evidence.CompanyName)
	}
}

func TestExtractMergesKeywordsAcrossPages(t *testing.T) {
	main := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Acme</title></head><body><p>software platform automation</p></body></html>`))
	}))
	defer main.Close()
	about := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>our saas startup builds developer tools</p></body></html>`))
	}))
	defer about.Close()

	extractor := New(mustTable(t), Options{RatePerSec: 100})
	evidence, ok := extractor.Extract(context.Background(), domain.WebsiteLinks{
		Website:   main.URL,
		AboutPage: about.URL,
	})

	if !ok {
		t.Fatalf("expected evidence")
	}
	for _, want := range []string{"software", "platform", "saas", "startup"} {
		if !containsWord(evidence.IndustryKeywords, want) {
			t.Fatalf("expected union to include %q, got %v", want, evidence.IndustryKeywords)
		}
	}
	if evidence.CompanyName != "Acme" {
		t.Fatalf("primary site must win company name, got %q", evidence.CompanyName)
	}
}

func TestExtractUnreachableHostSoftFails(t *testing.T) {
	extractor := New(mustTable(t), Options{RatePerSec: 100, FetchTimeout: 500 * time.Millisecond})

	evidence, ok := extractor.Extract(context.Background(), domain.WebsiteLinks{
		Website: "http://127.0.0.1:1",
	})

	if ok {
		t.Fatalf("expected soft failure")
	}
	if !evidence.Empty() {
		t.Fatalf("expected empty evidence, got %+v", evidence)
	}
}

func TestExtractHTTPErrorSoftFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	extractor := New(mustTable(t), Options{RatePerSec: 100})
	_, ok := extractor.Extract(context.Background(), domain.WebsiteLinks{Website: server.URL})
	if ok {
		t.Fatalf("expected soft failure on 404")
	}
}

func TestExtractNoLinks(t *testing.T) {
	extractor := New(mustTable(t), Options{})
	if _, ok := extractor.Extract(context.Background(), domain.WebsiteLinks{}); ok {
		t.Fatalf("expected no evidence without links")
	}
}

func TestParsePageToleratesMalformedHTML(t *testing.T) {
	facts := parsePage("<html><body><h1>Broken <p>wedding photography")
	if len(facts.words) == 0 {
		t.Fatalf("expected words from malformed html")
	}
}

func containsWord(words []string, want string) bool {
	for _, word := range words {
		if word == want {
			return true
		}
	}
	return false
}
