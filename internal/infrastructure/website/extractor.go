// Package website fetches the caller-supplied business URLs and distills
// them into profile evidence. Every failure here is a soft failure: the
// extractor reports empty evidence instead of erroring, so the workflow is
// never blocked on an unreachable or broken site.
package website

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
	"github.com/mlazarev/campaign-engine/internal/infrastructure/resilience"
	"github.com/mlazarev/campaign-engine/internal/taxonomy"
)

const (
	defaultFetchTimeout = 8 * time.Second
	maxBodyBytes        = 1 << 20
	maxExcerptChars     = 500
	maxProducts         = 8
)

type Extractor struct {
	httpClient   *http.Client
	fetchTimeout time.Duration
	limiter      *rate.Limiter
	executor     *resilience.Executor
	taxonomy     *taxonomy.Table
	logger       *slog.Logger
}

type Options struct {
	FetchTimeout time.Duration
	RatePerSec   float64
	Burst        int
	Executor     *resilience.Executor
	Logger       *slog.Logger
}

func New(table *taxonomy.Table, options Options) *Extractor {
	timeout := options.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	perSec := options.RatePerSec
	if perSec <= 0 {
		perSec = 2
	}
	burst := options.Burst
	if burst <= 0 {
		burst = 1
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		httpClient:   &http.Client{Timeout: timeout},
		fetchTimeout: timeout,
		limiter:      rate.NewLimiter(rate.Limit(perSec), burst),
		executor:     options.Executor,
		taxonomy:     table,
		logger:       logger,
	}
}

// Extract fetches each supplied URL, merging keyword sets across pages.
// The primary business website wins company-name extraction. Fetch errors,
// timeouts and malformed HTML only shrink the evidence, never abort it;
// ok=false means nothing usable was collected.
func (e *Extractor) Extract(ctx context.Context, links domain.WebsiteLinks) (domain.WebsiteEvidence, bool) {
	if links.Empty() {
		return domain.WebsiteEvidence{}, false
	}

	evidence := domain.WebsiteEvidence{}
	keywords := newOrderedSet()
	products := newOrderedSet()

	// links.All keeps the primary business website first, so first-wins
	// assignment below is exactly the "primary wins" policy.
	for _, url := range links.All() {
		page, err := e.fetchPage(ctx, url)
		if err != nil {
			e.logger.Warn("website_fetch_failed", "url", url, "error", err)
			continue
		}

		if evidence.CompanyName == "" {
			evidence.CompanyName = page.companyName
		}
		if evidence.PageExcerpt == "" {
			evidence.PageExcerpt = page.excerpt
		}

		for _, keyword := range e.taxonomy.KnownKeywords(page.words) {
			keywords.add(keyword)
		}
		for _, product := range page.products {
			products.add(product)
		}
	}

	evidence.IndustryKeywords = keywords.items()
	evidence.Products = capSlice(products.items(), maxProducts)
	if evidence.PageExcerpt == "" && evidence.CompanyName == "" &&
		len(evidence.IndustryKeywords) == 0 && len(evidence.Products) == 0 {
		return domain.WebsiteEvidence{}, false
	}
	return evidence, true
}

func (e *Extractor) fetchPage(ctx context.Context, url string) (*pageFacts, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var facts *pageFacts
	fetch := func(ctx context.Context) error {
		fetchCtx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
		defer cancel()

		raw, err := e.download(fetchCtx, url)
		if err != nil {
			return err
		}
		facts = parsePage(raw)
		return nil
	}

	var err error
	if e.executor != nil {
		err = e.executor.Execute(ctx, "website.fetch", fetch, classifyFetchError)
	} else {
		err = fetch(ctx)
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrNetwork, "fetch website", err)
	}
	return facts, nil
}

func (e *Extractor) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", &fetchStatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}
	return string(body), nil
}

type fetchStatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *fetchStatusError) Error() string {
	return fmt.Sprintf("fetch %s status: %s", e.URL, e.Status)
}

type orderedSet struct {
	seen map[string]struct{}
	out  []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(value string) {
	key := strings.ToLower(strings.TrimSpace(value))
	if key == "" {
		return
	}
	if _, dup := s.seen[key]; dup {
		return
	}
	s.seen[key] = struct{}{}
	s.out = append(s.out, strings.TrimSpace(value))
}

func (s *orderedSet) items() []string {
	return s.out
}

func capSlice(values []string, max int) []string {
	if len(values) > max {
		return values[:max]
	}
	return values
}
