package investing

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"uaestocks/internal/provider"
)

// Default selector hooks of the equity product page.
var (
	DefaultPriceSelectors = []string{
		"div[data-test='instrument-price-last']",
		"span[data-test='instrument-price-last']",
	}
	DefaultChangeSelector = "span[data-test='instrument-price-change']"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls the scrape provider.
type Config struct {
	Name string
	// Targets maps a ticker to the product page scraped for it.
	Targets map[string]string
	// UserAgent is sent on every request; pages reject obvious bots.
	UserAgent      string
	PriceSelectors []string
	ChangeSelector string
}

// Provider scrapes one HTML page per symbol. A field whose text cannot be
// parsed comes back null; only transport and status failures are errors.
type Provider struct {
	cfg    Config
	client HTTPClient
}

func New(cfg Config, hc HTTPClient) *Provider {
	if cfg.Name == "" {
		cfg.Name = "Investing"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0"
	}
	if len(cfg.PriceSelectors) == 0 {
		cfg.PriceSelectors = DefaultPriceSelectors
	}
	if cfg.ChangeSelector == "" {
		cfg.ChangeSelector = DefaultChangeSelector
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

// Fetch scrapes the configured page of every requested symbol, one after another.
// Symbols without a target are ignored.
func (p *Provider) Fetch(ctx context.Context, symbols []string) ([]provider.Quote, error) {
	out := make([]provider.Quote, 0, len(symbols))
	for _, s := range symbols {
		u, ok := p.cfg.Targets[s]
		if !ok || u == "" {
			continue
		}
		q, err := p.Scrape(ctx, s, u)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// Scrape fetches url and extracts a full quote record for symbol.
func (p *Provider) Scrape(ctx context.Context, symbol, url string) (provider.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return provider.Quote{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.cfg.UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := p.client.Do(req)
	if err != nil {
		return provider.Quote{}, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return provider.Quote{}, provider.StatusError(http.MethodGet, url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return provider.Quote{}, fmt.Errorf("parsing %s: %w", url, err)
	}
	price, change := ParseDocument(doc, p.cfg.PriceSelectors, p.cfg.ChangeSelector)

	q := provider.NewQuote(symbol, p.cfg.Name)
	q.Fields[provider.FieldLast] = price
	q.Fields[provider.FieldChange] = change
	q.SetNull(provider.FieldVolume)
	q.SetNull(provider.FieldValueAED)
	return q, nil
}

// ParseDocument returns the first price selector whose text parses, and the
// change value. Fields that cannot be found or parsed are null.
func ParseDocument(doc *goquery.Document, priceSelectors []string, changeSelector string) (price, change decimal.NullDecimal) {
	for _, sel := range priceSelectors {
		if d, ok := selectNumber(doc, sel); ok {
			price = decimal.NullDecimal{Decimal: d, Valid: true}
			break
		}
	}
	if d, ok := selectNumber(doc, changeSelector); ok {
		change = decimal.NullDecimal{Decimal: d, Valid: true}
	}
	return price, change
}

func selectNumber(doc *goquery.Document, sel string) (decimal.Decimal, bool) {
	if sel == "" {
		return decimal.Decimal{}, false
	}
	text := strings.TrimSpace(doc.Find(sel).First().Text())
	if text == "" {
		return decimal.Decimal{}, false
	}
	d, err := ParseNumber(text)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ParseNumber parses page text such as "1,234.50" or "+0.020".
func ParseNumber(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "−", "-")
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty number")
	}
	return decimal.NewFromString(s)
}
