package investing

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"uaestocks/internal/provider"
)

const pricePage = `<html><body>
<div data-test="instrument-price-last">  </div>
<span data-test="instrument-price-last">1,234.50</span>
<span data-test="instrument-price-change">-0.020</span>
</body></html>`

const brokenPage = `<html><body>
<div data-test="instrument-price-last">n/a</div>
<span data-test="instrument-price-change">--</span>
</body></html>`

func TestParseNumber(t *testing.T) {
	cases := map[string]string{
		"1,234.50":  "1234.50",
		" 2.560 ":   "2.56",
		"+0.36":     "0.36",
		"−0.775":    "-0.775",
		"1,000,000": "1000000",
	}
	for in, want := range cases {
		got, err := ParseNumber(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("%q: got %s want %s", in, got, want)
		}
	}
	for _, in := range []string{"", "  ", "n/a", "1.2.3"} {
		if _, err := ParseNumber(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestParseDocument_FallsThroughSelectors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pricePage))
	require.NoError(t, err)

	price, change := ParseDocument(doc, DefaultPriceSelectors, DefaultChangeSelector)
	require.True(t, price.Valid)
	require.True(t, price.Decimal.Equal(decimal.RequireFromString("1234.50")))
	require.True(t, change.Valid)
	require.Equal(t, "-0.02", change.Decimal.String())
}

func TestParseDocument_NoMatchLeavesNull(t *testing.T) {
	for _, page := range []string{brokenPage, "<html><body><p>blocked</p></body></html>"} {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
		require.NoError(t, err)

		price, change := ParseDocument(doc, DefaultPriceSelectors, DefaultChangeSelector)
		require.False(t, price.Valid)
		require.False(t, change.Valid)
	}
}

func TestScrape_SendsBrowserUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, pricePage)
	}))
	defer srv.Close()

	p := New(Config{Targets: map[string]string{"NMDCENR": srv.URL}}, srv.Client())
	quotes, err := p.Fetch(testContext(t), []string{"NMDCENR", "UNKNOWN"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	require.Equal(t, "Mozilla/5.0", gotUA)

	q := quotes[0]
	require.Equal(t, "NMDCENR", q.Symbol)
	require.Equal(t, "Investing", q.Source)
	require.Len(t, q.Fields, 4)
	require.True(t, q.Fields[provider.FieldLast].Valid)
	require.False(t, q.Fields[provider.FieldVolume].Valid)
	require.False(t, q.Fields[provider.FieldValueAED].Valid)
	require.Equal(t, 2, q.Nulls())
}

func TestScrape_UnparsableFieldsAreNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, brokenPage)
	}))
	defer srv.Close()

	p := New(Config{}, srv.Client())
	q, err := p.Scrape(testContext(t), "NMDCENR", srv.URL)
	require.NoError(t, err)
	last, ok := q.Fields[provider.FieldLast]
	require.True(t, ok)
	require.False(t, last.Valid)
	require.Equal(t, 4, q.Nulls())
}

func TestScrape_StatusErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	p := New(Config{Targets: map[string]string{"NMDCENR": srv.URL}}, srv.Client())
	_, err := p.Fetch(testContext(t), []string{"NMDCENR"})
	require.Error(t, err)
	require.True(t, errors.Is(err, provider.ErrStatus))
}
