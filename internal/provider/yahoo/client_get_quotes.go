package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"uaestocks/internal/provider"
)

// Quote is one entry of the quoteResponse result list.
// Nil fields were absent or null in the response.
type Quote struct {
	Symbol string
	Price  *decimal.Decimal
	Change *decimal.Decimal
	Volume *decimal.Decimal
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []map[string]any `json:"result"`
		Error  any              `json:"error"`
	} `json:"quoteResponse"`
}

// GetQuotes requests all symbols in one call. Symbols the API does not know
// are simply missing from the result.
func (c *Client) GetQuotes(ctx context.Context, symbols []string, opts ...ClientOption) ([]Quote, error) {
	var override = &Client{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		header:     c.header.Clone(),
		query:      c.query,
	}
	for _, opt := range opts {
		opt(override)
	}

	query := maps.Clone(override.query)
	query.Set("symbols", strings.Join(symbols, ","))

	url := fmt.Sprintf("%s/v7/finance/quote?%s", strings.TrimRight(override.baseURL, "/"), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = override.header
	req.Header.Set("Accept", "application/json")

	res, err := override.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:

	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("unauthorized: %w", provider.StatusError(http.MethodGet, url, res.StatusCode))

	case res.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("rate limited: %w", provider.StatusError(http.MethodGet, url, res.StatusCode))

	default:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return nil, fmt.Errorf("%w: %s", provider.StatusError(http.MethodGet, url, res.StatusCode), string(b))
	}

	var body quoteResponse
	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding quote response: %w", err)
	}

	var quotes = []Quote{}
	for _, item := range body.QuoteResponse.Result {
		// {
		//   "symbol": "DEWA.AE",
		//   "regularMarketPrice": 2.73,
		//   "regularMarketChange": 0.01,
		//   "regularMarketVolume": 8123456
		// }
		symbol, ok := item["symbol"].(string)
		if !ok || symbol == "" {
			continue
		}

		price, err := parseNullableDecimal(item, "regularMarketPrice")
		if err != nil {
			return nil, fmt.Errorf("decoding %s price: %w", symbol, err)
		}

		change, err := parseNullableDecimal(item, "regularMarketChange")
		if err != nil {
			return nil, fmt.Errorf("decoding %s change: %w", symbol, err)
		}

		volume, err := parseNullableDecimal(item, "regularMarketVolume")
		if err != nil {
			return nil, fmt.Errorf("decoding %s volume: %w", symbol, err)
		}

		quotes = append(quotes, Quote{
			Symbol: symbol,
			Price:  price,
			Change: change,
			Volume: volume,
		})
	}

	return quotes, nil
}

// parseNullableDecimal reads a JSON number decoded with UseNumber.
func parseNullableDecimal(data map[string]any, key string) (*decimal.Decimal, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return nil, err
		}
		return &d, nil
	case map[string]any:
		// Some fields come back formatted: {"raw": 2.73, "fmt": "2.73"}.
		return parseNullableDecimal(n, "raw")
	}
	return nil, fmt.Errorf("unexpected type: %T", v)
}
