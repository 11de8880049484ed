package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PercentChange formats change relative to the previous close (last - change),
// e.g. "+0.36%". ok is false when the previous close is zero.
func PercentChange(last, change decimal.Decimal) (string, bool) {
	prev := last.Sub(change)
	if prev.IsZero() {
		return "", false
	}
	pct := change.Div(prev).Mul(hundred).Round(2)
	s := pct.StringFixed(2)
	if !pct.IsNegative() {
		s = "+" + s
	}
	return s + "%", true
}

// ProjectQuotes copies live prices from q into the display snapshot at path.
// symbols maps quote tickers to display symbols. Only stocks[symbol].price,
// stocks[symbol].change and last_updated are touched; every other key in the
// file is preserved. A missing file starts from DefaultDisplay.
// It returns how many stocks were updated.
func ProjectQuotes(path string, q *Quotes, symbols map[string]string, now time.Time) (int, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		b, err = encodeJSON(DefaultDisplay(now))
	}
	if err != nil {
		return 0, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}
	stocks := map[string]map[string]json.RawMessage{}
	if raw, ok := doc["stocks"]; ok {
		if err := json.Unmarshal(raw, &stocks); err != nil {
			return 0, fmt.Errorf("parse %s stocks: %w", path, err)
		}
		if stocks == nil {
			stocks = map[string]map[string]json.RawMessage{}
		}
	}

	updated := 0
	for ticker, sym := range symbols {
		rec, ok := q.Symbols[ticker]
		if !ok || rec == nil {
			continue
		}
		last, _ := rec.Get("last")
		if !last.Valid {
			continue
		}
		entry := stocks[sym]
		if entry == nil {
			entry = map[string]json.RawMessage{}
		}
		entry["price"] = json.RawMessage(formatDecimal(last.Decimal))
		if change, _ := rec.Get("change"); change.Valid {
			if pct, ok := PercentChange(last.Decimal, change.Decimal); ok {
				v, _ := json.Marshal(pct)
				entry["change"] = v
			}
		}
		stocks[sym] = entry
		updated++
	}
	if updated == 0 {
		return 0, nil
	}

	rawStocks, err := marshalNoEscape(stocks)
	if err != nil {
		return 0, err
	}
	doc["stocks"] = rawStocks
	stamp, _ := json.Marshal(now.Format("2006-01-02T15:04:05.000000"))
	doc["last_updated"] = stamp
	return updated, writeJSON(path, doc)
}
