package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Quote record field names, as stored in the quote snapshot.
const (
	FieldLast     = "last"
	FieldChange   = "change"
	FieldVolume   = "volume"
	FieldValueAED = "value_aed"
)

// ErrStatus is wrapped by providers when the upstream answers outside 2xx.
var ErrStatus = errors.New("unexpected status")

// Quote is a partial update for one symbol. Only fields the source
// reported are present in Fields; a present field may be null.
type Quote struct {
	Symbol string
	Source string
	Fields map[string]decimal.NullDecimal
}

func NewQuote(symbol, source string) Quote {
	return Quote{Symbol: symbol, Source: source, Fields: make(map[string]decimal.NullDecimal, 4)}
}

// Set records a value for field.
func (q Quote) Set(field string, v decimal.Decimal) {
	q.Fields[field] = decimal.NullDecimal{Decimal: v, Valid: true}
}

// SetNull records an explicit null for field.
func (q Quote) SetNull(field string) {
	q.Fields[field] = decimal.NullDecimal{}
}

// Nulls counts the present fields that are null.
func (q Quote) Nulls() int {
	n := 0
	for _, v := range q.Fields {
		if !v.Valid {
			n++
		}
	}
	return n
}

type Provider interface {
	Name() string
	Fetch(ctx context.Context, symbols []string) ([]Quote, error)
}

// StatusError builds the error returned for a non-2xx response.
func StatusError(method, url string, code int) error {
	return fmt.Errorf("%s %s -> %d: %w", method, url, code, ErrStatus)
}
