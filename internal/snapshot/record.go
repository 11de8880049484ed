package snapshot

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Record is one ticker entry of the quote snapshot. Every key is held as the
// raw JSON it was read with and written back unchanged unless Merge replaced
// it. Values are only read as numbers on demand.
type Record struct {
	Values map[string]json.RawMessage
}

func NewRecord() *Record {
	return &Record{Values: map[string]json.RawMessage{}}
}

// Raw returns the stored JSON of key.
func (r *Record) Raw(key string) (json.RawMessage, bool) {
	v, ok := r.Values[key]
	return v, ok
}

// Get reads field as a number. ok is false when the key is absent. A null,
// empty or non-numeric value comes back as an invalid NullDecimal.
func (r *Record) Get(field string) (v decimal.NullDecimal, ok bool) {
	raw, ok := r.Values[field]
	if !ok {
		return decimal.NullDecimal{}, false
	}
	return numberOf(raw), true
}

// Merge overwrites the given fields and leaves every other key as it was.
func (r *Record) Merge(fields map[string]decimal.NullDecimal) {
	if r.Values == nil {
		r.Values = make(map[string]json.RawMessage, len(fields))
	}
	for k, v := range fields {
		if v.Valid {
			r.Values[k] = json.RawMessage(formatDecimal(v.Decimal))
		} else {
			r.Values[k] = json.RawMessage("null")
		}
	}
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		raw = map[string]json.RawMessage{}
	}
	r.Values = raw
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	values := r.Values
	if values == nil {
		values = map[string]json.RawMessage{}
	}
	return marshalNoEscape(values)
}

// numberOf accepts a JSON number or a numeric string such as "6.54".
func numberOf(raw json.RawMessage) decimal.NullDecimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.NullDecimal{}
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.NullDecimal{}
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// formatDecimal keeps the scale the value was read with, so 2.560 stays 2.560.
func formatDecimal(d decimal.Decimal) string {
	if e := d.Exponent(); e < 0 {
		return d.StringFixed(-e)
	}
	return d.String()
}

// Number is a decimal written as a bare JSON number.
type Number struct {
	decimal.Decimal
}

func NewNumber(s string) Number {
	return Number{decimal.RequireFromString(s)}
}

func (n Number) String() string { return formatDecimal(n.Decimal) }

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(formatDecimal(n.Decimal)), nil
}
