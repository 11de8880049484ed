package snapshot

import (
	"encoding/json"
	"fmt"
	"time"
)

// AsOfLayout is the format of the quote snapshot as_of stamp.
const AsOfLayout = "2006-01-02 15:04 UTC"

// Quotes is the quote snapshot read and rewritten by the fetcher.
// Top-level keys other than as_of and symbols are kept verbatim.
type Quotes struct {
	AsOf    string
	Symbols map[string]*Record
	Extra   map[string]json.RawMessage
}

// Stamp sets as_of from t in UTC.
func (q *Quotes) Stamp(t time.Time) {
	q.AsOf = t.UTC().Format(AsOfLayout)
}

// Record returns the record for symbol, creating an empty one if needed.
func (q *Quotes) Record(symbol string) *Record {
	if q.Symbols == nil {
		q.Symbols = map[string]*Record{}
	}
	r, ok := q.Symbols[symbol]
	if !ok || r == nil {
		r = NewRecord()
		q.Symbols[symbol] = r
	}
	return r
}

func (q *Quotes) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := Quotes{Symbols: map[string]*Record{}, Extra: map[string]json.RawMessage{}}
	for k, v := range raw {
		switch k {
		case "as_of":
			var s *string
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("as_of: %w", err)
			}
			if s != nil {
				out.AsOf = *s
			}
		case "symbols":
			if err := json.Unmarshal(v, &out.Symbols); err != nil {
				return fmt.Errorf("symbols: %w", err)
			}
			if out.Symbols == nil {
				out.Symbols = map[string]*Record{}
			}
		default:
			out.Extra[k] = v
		}
	}
	*q = out
	return nil
}

func (q Quotes) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(q.Extra)+2)
	for k, v := range q.Extra {
		out[k] = v
	}
	out["as_of"] = q.AsOf
	symbols := q.Symbols
	if symbols == nil {
		symbols = map[string]*Record{}
	}
	out["symbols"] = symbols
	return marshalNoEscape(out)
}

// LoadQuotes reads the quote snapshot at path.
func LoadQuotes(path string) (*Quotes, error) {
	var q Quotes
	if err := readJSON(path, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// SaveQuotes replaces the file at path with q.
func SaveQuotes(path string, q *Quotes) error {
	return writeJSON(path, q)
}
