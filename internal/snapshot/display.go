package snapshot

import (
	"errors"
	"maps"
	"os"
	"time"
)

// Display is the snapshot consumed by the site renderer.
type Display struct {
	DubaiMarket    DubaiMarket           `json:"dubai_market"`
	AbuDhabiMarket AbuDhabiMarket        `json:"abu_dhabi_market"`
	Stocks         map[string]StockQuote `json:"stocks"`
	LastUpdated    string                `json:"last_updated"`
}

type DubaiMarket struct {
	Index  Number `json:"index"`
	Change string `json:"change"`
	Volume string `json:"volume"`
	Value  string `json:"value"`
}

type AbuDhabiMarket struct {
	FADGI        Number `json:"fadgi"`
	FADGIChange  string `json:"fadgi_change"`
	FADX15       Number `json:"fadx15"`
	FADX15Change string `json:"fadx15_change"`
}

type StockQuote struct {
	Price  Number `json:"price"`
	Change string `json:"change"`
}

// defaultDisplay stands in for a missing display file.
var defaultDisplay = Display{
	DubaiMarket: DubaiMarket{
		Index:  NewNumber("6133.13"),
		Change: "+0.37%",
		Volume: "254,636,802",
		Value:  "745,710,563.77",
	},
	AbuDhabiMarket: AbuDhabiMarket{
		FADGI:        NewNumber("10317.01"),
		FADGIChange:  "-0.121%",
		FADX15:       NewNumber("10814.71"),
		FADX15Change: "-0.021%",
	},
	Stocks: map[string]StockQuote{
		"DEWA":    {Price: NewNumber("2.73"), Change: "+0.36%"},
		"SALIK":   {Price: NewNumber("6.54"), Change: "+0.90%"},
		"TALABAT": {Price: NewNumber("1.27"), Change: "+0.78%"},
		"NMDC":    {Price: NewNumber("2.560"), Change: "-0.775%"},
	},
}

// DefaultDisplay returns a copy of the built-in display snapshot with
// last_updated set to now.
func DefaultDisplay(now time.Time) Display {
	d := defaultDisplay
	d.Stocks = maps.Clone(defaultDisplay.Stocks)
	d.LastUpdated = now.Format("2006-01-02T15:04:05.000000")
	return d
}

// LoadDisplay reads the display snapshot at path. The returned error wraps
// os.ErrNotExist when the file is absent.
func LoadDisplay(path string) (Display, error) {
	var d Display
	if err := readJSON(path, &d); err != nil {
		return Display{}, err
	}
	if d.Stocks == nil {
		d.Stocks = map[string]StockQuote{}
	}
	return d, nil
}

// LoadDisplayOrDefault falls back to DefaultDisplay when path does not exist.
// usedDefault reports the fallback.
func LoadDisplayOrDefault(path string, now time.Time) (d Display, usedDefault bool, err error) {
	d, err = LoadDisplay(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultDisplay(now), true, nil
	}
	return d, false, err
}

// SaveDisplay replaces the file at path with d.
func SaveDisplay(path string, d Display) error {
	return writeJSON(path, d)
}
