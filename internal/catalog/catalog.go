// Package catalog holds the hand-authored descriptive data of the tracked
// stocks. The table is fixed at compile time; accessors hand out copies.
package catalog

import "slices"

// RevenueSource is one slice of a stock's revenue breakdown chart.
type RevenueSource struct {
	Name       string
	Percentage int
	Color      string
}

// Stock describes one tracked stock.
type Stock struct {
	// Key names the detail page: <Key>_details.
	Key string
	// Symbol keys the stock in the display snapshot.
	Symbol string
	// Ticker keys the stock in the quote snapshot.
	Ticker         string
	Name           string
	MarketCap      string
	PERatio        string
	DividendYield  string
	Recommendation string
	Prediction     string
	RevenueSources []RevenueSource
}

// Template is the name of the detail page template and output file.
func (s Stock) Template() string { return s.Key + "_details" }

// RevenueTotal sums the revenue source percentages. The data is descriptive
// and the total is not required to be 100.
func (s Stock) RevenueTotal() int {
	total := 0
	for _, r := range s.RevenueSources {
		total += r.Percentage
	}
	return total
}

var stocks = []Stock{
	{
		Key:            "dewa",
		Symbol:         "DEWA",
		Ticker:         "DEWA.AE",
		Name:           "هيئة كهرباء ومياه دبي",
		MarketCap:      "~50B",
		PERatio:        "12-14",
		DividendYield:  "4-5%",
		Recommendation: "شراء/احتفاظ",
		Prediction:     "+5-8%",
		RevenueSources: []RevenueSource{
			{Name: "الكهرباء", Percentage: 60, Color: "rgba(255, 99, 132, 0.8)"},
			{Name: "المياه", Percentage: 30, Color: "rgba(54, 162, 235, 0.8)"},
			{Name: "خدمات أخرى", Percentage: 10, Color: "rgba(255, 205, 86, 0.8)"},
		},
	},
	{
		Key:            "salik",
		Symbol:         "SALIK",
		Ticker:         "SALIK.AE",
		Name:           "شركة سالك",
		MarketCap:      "~25B",
		PERatio:        "15-17",
		DividendYield:  "3-4%",
		Recommendation: "شراء/احتفاظ",
		Prediction:     "+3-6%",
		RevenueSources: []RevenueSource{
			{Name: "رسوم المرور", Percentage: 85, Color: "rgba(40, 167, 69, 0.8)"},
			{Name: "خدمات إدارة المرور", Percentage: 15, Color: "rgba(32, 201, 151, 0.8)"},
		},
	},
	{
		Key:            "talabat",
		Symbol:         "TALABAT",
		Ticker:         "TALABAT.AE",
		Name:           "طلبات هولدينغ",
		MarketCap:      "~15B",
		PERatio:        "25-30",
		DividendYield:  "1-2%",
		Recommendation: "شراء",
		Prediction:     "+8-12%",
		RevenueSources: []RevenueSource{
			{Name: "توصيل الطعام", Percentage: 60, Color: "rgba(255, 193, 7, 0.8)"},
			{Name: "البقالة الإلكترونية", Percentage: 25, Color: "rgba(253, 126, 20, 0.8)"},
			{Name: "الإعلانات والخدمات", Percentage: 15, Color: "rgba(255, 152, 0, 0.8)"},
		},
	},
	{
		Key:            "nmdc_energy",
		Symbol:         "NMDC",
		Ticker:         "NMDCENR",
		Name:           "NMDC Energy",
		MarketCap:      "~20B",
		PERatio:        "10-12",
		DividendYield:  "5-6%",
		Recommendation: "احتفاظ",
		Prediction:     "+2-5%",
		RevenueSources: []RevenueSource{
			{Name: "مشاريع الطاقة", Percentage: 50, Color: "rgba(220, 53, 69, 0.8)"},
			{Name: "البناء البحري", Percentage: 30, Color: "rgba(232, 62, 140, 0.8)"},
			{Name: "الصيانة والخدمات", Percentage: 20, Color: "rgba(255, 99, 132, 0.8)"},
		},
	},
}

// Keys returns the stock keys in page order.
func Keys() []string {
	keys := make([]string, len(stocks))
	for i, s := range stocks {
		keys[i] = s.Key
	}
	return keys
}

// All returns every stock in page order.
func All() []Stock {
	out := make([]Stock, len(stocks))
	for i, s := range stocks {
		out[i] = clone(s)
	}
	return out
}

// Lookup returns the stock with the given key.
func Lookup(key string) (Stock, bool) {
	for _, s := range stocks {
		if s.Key == key {
			return clone(s), true
		}
	}
	return Stock{}, false
}

// TickerSymbols maps quote snapshot tickers to display symbols.
func TickerSymbols() map[string]string {
	out := make(map[string]string, len(stocks))
	for _, s := range stocks {
		out[s.Ticker] = s.Symbol
	}
	return out
}

func clone(s Stock) Stock {
	s.RevenueSources = slices.Clone(s.RevenueSources)
	return s
}
