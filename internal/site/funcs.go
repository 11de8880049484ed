package site

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var funcs = template.FuncMap{
	"trend": trend,
	"pct":   pct,
	"color": color,
}

// trend classifies a change string such as "+0.36%" as up, down or flat.
func trend(change string) string {
	s := strings.TrimSpace(change)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, "−", "-")
	s = strings.TrimPrefix(s, "+")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "flat"
	}
	switch d.Sign() {
	case 1:
		return "up"
	case -1:
		return "down"
	}
	return "flat"
}

func pct(p int) string {
	return strconv.Itoa(p) + "%"
}

// color passes a catalog color such as "rgba(40, 167, 69, 0.8)" into a
// style attribute. Anything outside that alphabet renders as transparent.
func color(c string) template.CSS {
	for _, r := range c {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case strings.ContainsRune("#(),. ", r):
		default:
			return "transparent"
		}
	}
	return template.CSS(c)
}
