package yahoo

import (
	"context"

	"github.com/shopspring/decimal"

	"uaestocks/internal/provider"
)

// Provider adapts the batch quote API to provider.Provider. Every returned
// symbol carries all four record fields; those the API did not report are null.
// Symbols missing from the response yield no quote.
type Provider struct {
	name   string
	client *Client
}

func NewProvider(name string, client *Client) *Provider {
	if name == "" {
		name = "Yahoo"
	}
	return &Provider{name: name, client: client}
}

func (p *Provider) Name() string { return p.name }

func (p *Provider) Fetch(ctx context.Context, symbols []string) ([]provider.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	items, err := p.client.GetQuotes(ctx, symbols)
	if err != nil {
		return nil, err
	}

	want := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		want[s] = struct{}{}
	}

	out := make([]provider.Quote, 0, len(items))
	for _, it := range items {
		if _, ok := want[it.Symbol]; !ok {
			continue
		}
		q := provider.NewQuote(it.Symbol, p.name)
		setOrNull(q, provider.FieldLast, it.Price)
		setOrNull(q, provider.FieldChange, it.Change)
		setOrNull(q, provider.FieldVolume, it.Volume)
		q.SetNull(provider.FieldValueAED)
		out = append(out, q)
	}
	return out, nil
}

func setOrNull(q provider.Quote, field string, v *decimal.Decimal) {
	if v == nil {
		q.SetNull(field)
		return
	}
	q.Set(field, *v)
}
