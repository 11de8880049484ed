// Package fetch refreshes the quote snapshot from the configured sources.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"uaestocks/internal/config"
	"uaestocks/internal/httpx"
	"uaestocks/internal/metrics"
	"uaestocks/internal/provider"
	"uaestocks/internal/provider/investing"
	"uaestocks/internal/provider/yahoo"
	"uaestocks/internal/snapshot"
)

// Source is a provider and the symbols requested from it.
type Source struct {
	Provider provider.Provider
	Symbols  []string
}

// Fetcher runs one read-merge-write pass over the quote snapshot.
type Fetcher struct {
	DataPath string
	// DisplayPath, when set, receives the refreshed prices after the
	// snapshot is written.
	DisplayPath string
	// DisplaySymbols maps quote tickers to display symbols.
	DisplaySymbols map[string]string
	Sources        []Source

	Log     *slog.Logger
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// Result summarizes a run.
type Result struct {
	AsOf      string
	Merged    int
	Projected int
}

// Sources builds the batch source followed by the scrape sources of cfg.
func Sources(cfg config.Fetch, hc *httpx.Client) []Source {
	out := make([]Source, 0, 2)
	if len(cfg.Symbols) > 0 {
		opts := []yahoo.ClientOption{yahoo.WithHTTPClient(hc)}
		if cfg.QuoteEndpoint != "" {
			opts = append(opts, yahoo.WithBaseURL(cfg.QuoteEndpoint))
		}
		client := yahoo.NewClient(opts...)
		out = append(out, Source{Provider: yahoo.NewProvider("Yahoo", client), Symbols: cfg.Symbols})
	}
	if len(cfg.Scrape) > 0 {
		targets := make(map[string]string, len(cfg.Scrape))
		symbols := make([]string, 0, len(cfg.Scrape))
		for _, t := range cfg.Scrape {
			if t.Symbol == "" || t.URL == "" {
				continue
			}
			targets[t.Symbol] = t.URL
			symbols = append(symbols, t.Symbol)
		}
		if len(symbols) > 0 {
			p := investing.New(investing.Config{
				Name:      "Investing",
				Targets:   targets,
				UserAgent: cfg.BrowserUserAgent,
			}, hc)
			out = append(out, Source{Provider: p, Symbols: symbols})
		}
	}
	return out
}

// Run loads the snapshot, stamps as_of, merges every source in order and
// writes the snapshot once. Any source error aborts the run before the write.
func (f *Fetcher) Run(ctx context.Context) (Result, error) {
	log := f.Log
	if log == nil {
		log = slog.Default()
	}
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}

	q, err := snapshot.LoadQuotes(f.DataPath)
	if err != nil {
		return Result{}, fmt.Errorf("load quote snapshot: %w", err)
	}
	q.Stamp(now())

	res := Result{AsOf: q.AsOf}
	for _, src := range f.Sources {
		name := src.Provider.Name()
		quotes, err := src.Provider.Fetch(ctx, src.Symbols)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", name, err)
		}
		log.Info("quotes fetched", "source", name, "requested", len(src.Symbols), "received", len(quotes))
		for _, qt := range quotes {
			q.Record(qt.Symbol).Merge(qt.Fields)
			res.Merged++
			if f.Metrics != nil {
				f.Metrics.QuotesFetched.WithLabelValues(name).Inc()
				f.Metrics.NullFields.WithLabelValues(name).Add(float64(qt.Nulls()))
			}
			if n := qt.Nulls(); n > 0 {
				log.Debug("quote has null fields", "source", name, "symbol", qt.Symbol, "nulls", n)
			}
		}
	}

	if err := snapshot.SaveQuotes(f.DataPath, q); err != nil {
		return Result{}, fmt.Errorf("write quote snapshot: %w", err)
	}
	if f.Metrics != nil {
		f.Metrics.LastFetchSuccess.Set(float64(now().Unix()))
	}
	log.Info("quote snapshot written", "path", f.DataPath, "as_of", q.AsOf, "merged", res.Merged)

	if f.DisplayPath != "" {
		n, err := snapshot.ProjectQuotes(f.DisplayPath, q, f.DisplaySymbols, now())
		if err != nil {
			return res, fmt.Errorf("project display snapshot: %w", err)
		}
		res.Projected = n
		log.Info("display snapshot updated", "path", f.DisplayPath, "stocks", n)
	}
	return res, nil
}
