// Command fetch refreshes the quote snapshot from the batch quote API and the
// configured scrape pages.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"uaestocks/internal/catalog"
	"uaestocks/internal/config"
	"uaestocks/internal/fetch"
	"uaestocks/internal/httpx"
	"uaestocks/internal/logx"
	"uaestocks/internal/metrics"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	logger, closer, err := logx.New(cfg.Log, "fetch")
	if err != nil {
		slog.Error("logger", "err", err)
		os.Exit(1)
	}

	m := metrics.New()
	start := time.Now()
	err = run(context.Background(), cfg, logger, m)
	m.ObserveRun("fetch", start)
	if werr := m.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
		logger.Warn("write metrics textfile", "path", cfg.Metrics.Textfile, "err", werr)
	}
	if err != nil {
		logger.Error("fetch failed", "err", err)
		closer.Close()
		os.Exit(1)
	}
	closer.Close()
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, m *metrics.Metrics) error {
	timeout := time.Duration(cfg.Fetch.RequestTimeoutSec) * time.Second
	hc := httpx.New(timeout)
	hc.UserAgent = cfg.Fetch.UserAgent

	f := &fetch.Fetcher{
		DataPath:       cfg.Fetch.DataPath,
		DisplayPath:    cfg.Fetch.DisplayPath,
		DisplaySymbols: catalog.TickerSymbols(),
		Sources:        fetch.Sources(cfg.Fetch, hc),
		Log:            logger,
		Metrics:        m,
	}

	// One request per source plus one per scrape target, each bounded by timeout.
	budget := timeout * time.Duration(1+len(cfg.Fetch.Scrape))
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	res, err := f.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("fetch complete", "as_of", res.AsOf, "merged", res.Merged, "projected", res.Projected)
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
