// Command render builds the static site from the display snapshot.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"uaestocks/internal/config"
	"uaestocks/internal/logx"
	"uaestocks/internal/metrics"
	"uaestocks/internal/site"
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
	logger, closer, err := logx.New(cfg.Log, "render")
	if err != nil {
		slog.Error("logger", "err", err)
		os.Exit(1)
	}

	m := metrics.New()
	start := time.Now()
	err = run(cfg.Render, logger, m)
	m.ObserveRun("render", start)
	if werr := m.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
		logger.Warn("write metrics textfile", "path", cfg.Metrics.Textfile, "err", werr)
	}
	if err != nil {
		logger.Error("render failed", "err", err)
		closer.Close()
		os.Exit(1)
	}
	closer.Close()
}

func run(cfg config.Render, logger *slog.Logger, m *metrics.Metrics) error {
	s, err := site.New(cfg, logger, site.WithMetrics(m))
	if err != nil {
		return err
	}
	return s.RenderAll()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
