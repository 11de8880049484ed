package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ScrapeTarget is one product page scraped for a single ticker.
type ScrapeTarget struct {
	Symbol string `json:"symbol"`
	URL    string `json:"url"`
}

type Fetch struct {
	DataPath          string         `json:"data_path"`
	DisplayPath       string         `json:"display_path"`
	QuoteEndpoint     string         `json:"quote_endpoint"`
	Symbols           []string       `json:"symbols"`
	Scrape            []ScrapeTarget `json:"scrape"`
	RequestTimeoutSec int            `json:"request_timeout_sec"`
	UserAgent         string         `json:"user_agent"`
	BrowserUserAgent  string         `json:"browser_user_agent"`
}

type Render struct {
	DataPath     string `json:"data_path"`
	TemplatesDir string `json:"templates_dir"`
	StaticDir    string `json:"static_dir"`
	OutputDir    string `json:"output_dir"`
}

type Log struct {
	Level      string `json:"level"`
	Format     string `json:"format"`
	Output     string `json:"output"`
	FilePath   string `json:"file_path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
	Compress   bool   `json:"compress"`
}

type Metrics struct {
	// Textfile is written in the node exporter textfile format after each run.
	// Empty disables it.
	Textfile string `json:"textfile"`
}

type Config struct {
	Fetch   Fetch   `json:"fetch"`
	Render  Render  `json:"render"`
	Log     Log     `json:"log"`
	Metrics Metrics `json:"metrics"`
}

func Default() Config {
	return Config{
		Fetch: Fetch{
			DataPath:      "data/daily.json",
			QuoteEndpoint: "https://query1.finance.yahoo.com",
			Symbols:       []string{"DEWA.AE", "SALIK.AE", "TALABAT.AE"},
			Scrape: []ScrapeTarget{
				{Symbol: "NMDCENR", URL: "https://www.investing.com/equities/nmdc-energy-pjsc"},
			},
			RequestTimeoutSec: 20,
			UserAgent:         "uaestocks/1.0",
			BrowserUserAgent:  "Mozilla/5.0",
		},
		Render: Render{
			DataPath:     "data/daily_data.json",
			TemplatesDir: "templates",
			StaticDir:    "static",
			OutputDir:    ".",
		},
		Log: Log{
			Level:      "info",
			Format:     "text",
			Output:     "stdout",
			FilePath:   "logs/uaestocks.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

// Load reads JSON config from path. If path is empty, config.json in the
// working directory is used when present; a missing file yields defaults.
// Environment variables override file values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATA_FILE"); v != "" {
		cfg.Fetch.DataPath = v
	}
	if v := os.Getenv("DISPLAY_FILE"); v != "" {
		cfg.Fetch.DisplayPath = v
		cfg.Render.DataPath = v
	}
	if v := os.Getenv("QUOTE_ENDPOINT"); v != "" {
		cfg.Fetch.QuoteEndpoint = v
	}
	if v := os.Getenv("QUOTE_SYMBOLS"); v != "" {
		cfg.Fetch.Symbols = splitCSV(v)
	}
	// SCRAPE_URL/SCRAPE_SYMBOL replace the scrape list with a single target.
	if v := os.Getenv("SCRAPE_URL"); v != "" {
		sym := os.Getenv("SCRAPE_SYMBOL")
		if sym == "" && len(cfg.Fetch.Scrape) > 0 {
			sym = cfg.Fetch.Scrape[0].Symbol
		}
		cfg.Fetch.Scrape = []ScrapeTarget{{Symbol: sym, URL: v}}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Fetch.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("USER_AGENT"); v != "" {
		cfg.Fetch.UserAgent = v
	}
	if v := os.Getenv("TEMPLATES_DIR"); v != "" {
		cfg.Render.TemplatesDir = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.Render.StaticDir = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Render.OutputDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		cfg.Log.Output = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.FilePath = v
	}
	if v := os.Getenv("METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
