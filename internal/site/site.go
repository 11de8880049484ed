// Package site renders the static pages from the display snapshot and the
// stock catalog.
package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"uaestocks/internal/catalog"
	"uaestocks/internal/config"
	"uaestocks/internal/metrics"
	"uaestocks/internal/snapshot"
)

const updateTimeLayout = "2006-01-02 15:04:05"

var (
	ErrUnknownStock = errors.New("unknown stock")
	ErrMissingQuote = errors.New("stock missing from display snapshot")
)

// Site renders pages from one loaded display snapshot.
type Site struct {
	cfg     config.Render
	log     *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	data    snapshot.Display
}

type Option func(*Site)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Site) { s.metrics = m }
}

// WithClock replaces time.Now for update_time and the default snapshot.
func WithClock(now func() time.Time) Option {
	return func(s *Site) { s.now = now }
}

// New loads the display snapshot at cfg.DataPath. A missing file falls back
// to the built-in snapshot.
func New(cfg config.Render, log *slog.Logger, opts ...Option) (*Site, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Site{cfg: cfg, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	d, usedDefault, err := snapshot.LoadDisplayOrDefault(cfg.DataPath, s.now())
	if err != nil {
		return nil, fmt.Errorf("load display snapshot: %w", err)
	}
	if usedDefault {
		s.log.Warn("display snapshot not found, using default data", "path", cfg.DataPath)
	}
	s.data = d
	return s, nil
}

// Data returns the loaded display snapshot.
func (s *Site) Data() snapshot.Display { return s.data }

// IndexPage is the data bound to the index template.
type IndexPage struct {
	DubaiMarket    snapshot.DubaiMarket
	AbuDhabiMarket snapshot.AbuDhabiMarket
	Stocks         map[string]snapshot.StockQuote
	LastUpdated    string
	UpdateTime     string
}

// DetailPage is the data bound to a stock detail template.
type DetailPage struct {
	catalog.Stock
	Price          snapshot.Number
	Change         string
	DubaiMarket    snapshot.DubaiMarket
	AbuDhabiMarket snapshot.AbuDhabiMarket
	LastUpdated    string
	UpdateTime     string
}

// ChartLabels, ChartValues and ChartColors feed the revenue chart script.
func (p DetailPage) ChartLabels() []string {
	out := make([]string, len(p.RevenueSources))
	for i, r := range p.RevenueSources {
		out[i] = r.Name
	}
	return out
}

func (p DetailPage) ChartValues() []int {
	out := make([]int, len(p.RevenueSources))
	for i, r := range p.RevenueSources {
		out[i] = r.Percentage
	}
	return out
}

func (p DetailPage) ChartColors() []string {
	out := make([]string, len(p.RevenueSources))
	for i, r := range p.RevenueSources {
		out[i] = r.Color
	}
	return out
}

// RenderIndex writes <out>/index.html.
func (s *Site) RenderIndex() error {
	page := IndexPage{
		DubaiMarket:    s.data.DubaiMarket,
		AbuDhabiMarket: s.data.AbuDhabiMarket,
		Stocks:         s.data.Stocks,
		LastUpdated:    s.data.LastUpdated,
		UpdateTime:     s.now().Format(updateTimeLayout),
	}
	if err := s.render("index", page); err != nil {
		return err
	}
	s.log.Info("index page updated")
	return nil
}

// RenderDetail writes <out>/<key>_details.html for the catalog stock key.
func (s *Site) RenderDetail(key string) error {
	stock, ok := catalog.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStock, key)
	}
	q, ok := s.data.Stocks[stock.Symbol]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingQuote, stock.Symbol)
	}
	if total := stock.RevenueTotal(); total != 100 {
		s.log.Warn("revenue sources do not total 100", "stock", key, "total", total)
	}

	page := DetailPage{
		Stock:          stock,
		Price:          q.Price,
		Change:         q.Change,
		DubaiMarket:    s.data.DubaiMarket,
		AbuDhabiMarket: s.data.AbuDhabiMarket,
		LastUpdated:    s.data.LastUpdated,
		UpdateTime:     s.now().Format(updateTimeLayout),
	}
	if err := s.render(stock.Template(), page); err != nil {
		return err
	}
	s.log.Info("details page updated", "stock", key)
	return nil
}

// RenderAll renders the index, every detail page in catalog order and then
// copies the static assets. The first error stops the run.
func (s *Site) RenderAll() error {
	s.log.Info("starting page update")
	if err := s.RenderIndex(); err != nil {
		return err
	}
	for _, key := range catalog.Keys() {
		if err := s.RenderDetail(key); err != nil {
			return err
		}
	}
	s.log.Info("all pages updated")
	_, err := s.CopyStatic()
	return err
}

// render executes <templates>/<name>.html and writes <out>/<name>.html.
// Nothing is written when the template fails.
func (s *Site) render(name string, data any) error {
	file := name + ".html"
	tmpl, err := template.New(file).Funcs(funcs).ParseFiles(filepath.Join(s.cfg.TemplatesDir, file))
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out := filepath.Join(s.cfg.OutputDir, file)
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	if s.metrics != nil {
		s.metrics.PagesRendered.Inc()
	}
	return nil
}
