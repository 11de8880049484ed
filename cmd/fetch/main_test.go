package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"uaestocks/internal/config"
	"uaestocks/internal/logx"
	"uaestocks/internal/metrics"
	"uaestocks/internal/snapshot"
)

func TestRun_WritesSnapshotAndDisplay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"DEWA.AE","regularMarketPrice":2.80,"regularMarketChange":0.07}]}}`)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Fetch.DataPath = filepath.Join(dir, "daily.json")
	cfg.Fetch.DisplayPath = filepath.Join(dir, "daily_data.json")
	cfg.Fetch.QuoteEndpoint = srv.URL
	cfg.Fetch.Symbols = []string{"DEWA.AE"}
	cfg.Fetch.Scrape = nil
	cfg.Fetch.RequestTimeoutSec = 5
	require.NoError(t, os.WriteFile(cfg.Fetch.DataPath, []byte(`{"as_of": "", "symbols": {}}`), 0o644))

	require.NoError(t, run(testContext(t), cfg, logx.Discard(), metrics.New()))

	q, err := snapshot.LoadQuotes(cfg.Fetch.DataPath)
	require.NoError(t, err)
	last, ok := q.Symbols["DEWA.AE"].Get("last")
	require.True(t, ok)
	require.Equal(t, "2.8", last.Decimal.String())

	d, err := snapshot.LoadDisplay(cfg.Fetch.DisplayPath)
	require.NoError(t, err)
	require.Equal(t, "2.80", d.Stocks["DEWA"].Price.String())
	require.Equal(t, "+2.56%", d.Stocks["DEWA"].Change)
	require.Equal(t, "6133.13", d.DubaiMarket.Index.String())
}
