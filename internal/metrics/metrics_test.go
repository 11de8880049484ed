package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.QuotesFetched.WithLabelValues("Yahoo").Add(3)
	m.PagesRendered.Inc()
	m.ObserveRun("fetch", time.Now().Add(-time.Second))

	path := filepath.Join(t.TempDir(), "uaestocks.prom")
	require.NoError(t, m.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(b)
	require.Contains(t, body, `uaestocks_fetch_quotes_total{source="Yahoo"} 3`)
	require.Contains(t, body, "uaestocks_render_pages_total 1")
	require.True(t, strings.Contains(body, `uaestocks_run_duration_seconds{command="fetch"}`))
}

func TestWriteTextfile_EmptyPathIsNoop(t *testing.T) {
	require.NoError(t, New().WriteTextfile(""))
}

func TestCounters(t *testing.T) {
	m := New()
	m.NullFields.WithLabelValues("Investing").Add(2)
	m.StaticFilesCopied.Add(4)
	require.Equal(t, 2.0, testutil.ToFloat64(m.NullFields.WithLabelValues("Investing")))
	require.Equal(t, 4.0, testutil.ToFloat64(m.StaticFilesCopied))
}
