package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveReport(t *testing.T) {
	m := New()
	m.ObserveReport("summary", 2)
	m.ObserveReport("summary", 0)
	m.ObserveReport("person", 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reports.WithLabelValues("summary")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reports.WithLabelValues("person")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.transfers))
}

func TestObserveStore(t *testing.T) {
	m := New()
	m.ObserveStore("save", nil)
	m.ObserveStore("save", nil)
	m.ObserveStore("open", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.storeOps.WithLabelValues("save", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("open", "error")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveReport("summary", 3)
	m.ObserveStore("save", nil)
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveReport("summary", 1)
	path := filepath.Join(t.TempDir(), "costsplits.prom")

	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `costsplits_reports_total{kind="summary"} 1`)
	assert.Contains(t, string(data), "costsplits_settlement_transfers_count 1")
}

func TestWriteTextfileEmptyPath(t *testing.T) {
	assert.NoError(t, New().WriteTextfile(""))
}
