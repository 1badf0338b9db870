package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesanalyzer/internal/models"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestTopProductsPlot(t *testing.T) {
	p, err := TopProductsPlot([]models.ProductTotal{
		{Product: "Widget", Total: 300},
		{Product: "Gadget", Total: 120.5},
	})
	require.NoError(t, err)
	assert.Equal(t, "Top 5 Products by Sales", p.Title.Text)
	assert.Equal(t, "Product", p.X.Label.Text)
	assert.Equal(t, "Total Sales ($)", p.Y.Label.Text)

	path := filepath.Join(t.TempDir(), TopProductsFile)
	require.NoError(t, Save(p, BarSize, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestTopProductsPlot_NoProducts(t *testing.T) {
	_, err := TopProductsPlot(nil)
	assert.Error(t, err)
}

func TestDailySalesPlot(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
	p, err := DailySalesPlot([]models.DailyTotal{
		{Day: day(1), Total: 10},
		{Day: day(2), Total: 25},
		{Day: day(5), Total: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, "Daily Sales Over Time", p.Title.Text)
	assert.Equal(t, "Date", p.X.Label.Text)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(p, LineSize, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), DailySalesFile)
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	p, err := DailySalesPlot([]models.DailyTotal{{Day: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Total: 1}})
	require.NoError(t, err)
	require.NoError(t, Save(p, LineSize, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestSave_BadDirectory(t *testing.T) {
	p, err := TopProductsPlot([]models.ProductTotal{{Product: "A", Total: 1}})
	require.NoError(t, err)

	err = Save(p, BarSize, filepath.Join(t.TempDir(), "missing", TopProductsFile))
	assert.Error(t, err)
}
