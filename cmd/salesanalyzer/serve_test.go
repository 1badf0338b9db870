package main

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("ok", func(t *testing.T) {
		analysis, _, err := load(write("ok.csv", "date,product,amount\n2024-01-01,A,10\n2024-01-02,B,5\n"), zap.NewNop())
		require.NoError(t, err)
		assert.Len(t, analysis.DailySales, 2)
		assert.Equal(t, "A", analysis.TopProducts[0].Product)
	})

	t.Run("missing columns", func(t *testing.T) {
		_, status, err := load(write("item.csv", "date,item,amount\n2024-01-01,A,10\n"), zap.NewNop())
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("no data", func(t *testing.T) {
		_, status, err := load(write("empty.csv", "date,product,amount\n"), zap.NewNop())
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("missing file", func(t *testing.T) {
		_, status, err := load(filepath.Join(dir, "nope.csv"), zap.NewNop())
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, status)
	})
}
