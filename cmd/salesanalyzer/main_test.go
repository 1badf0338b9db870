package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sales.csv\n", "sales.csv"},
		{"C:\\data\\sales.csv\r\n", "C:\\data\\sales.csv"},
		{"no newline", "no newline"},
		{"  spaced.csv \n", "  spaced.csv "},
		{"first\nsecond\n", "first"},
	}
	for _, tt := range tests {
		got, err := readLine(strings.NewReader(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := readLine(strings.NewReader(""))
	assert.Error(t, err)
}

func TestRootCmd_PromptsAndAnalyzes(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("sales.csv", []byte("date,product,amount\n2024-01-01,A,10\n2024-01-02,B,5\n"), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader("sales.csv\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), prompt+"Loading sales data...\n"))
	assert.Contains(t, out.String(), "Analysis complete!")
	assert.FileExists(t, filepath.Join(dir, "top_products.png"))
	assert.FileExists(t, filepath.Join(dir, "daily_sales.png"))
}

func TestRootCmd_FailureStillSucceeds(t *testing.T) {
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader("missing.csv\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Error analyzing sales data: ")
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := newRootCmd()
	cmd.SetArgs([]string{"sales.csv"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
