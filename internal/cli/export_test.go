package cli

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pingdeck/internal/errors"
	"github.com/rileyhilliard/pingdeck/internal/export"
	"github.com/rileyhilliard/pingdeck/internal/stats"
)

func TestExportCmd(t *testing.T) {
	dir := isolate(t)
	f := useFakeProbers(t)
	outDir := filepath.Join(dir, "reports")

	out, err := execute(t, "export", "--hosts", "10.0.0.1,10.0.0.2", "--for", "80ms", "--export-dir", outDir)
	require.NoError(t, err)

	assert.Contains(t, out, "Probing 2 hosts (icmp) for 80ms")
	assert.Contains(t, out, "Exported "+export.FilePrefix)
	assert.Equal(t, 1, f.Created("10.0.0.1"))
	assert.Equal(t, 1, f.Created("10.0.0.2"))
	assert.Equal(t, 0, f.Open(), "every prober is closed after export")

	files, err := filepath.Glob(filepath.Join(outDir, export.FilePrefix+"*.csv"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	fh, err := os.Open(files[0])
	require.NoError(t, err)
	defer fh.Close()
	rows, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, export.PingHeader, rows[0])
	assert.Equal(t, "10.0.0.1", rows[1][0])
	assert.Equal(t, "10.0.0.2", rows[2][0])
	assert.Equal(t, stats.PingActive.String(), rows[1][1])
}

func TestExportCmd_HTTPMode(t *testing.T) {
	dir := isolate(t)
	useFakeProbers(t).WithOutcomes(func(addr string, n int) stats.Outcome {
		return stats.Response(time.Now(), 2*time.Millisecond, 200, 10)
	})

	out, err := execute(t, "export", "--http", "--hosts", "web1", "--for", "50ms", "--export-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "(http)")

	files, _ := filepath.Glob(filepath.Join(dir, export.FilePrefix+"*.csv"))
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Success")
}

func TestExportCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{name: "non-positive duration", args: []string{"export", "--hosts", "10.0.0.1", "--for", "0s"}, code: errors.ErrConfig},
		{name: "missing nmap file", args: []string{"export", "--for", "10ms"}, code: errors.ErrHosts},
		{name: "bad port", args: []string{"export", "--hosts", "10.0.0.1", "--port", "0"}, code: errors.ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			useFakeProbers(t)

			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
		})
	}
}
