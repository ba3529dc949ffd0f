// Package export writes statistics snapshots to timestamped CSV files and,
// optionally, PNG latency charts.
package export

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rileyhilliard/pingdeck/internal/errors"
	"github.com/rileyhilliard/pingdeck/internal/stats"
)

// FilePrefix starts every export file name.
const FilePrefix = "stats_export_"

// Exporter writes exports into Dir.
type Exporter struct {
	Dir   string
	Kind  stats.Kind
	Chart bool

	// Now is used for file names; time.Now when nil.
	Now func() time.Time
}

// Result lists the files written by one export.
type Result struct {
	CSV   string
	Chart string
}

// Export writes stats_export_YYYYMMDD_HHMMSS.csv, plus a .png chart when
// enabled and there is enough data. Failures are returned as a single EXPORT
// error and never retried.
func (e *Exporter) Export(hosts []string, snapshot map[string]stats.Stats) (Result, error) {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	base := FilePrefix + now().Format("20060102_150405")

	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, errors.WrapWithCode(err, errors.ErrExport,
			"Failed to create export directory "+dir,
			"Check export_dir in your .pingdeck.yaml")
	}

	var res Result
	csvPath := filepath.Join(dir, base+".csv")
	if err := writeFile(csvPath, func(f *os.File) error {
		return WriteCSV(f, e.Kind, hosts, snapshot)
	}); err != nil {
		return res, errors.WrapWithCode(err, errors.ErrExport,
			"Failed to write "+csvPath,
			"Check the export directory is writable")
	}
	res.CSV = csvPath

	if !e.Chart {
		return res, nil
	}

	pngPath := filepath.Join(dir, base+".png")
	err := writeFile(pngPath, func(f *os.File) error {
		return RenderChart(f, e.Kind, hosts, snapshot)
	})
	switch {
	case stderrors.Is(err, ErrNoChartData):
		_ = os.Remove(pngPath)
	case err != nil:
		return res, errors.WrapWithCode(err, errors.ErrExport,
			"Failed to write "+pngPath,
			"The CSV was written; retry with chart: false to skip charts")
	default:
		res.Chart = pngPath
	}

	return res, nil
}

// Message summarizes the result for the dashboard footer.
func (r Result) Message() string {
	if r.Chart != "" {
		return fmt.Sprintf("Exported %s and %s", filepath.Base(r.CSV), filepath.Base(r.Chart))
	}
	return fmt.Sprintf("Exported %s", filepath.Base(r.CSV))
}

func writeFile(path string, fn func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
