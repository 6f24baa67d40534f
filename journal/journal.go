// journal/journal.go
package journal

import (
	"fmt"
	"strconv"

	"github.com/rustyeddy/walletstats/report"
)

// Exporter writes a finished report somewhere. Export may be called once
// per run; Close releases the underlying file or database.
type Exporter interface {
	Export(*report.Report) error
	Close() error
}

// Formats accepted by Open.
var Formats = []string{"json", "csv", "sqlite", "xlsx"}

// Open returns the exporter for format writing to path. For "csv" path is
// a directory.
func Open(format, path string) (Exporter, error) {
	switch format {
	case "json":
		return NewJSON(path), nil
	case "csv":
		return NewCSV(path)
	case "sqlite":
		return NewSQLite(path)
	case "xlsx":
		return NewXLSX(path)
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

// amt formats a BTC amount at display precision.
func amt(x float64) string {
	return strconv.FormatFloat(x, 'f', 8, 64)
}

// pct formats a percentage at display precision.
func pct(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
