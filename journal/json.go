// journal/json.go
package journal

import (
	"io"

	"github.com/rustyeddy/walletstats/internal/fileutil"
	"github.com/rustyeddy/walletstats/report"
)

// JSON writes the report document consumed by the dashboard script.
type JSON struct {
	path string
}

func NewJSON(path string) *JSON {
	return &JSON{path: path}
}

func (j *JSON) Export(r *report.Report) error {
	return fileutil.WriteAtomic(j.path, func(w io.Writer) error {
		return report.WriteJSON(w, r)
	})
}

func (j *JSON) Close() error { return nil }
