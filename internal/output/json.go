package output

import (
	"encoding/json"
	"io"

	"github.com/aegentdev/aivss/internal/report"
)

// JSONFormatter emits the report in its stable JSON document shape.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, rep *report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
