// Package output renders assessment reports for terminal (ANSI), JSON,
// SARIF, and Markdown output.
package output

import (
	"io"

	"github.com/aegentdev/aivss/internal/report"
)

// Formatter is the interface for rendering an assessment report.
type Formatter interface {
	Format(w io.Writer, rep *report.Report) error
}
