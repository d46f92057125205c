package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/aegentdev/aivss/internal/composite"
	"github.com/aegentdev/aivss/internal/factors"
	"github.com/aegentdev/aivss/internal/report"
)

// ANSI color codes
const (
	reset     = "\033[0m"
	bold      = "\033[1m"
	dim       = "\033[2m"
	underline = "\033[4m"
	red       = "\033[31m"
	yellow    = "\033[33m"
	blue      = "\033[34m"
	cyan      = "\033[36m"
)

const (
	barWidth    = 30
	lineWidth   = 78
	idWidth     = 8
	nameWidth   = 48
	factorWidth = 26
)

// TerminalFormatter renders a report in a triage-optimized layout: risk
// ranking first, then the agentic factor breakdown.
type TerminalFormatter struct {
	NoColor bool
	Verbose bool
}

func (f *TerminalFormatter) color(code, text string) string {
	if f.NoColor {
		return text
	}
	return code + text + reset
}

func (f *TerminalFormatter) Format(w io.Writer, rep *report.Report) error {
	f.printHeader(w, rep)
	f.printRanking(w, rep)
	f.printFactors(w, rep)
	f.printFooter(w, rep)
	return nil
}

func (f *TerminalFormatter) separator() string {
	return strings.Repeat("─", lineWidth)
}

func (f *TerminalFormatter) sectionHeader(title string) string {
	prefix := "── " + title + " "
	displayLen := utf8.RuneCountInString(prefix)
	remaining := max(lineWidth-displayLen, 0)
	return prefix + strings.Repeat("─", remaining)
}

func (f *TerminalFormatter) printHeader(w io.Writer, rep *report.Report) {
	sep := f.separator()
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))
	fmt.Fprintf(w, "  %s\n", f.color(bold, "AIVSS ASSESSMENT REPORT"))

	parts := []string{
		fmt.Sprintf("Agent: %s", rep.Metadata.AgentName),
		fmt.Sprintf("Assessor: %s", rep.Metadata.AssessorName),
		rep.Metadata.AssessmentDate,
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ·  "))
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))
}

func (f *TerminalFormatter) printRanking(w io.Writer, rep *report.Report) {
	byID := make(map[string]report.CategoryAssessment, len(rep.Assessments))
	for _, a := range rep.Assessments {
		byID[a.CategoryID] = a
	}

	header := f.sectionHeader("RISK RANKING")
	fmt.Fprintf(w, "\n%s\n\n", f.color(bold, header))

	for pos, id := range report.Rank(rep) {
		a := byID[id]
		icon := f.ratingIcon(a.AIVSS.QualitativeRating)
		name := fmt.Sprintf("%-*s", nameWidth, truncate(a.VulnerabilityName, nameWidth))
		score := fmt.Sprintf("%4.1f %-8s", a.AIVSS.FinalScore, a.AIVSS.QualitativeRating)

		fmt.Fprintf(w, "  %2d. %s %-*s %s %s\n",
			pos+1,
			icon,
			idWidth, a.CategoryID,
			name,
			f.color(f.ratingColor(a.AIVSS.QualitativeRating)+bold, score),
		)
		if f.Verbose {
			fmt.Fprintf(w, "      %s %s %s\n",
				f.color(dim, "│"),
				f.color(cyan, a.AIVSS.Vector),
				f.color(dim, a.CVSS.VectorString),
			)
			if a.CVSS.Rationale != "" {
				fmt.Fprintf(w, "      %s %s\n", f.color(dim, "│"), f.color(dim, truncate(a.CVSS.Rationale, lineWidth-10)))
			}
		}
	}
}

func (f *TerminalFormatter) printFactors(w io.Writer, rep *report.Report) {
	title := fmt.Sprintf("AGENTIC RISK FACTORS (AARS %.1f)", rep.AgenticRiskScore.FinalAARSScore)
	header := f.sectionHeader(title)
	fmt.Fprintf(w, "\n%s\n\n", f.color(bold, header))

	scores := rep.AgenticRiskScore.FactorScores.AsMap()
	for _, name := range factors.Names() {
		value := scores[name]
		label := fmt.Sprintf("  %-*s", factorWidth, name)
		fmt.Fprintf(w, "%s %s %.1f\n", label, f.renderBar(value), value)
	}
}

func (f *TerminalFormatter) printFooter(w io.Writer, rep *report.Report) {
	sep := f.separator()
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))

	top := report.Rank(rep)[0]
	parts := []string{
		fmt.Sprintf("%d categories", len(rep.Assessments)),
		fmt.Sprintf("top risk %s", top),
		fmt.Sprintf("schema %s", rep.SchemaVersion),
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(parts, " · "))
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))
}

func (f *TerminalFormatter) ratingIcon(r composite.Rating) string {
	switch r {
	case composite.RatingCritical:
		return f.color(red+bold, "✖")
	case composite.RatingHigh:
		return f.color(red, "▲")
	case composite.RatingMedium:
		return f.color(yellow, "■")
	case composite.RatingLow:
		return f.color(blue, "●")
	case composite.RatingNone:
		return f.color(cyan, "○")
	default:
		return "?"
	}
}

func (f *TerminalFormatter) ratingColor(r composite.Rating) string {
	switch r {
	case composite.RatingCritical:
		return red + bold
	case composite.RatingHigh:
		return red
	case composite.RatingMedium:
		return yellow
	case composite.RatingLow:
		return blue
	case composite.RatingNone:
		return cyan
	default:
		return ""
	}
}

// renderBar draws a factor score in [0, 1] as a fixed-width bar.
func (f *TerminalFormatter) renderBar(value float64) string {
	filled := int(value * barWidth)
	if filled >= barWidth {
		filled = barWidth - 1
	}
	empty := barWidth - filled

	filledStr := strings.Repeat("█", filled)
	emptyStr := strings.Repeat("░", empty)
	code := blue
	if value >= 1 {
		code = red
	} else if value >= 0.5 {
		code = yellow
	}
	return f.color(code, filledStr) + f.color(dim, emptyStr)
}

// truncate shortens s to at most maxLen display runes. Slicing happens on
// rune boundaries so multibyte names never produce invalid UTF-8.
func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}
