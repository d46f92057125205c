package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/aegentdev/aivss/internal/composite"
	"github.com/aegentdev/aivss/internal/factors"
	"github.com/aegentdev/aivss/internal/report"
)

// MarkdownFormatter renders a report as GitHub-flavored markdown, designed
// for GitHub Actions Job Summaries and PR comments.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, rep *report.Report) error {
	f.printSummary(w, rep)
	f.printRanking(w, rep)
	f.printFactors(w, rep)
	f.printFooter(w, rep)
	return nil
}

func (f *MarkdownFormatter) printSummary(w io.Writer, rep *report.Report) {
	byID := make(map[string]report.CategoryAssessment, len(rep.Assessments))
	for _, a := range rep.Assessments {
		byID[a.CategoryID] = a
	}
	top := byID[report.Rank(rep)[0]]

	fmt.Fprintf(w, "### %s AIVSS Assessment — %s\n\n",
		ratingEmoji(top.AIVSS.QualitativeRating), escapeMarkdown(rep.Metadata.AgentName))

	fmt.Fprintf(w, "> **Assessor:** %s · **Date:** %s · **AARS:** %.1f · **Schema:** %s\n\n",
		escapeMarkdown(rep.Metadata.AssessorName), rep.Metadata.AssessmentDate,
		rep.AgenticRiskScore.FinalAARSScore, rep.SchemaVersion)

	counts := map[composite.Rating]int{}
	for _, a := range rep.Assessments {
		counts[a.AIVSS.QualitativeRating]++
	}
	ratings := []composite.Rating{
		composite.RatingCritical,
		composite.RatingHigh,
		composite.RatingMedium,
		composite.RatingLow,
		composite.RatingNone,
	}
	var badges []string
	for _, r := range ratings {
		c := counts[r]
		if c == 0 {
			continue
		}
		badges = append(badges, fmt.Sprintf("%s **%d %s**", ratingEmoji(r), c, r))
	}
	fmt.Fprintf(w, "%s\n\n", strings.Join(badges, " · "))
}

func (f *MarkdownFormatter) printRanking(w io.Writer, rep *report.Report) {
	byID := make(map[string]report.CategoryAssessment, len(rep.Assessments))
	for _, a := range rep.Assessments {
		byID[a.CategoryID] = a
	}

	fmt.Fprintf(w, "| # | Category | Vulnerability | CVSS | AIVSS | Rating |\n")
	fmt.Fprintf(w, "|---|----------|---------------|------|-------|--------|\n")
	for pos, id := range report.Rank(rep) {
		a := byID[id]
		fmt.Fprintf(w, "| %d | `%s` | %s | %.1f | **%.1f** | %s %s |\n",
			pos+1, a.CategoryID, escapeMarkdown(a.VulnerabilityName),
			a.CVSS.BaseScore, a.AIVSS.FinalScore,
			ratingEmoji(a.AIVSS.QualitativeRating), a.AIVSS.QualitativeRating)
	}
	fmt.Fprintf(w, "\n")
}

func (f *MarkdownFormatter) printFactors(w io.Writer, rep *report.Report) {
	fmt.Fprintf(w, "<details>\n")
	fmt.Fprintf(w, "<summary><strong>Agentic risk factor breakdown</strong></summary>\n\n")

	fmt.Fprintf(w, "| Factor | Score |\n")
	fmt.Fprintf(w, "|--------|-------|\n")
	scores := rep.AgenticRiskScore.FactorScores.AsMap()
	for _, name := range factors.Names() {
		fmt.Fprintf(w, "| `%s` | %.1f |\n", name, scores[name])
	}

	fmt.Fprintf(w, "\n</details>\n\n")
}

func (f *MarkdownFormatter) printFooter(w io.Writer, rep *report.Report) {
	fmt.Fprintf(w, "---\n")
	fmt.Fprintf(w, "*Scored by [aivss](https://github.com/aegentdev/aivss) %s · assessment `%s`*\n",
		ToolVersion, rep.Metadata.AssessmentID)
}

func ratingEmoji(r composite.Rating) string {
	switch r {
	case composite.RatingCritical:
		return ":red_circle:"
	case composite.RatingHigh:
		return ":orange_circle:"
	case composite.RatingMedium:
		return ":yellow_circle:"
	case composite.RatingLow:
		return ":blue_circle:"
	case composite.RatingNone:
		return ":white_circle:"
	default:
		return ":black_circle:"
	}
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
