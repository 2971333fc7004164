package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/montanaflynn/stats"

	"gostop/app"
)

// CurveSummary holds descriptive statistics over a sweep curve
type CurveSummary struct {
	Mean   float64
	Median float64
	Max    float64
	P90    float64
}

// Summarize computes descriptive statistics for the probabilities of a curve
func Summarize(result *app.SweepResult) (CurveSummary, error) {
	probs := make([]float64, len(result.Curve))
	for i, pt := range result.Curve {
		probs[i] = pt.Probability
	}

	mean, err := stats.Mean(probs)
	if err != nil {
		return CurveSummary{}, err
	}
	median, err := stats.Median(probs)
	if err != nil {
		return CurveSummary{}, err
	}
	max, err := stats.Max(probs)
	if err != nil {
		return CurveSummary{}, err
	}
	p90, err := stats.Percentile(probs, 90)
	if err != nil {
		return CurveSummary{}, err
	}

	return CurveSummary{Mean: mean, Median: median, Max: max, P90: p90}, nil
}

// Summary renders the one-line textual verdict for a sweep
func Summary(result *app.SweepResult) string {
	return fmt.Sprintf("Optimal skip = %d, success ≈ %.1f%% (theory: skip %d)",
		result.Optimum.Skip,
		result.Optimum.Probability*100,
		result.TheoreticalSkip)
}

// Markdown renders a full sweep report as a markdown document: the verdict,
// curve statistics, and the skip/probability table with both optima marked.
func Markdown(result *app.SweepResult) (string, error) {
	summary, err := Summarize(result)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Optimal Stopping Sweep %s\n\n", result.SweepID)
	fmt.Fprintf(&b, "%s\n\n", Summary(result))
	fmt.Fprintf(&b, "- n: %d\n", result.N)
	fmt.Fprintf(&b, "- mode: %s\n", result.Mode)
	if result.Trials > 0 {
		fmt.Fprintf(&b, "- trials per skip: %d\n", result.Trials)
		fmt.Fprintf(&b, "- seed: %d\n", result.Seed)
	}
	fmt.Fprintf(&b, "- curve mean %.4f, median %.4f, p90 %.4f, max %.4f\n\n",
		summary.Mean, summary.Median, summary.P90, summary.Max)

	b.WriteString("| Skip | Probability | |\n")
	b.WriteString("|-----:|------------:|---|\n")
	for _, pt := range result.Curve {
		marker := ""
		if pt.Skip == result.Optimum.Skip {
			marker = "empirical optimum"
		}
		if pt.Skip == result.TheoreticalSkip {
			if marker != "" {
				marker += ", "
			}
			marker += "floor(n/e)"
		}
		fmt.Fprintf(&b, "| %d | %.4f | %s |\n", pt.Skip, pt.Probability, marker)
	}

	return b.String(), nil
}

// HTML renders the markdown report to HTML for the web layer
func HTML(result *app.SweepResult) ([]byte, error) {
	md, err := Markdown(result)
	if err != nil {
		return nil, err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer), nil
}
