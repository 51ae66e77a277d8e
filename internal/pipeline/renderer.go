package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/akarpov/tweetlens/internal/model"
)

// RenderJSON writes the full report as indented JSON.
func RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the human-readable summary.
func RenderMarkdown(report *model.Report, path string) error {
	return os.WriteFile(path, []byte(Markdown(report)), 0644)
}

// Markdown formats the report summary.
func Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Tweet Archive Analysis\n\n")
	fmt.Fprintf(&b, "- Archive: `%s`\n", report.Archive)
	fmt.Fprintf(&b, "- Analyzed: %s\n", report.AnalyzedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "- Tweets: %d\n", report.TweetCount)
	fmt.Fprintf(&b, "- Total reach (weighted): %d\n", report.TotalReach)
	if report.DateRange != nil {
		fmt.Fprintf(&b, "- Date range: %s to %s\n",
			report.DateRange.From.Format("2006-01-02"),
			report.DateRange.To.Format("2006-01-02"))
	}
	if report.FromCache {
		fmt.Fprintf(&b, "- Source: cache\n")
	}

	if peak := model.PeakBucket(report.Daily); peak != nil {
		fmt.Fprintf(&b, "\n## Volume\n\n")
		fmt.Fprintf(&b, "- Peak day: %s (%d)\n", peak.Label, peak.Total)
		if mp := model.PeakBucket(report.Monthly); mp != nil {
			fmt.Fprintf(&b, "- Peak month: %s (%d)\n", mp.Label, mp.Total)
		}
	}

	if len(report.TopHashtags) > 0 {
		fmt.Fprintf(&b, "\n## Top Hashtags\n\n")
		fmt.Fprintf(&b, "| Hashtag | Weighted count |\n|---|---|\n")
		for _, tc := range report.TopHashtags {
			fmt.Fprintf(&b, "| #%s | %d |\n", tc.Tag, tc.Total)
		}
	}

	if len(report.TopRetweeted) > 0 {
		fmt.Fprintf(&b, "\n## Most Retweeted\n\n")
		for _, t := range report.TopRetweeted {
			fmt.Fprintf(&b, "- @%s (%d retweets): %s\n", t.Username, t.Retweets, excerpt(t.Text, 80))
		}
	}

	if len(report.Charts) > 0 {
		fmt.Fprintf(&b, "\n## Charts\n\n")
		for _, c := range report.Charts {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}

	if report.LLM != nil && report.LLM.Enabled {
		fmt.Fprintf(&b, "\n## Summary (%s/%s)\n\n%s\n", report.LLM.Provider, report.LLM.Model, report.LLM.SummaryMD)
	}

	return b.String()
}

// excerpt shortens text to at most max runes, cutting on a rune
// boundary so multi-byte characters never come out mangled.
func excerpt(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-3]) + "..."
}
