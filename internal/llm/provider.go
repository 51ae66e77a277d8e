package llm

import (
	"context"
	"fmt"

	"github.com/akarpov/tweetlens/internal/model"
)

// Provider is an LLM backend able to turn a computed report into a
// short prose summary. The summary is presentation only: it is built
// from the report's numbers and never feeds back into them.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a trend summary for the report.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for summarization.
type SummarizeRequest struct {
	// Report is the completed analysis to summarize.
	Report model.Report

	// Prompt overrides the default prompt when non-empty.
	Prompt string

	// Model is the provider-specific model name.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// SummarizeResponse contains the generated summary.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	Provider  string // "openai" or "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string // Custom endpoint, optional
	Timeout   int    // Seconds
	MaxTokens int
}

// BuildPrompt constructs the default summarization prompt from the
// report. Only numbers the pipeline actually computed go in; the model
// is told not to invent anything beyond them.
func BuildPrompt(report model.Report) string {
	prompt := fmt.Sprintf(`You are summarizing a tweet-archive analysis. Describe only the numbers below; do not speculate about causes or cite outside data.

Archive: %s
Tweets analyzed: %d
Total engagement-weighted reach: %d
`, report.Archive, report.TweetCount, report.TotalReach)

	if report.DateRange != nil {
		prompt += fmt.Sprintf("Date range: %s to %s\n",
			report.DateRange.From.Format("2006-01-02"),
			report.DateRange.To.Format("2006-01-02"))
	}
	if peak := model.PeakBucket(report.Daily); peak != nil {
		prompt += fmt.Sprintf("Peak day: %s with %d\n", peak.Label, peak.Total)
	}
	if peak := model.PeakBucket(report.Monthly); peak != nil {
		prompt += fmt.Sprintf("Peak month: %s with %d\n", peak.Label, peak.Total)
	}

	if len(report.TopHashtags) > 0 {
		prompt += "Top hashtags by weighted count:\n"
		for _, tc := range report.TopHashtags {
			prompt += fmt.Sprintf("- #%s: %d\n", tc.Tag, tc.Total)
		}
	}

	prompt += "\nWrite a 3-4 sentence summary of the volume trend and hashtag mix."
	return prompt
}
