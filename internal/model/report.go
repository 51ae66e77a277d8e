package model

import "time"

// Report is the complete analysis result for one archive.
type Report struct {
	Archive    string    `json:"archive"`     // Path of the analyzed JSON Lines file
	AnalyzedAt time.Time `json:"analyzed_at"` // When the analysis ran
	FromCache  bool      `json:"from_cache"`  // Whether the normalized records came from the cache

	TweetCount int        `json:"tweet_count"` // Records loaded from the archive
	TotalReach int        `json:"total_reach"` // Sum of total_count across all records
	DateRange  *DateRange `json:"date_range,omitempty"`

	Daily   []Bucket `json:"daily"`   // Zero-filled daily series
	Monthly []Bucket `json:"monthly"` // Zero-filled monthly series

	TopHashtags  []TagCount `json:"top_hashtags"`  // Top-N tags by summed total_count
	HashtagCount int        `json:"hashtag_count"` // Total hashtag occurrences (before truncation)

	TopRetweeted []Tweet `json:"top_retweeted,omitempty"` // Highest-retweet records, original order on ties

	Charts []string `json:"charts,omitempty"` // Paths of rendered chart files, empty when rendering is off

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM summary, never affects the numbers
}

// DateRange is the inclusive span of record timestamps in the archive.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Bucket is one resampled calendar period. Periods with no records
// are still present with Total 0.
type Bucket struct {
	Label string    `json:"label"` // "2022-08-24" or "2022-08"
	Start time.Time `json:"start"` // Beginning of the period, UTC
	Total int       `json:"total"` // Summed total_count for the period
}

// PeakBucket returns the bucket with the highest total, or nil for an
// empty series. Earlier buckets win ties.
func PeakBucket(buckets []Bucket) *Bucket {
	var peak *Bucket
	for i := range buckets {
		if peak == nil || buckets[i].Total > peak.Total {
			peak = &buckets[i]
		}
	}
	return peak
}

// LLMSummary contains the optional LLM-generated trend summary.
// It is presentation only and never feeds back into any tally.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"` // e.g. "openai"
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
