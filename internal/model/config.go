package model

import "time"

// Config holds the full tweetlens configuration.
type Config struct {
	Score       ScoreConfig       `yaml:"score"`
	Hashtags    HashtagConfig     `yaml:"hashtags"`
	Cache       CacheConfig       `yaml:"cache"`
	Output      OutputConfig      `yaml:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	LLM         LLMConfig         `yaml:"llm"`
}

// ScoreConfig selects the engagement scoring policy.
type ScoreConfig struct {
	// Policy is "reach" (1 + retweets, the default) or "engagement"
	// (likes, replies and quotes weighted in).
	Policy string `yaml:"policy"`
}

// HashtagConfig controls the hashtag tally.
type HashtagConfig struct {
	TopN int `yaml:"top_n"` // Tags kept after the descending sort
}

// CacheConfig controls the parsed-archive cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"` // Disk cache directory, empty for memory-only
	TTL     time.Duration `yaml:"ttl"`
}

// OutputConfig controls report and chart output.
type OutputConfig struct {
	Dir     string `yaml:"dir"` // Chart/report directory; empty disables chart files
	JSON    string `yaml:"json"`
	MD      string `yaml:"md"`
	TopK    int    `yaml:"top_k"` // Records in the top-retweeted excerpt
	Verbose bool   `yaml:"verbose"`
}

// ConcurrencyConfig controls batch mode.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers"`
}

// LLMConfig controls the optional trend summary.
type LLMConfig struct {
	Provider  string  `yaml:"provider"` // "" disables, "openai" enables
	Model     string  `yaml:"model"`
	APIKey    string  `yaml:"-"` // From environment only, never serialized
	BaseURL   string  `yaml:"base_url"`
	Timeout   int     `yaml:"timeout_seconds"`
	MaxTokens int     `yaml:"max_tokens"`
	RateRPS   float64 `yaml:"rate_rps"` // API calls per second in batch mode
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Score:    ScoreConfig{Policy: "reach"},
		Hashtags: HashtagConfig{TopN: 10},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Output: OutputConfig{
			TopK: 5,
		},
		Concurrency: ConcurrencyConfig{BatchWorkers: 4},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
			RateRPS:   1,
		},
	}
}
