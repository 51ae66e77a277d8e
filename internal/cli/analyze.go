package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/akarpov/tweetlens/internal/model"
	"github.com/akarpov/tweetlens/internal/pipeline"
)

var (
	outDir      string
	outJSON     string
	outMD       string
	topN        int
	topK        int
	scorePolicy string
	noCache     bool
	cacheDir    string
	llmEnabled  bool
	llmModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <archive.jsonl>",
	Short: "Analyze one tweet archive",
	Long: `Analyze loads a JSON Lines tweet archive and reports:
- engagement-weighted tweet volume per day and per month
- the top hashtags by summed weight
- the most retweeted records

Example:
  tweetlens analyze tweets.jsonl
  tweetlens analyze tweets.jsonl --out charts/ --json report.json --md report.md
  tweetlens analyze tweets.jsonl --score engagement --top 20
  tweetlens analyze tweets.jsonl --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outDir, "out", "", "chart output directory (empty: no chart files)")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown report path (optional)")
	analyzeCmd.Flags().IntVar(&topN, "top", 10, "hashtags kept in the tally")
	analyzeCmd.Flags().IntVar(&topK, "top-tweets", 5, "records in the most-retweeted excerpt")

	// Pipeline flags
	analyzeCmd.Flags().StringVar(&scorePolicy, "score", "reach", "scoring policy (reach, engagement)")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-archive cache")
	analyzeCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "disk cache directory (empty: memory only)")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate an LLM trend summary")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Scoring policy: %s\n", cfg.Score.Policy)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d tweets\n", report.TweetCount)
		fmt.Fprintf(os.Stderr, "✓ Total weighted reach: %d\n", report.TotalReach)
		fmt.Fprintf(os.Stderr, "✓ Hashtag occurrences: %d\n", report.HashtagCount)
		if report.FromCache {
			fmt.Fprintf(os.Stderr, "✓ Served from cache\n")
		}
		fmt.Fprintln(os.Stderr)
	}

	if outJSON != "" {
		if err := pipeline.RenderJSON(report, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := pipeline.RenderMarkdown(report, outMD); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	// Default output: the Markdown summary on stdout.
	if outJSON == "" && outMD == "" {
		fmt.Print(pipeline.Markdown(report))
	}

	return nil
}

// buildConfig layers the configuration sources: built-in defaults,
// then the config file and TWEETLENS_* environment through viper, then
// flags. Only flags the user actually set override the lower layers,
// so a config file value survives a flag's default.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	applyViper(cfg)

	flags := cmd.Flags()
	if flags.Changed("score") {
		cfg.Score.Policy = scorePolicy
	}
	if flags.Changed("top") {
		cfg.Hashtags.TopN = topN
	}
	if flags.Changed("top-tweets") {
		cfg.Output.TopK = topK
	}
	if cmd.Name() == "analyze" && flags.Changed("out") {
		cfg.Output.Dir = outDir
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir = cacheDir
	}

	if llmEnabled {
		cfg.LLM.Provider = "openai"
		if flags.Changed("llm-model") || cfg.LLM.Model == "" {
			cfg.LLM.Model = llmModel
		}
	}
	if cfg.LLM.Provider != "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}

// applyViper overlays values read by viper from the config file and
// the TWEETLENS_* environment. Keys that are absent leave the defaults
// untouched.
func applyViper(cfg *model.Config) {
	if viper.IsSet("score.policy") {
		cfg.Score.Policy = viper.GetString("score.policy")
	}
	if viper.IsSet("hashtags.top_n") {
		cfg.Hashtags.TopN = viper.GetInt("hashtags.top_n")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.dir") {
		cfg.Cache.Dir = viper.GetString("cache.dir")
	}
	if viper.IsSet("cache.ttl") {
		cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	}
	if viper.IsSet("output.dir") {
		cfg.Output.Dir = viper.GetString("output.dir")
	}
	if viper.IsSet("output.top_k") {
		cfg.Output.TopK = viper.GetInt("output.top_k")
	}
	if viper.IsSet("concurrency.batch_workers") {
		cfg.Concurrency.BatchWorkers = viper.GetInt("concurrency.batch_workers")
	}
	if viper.IsSet("llm.provider") {
		cfg.LLM.Provider = viper.GetString("llm.provider")
	}
	if viper.IsSet("llm.model") {
		cfg.LLM.Model = viper.GetString("llm.model")
	}
	if viper.IsSet("llm.base_url") {
		cfg.LLM.BaseURL = viper.GetString("llm.base_url")
	}
	if viper.IsSet("llm.timeout_seconds") {
		cfg.LLM.Timeout = viper.GetInt("llm.timeout_seconds")
	}
	if viper.IsSet("llm.max_tokens") {
		cfg.LLM.MaxTokens = viper.GetInt("llm.max_tokens")
	}
	if viper.IsSet("llm.rate_rps") {
		cfg.LLM.RateRPS = viper.GetFloat64("llm.rate_rps")
	}
}
