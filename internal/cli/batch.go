package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/akarpov/tweetlens/internal/chart"
	"github.com/akarpov/tweetlens/internal/model"
	"github.com/akarpov/tweetlens/internal/pipeline"
	"github.com/akarpov/tweetlens/internal/worker"
)

var (
	batchListFile    string
	batchConcurrency int
	batchOutDir      string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [archive.jsonl...]",
	Short: "Analyze multiple archives concurrently",
	Long: `Batch runs the analysis pipeline over several archives on a worker
pool. Archives come from the arguments, from --file (one path per
line, '#' comments allowed), or both.

With --out, each archive gets its own subdirectory named after the
archive file, holding its charts and JSON report:
  <out>/<archive-name>/tweets_by_month.html
  <out>/<archive-name>/tweets_by_day.html
  <out>/<archive-name>/hashtags.html
  <out>/<archive-name>/report.json

Example:
  tweetlens batch aug.jsonl sep.jsonl
  tweetlens batch --file archives.txt --concurrency 8 --out results/`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchListFile, "file", "f", "", "file listing archive paths")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "concurrent analyses")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "output directory for per-archive charts and reports")

	batchCmd.Flags().StringVar(&scorePolicy, "score", "reach", "scoring policy (reach, engagement)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-archive cache")
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate LLM trend summaries")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	paths := append([]string{}, args...)
	if batchListFile != "" {
		fromFile, err := worker.ReadPathsFromFile(batchListFile)
		if err != nil {
			return err
		}
		paths = append(paths, fromFile...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no archives given: pass paths or --file")
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = batchConcurrency

	// Chart filenames are fixed, so concurrent analyses must not share
	// one chart directory. The pipeline's own renderer stays off and
	// charts are written per archive below.
	cfg.Output.Dir = ""

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	// Pace LLM calls across workers; without summaries there is
	// nothing to limit.
	var limiter *worker.Limiter
	rateKey := ""
	if cfg.LLM.Provider != "" {
		limiter = worker.NewLimiter(cfg.LLM.RateRPS, 1)
		rateKey = cfg.LLM.Provider
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers, limiter, rateKey)
	results := processor.ProcessPaths(context.Background(), paths)

	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, r.Error)
			continue
		}

		fmt.Printf("✓ %s: %d tweets, reach %d\n", r.Path, r.Report.TweetCount, r.Report.TotalReach)

		if batchOutDir != "" {
			if err := writeBatchArtifacts(r.Report, batchOutDir, r.Path); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d archives failed", failed, len(results))
	}
	return nil
}

// writeBatchArtifacts renders one archive's charts and JSON report
// under <dir>/<archive-name>/, keying the subdirectory off the archive
// filename so concurrent archives never clobber each other.
func writeBatchArtifacts(report *model.Report, dir, archivePath string) error {
	sub := filepath.Join(dir, filepath.Base(archivePath))

	charts, err := chart.NewRenderer(sub).RenderAll(report)
	if err != nil {
		return fmt.Errorf("render charts for %s: %w", archivePath, err)
	}
	report.Charts = charts

	return pipeline.RenderJSON(report, filepath.Join(sub, "report.json"))
}
