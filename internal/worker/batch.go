package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/akarpov/tweetlens/internal/model"
)

// Analyzer runs the pipeline for one archive file.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.Report, error)
}

// AnalyzeJob is one archive analysis scheduled on the pool.
type AnalyzeJob struct {
	Path     string
	Analyzer Analyzer
	Limiter  *Limiter // Optional; paces LLM calls when summaries are on
	RateKey  string
}

// Execute runs the analysis.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.RateKey); err != nil {
			return &AnalyzeResult{Path: j.Path, Error: err}
		}
	}

	report, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	return &AnalyzeResult{
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// AnalyzeResult is the outcome of one archive analysis.
type AnalyzeResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the job's error, if any.
func (r *AnalyzeResult) GetError() error { return r.Error }

// BatchProcessor analyzes multiple archives concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	limiter     *Limiter
	rateKey     string
}

// NewBatchProcessor creates a batch processor. limiter may be nil when
// no external API calls need pacing.
func NewBatchProcessor(analyzer Analyzer, concurrency int, limiter *Limiter, rateKey string) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		limiter:     limiter,
		rateKey:     rateKey,
	}
}

// ProcessPaths analyzes the given archives concurrently and returns
// one result per path, in completion order.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AnalyzeJob{
			Path:     path,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
			RateKey:  b.rateKey,
		})
	}

	results := pool.Wait()

	out := make([]*AnalyzeResult, len(results))
	for i, r := range results {
		out[i] = r.(*AnalyzeResult)
	}
	return out
}

// ProcessFile reads archive paths from a list file and analyzes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*AnalyzeResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read archive list: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads archive paths from a file, one per line.
// Blank lines, '#' comments and duplicates are skipped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
