// Package pipeline wires the analysis stages together. Data flows
// strictly forward: load → normalize → score → resample → extract →
// aggregate → render; each stage consumes the previous stage's output.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/akarpov/tweetlens/internal/archive"
	"github.com/akarpov/tweetlens/internal/cache"
	"github.com/akarpov/tweetlens/internal/chart"
	"github.com/akarpov/tweetlens/internal/frame"
	"github.com/akarpov/tweetlens/internal/hashtag"
	"github.com/akarpov/tweetlens/internal/llm"
	"github.com/akarpov/tweetlens/internal/model"
	"github.com/akarpov/tweetlens/internal/normalize"
	"github.com/akarpov/tweetlens/internal/score"
	"github.com/akarpov/tweetlens/internal/timeseries"
)

// Pipeline runs the complete analysis for one archive at a time.
type Pipeline struct {
	loader     *archive.Loader
	scorer     score.Func
	renderer   *chart.Renderer
	store      *cache.Store
	summarizer *llm.Summarizer
	config     *model.Config
}

// NewPipeline builds a pipeline from the configuration.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	scorer, err := score.ByName(cfg.Score.Policy)
	if err != nil {
		return nil, err
	}

	var store *cache.Store
	if cfg.Cache.Enabled {
		var c cache.Cache
		if cfg.Cache.Dir != "" {
			c = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			c = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
		store = cache.NewStore(c, cfg.Cache.TTL)
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		loader:     archive.NewLoader("created_at"),
		scorer:     scorer,
		renderer:   chart.NewRenderer(cfg.Output.Dir),
		store:      store,
		summarizer: summarizer,
		config:     cfg,
	}, nil
}

// AnalyzeFile runs the full pipeline on one JSON Lines archive and
// returns the completed report. Any stage failure aborts the run; no
// partial results are recovered.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	tweets, fromCache, err := p.normalizedTweets(path)
	if err != nil {
		return nil, err
	}

	scored := score.Apply(tweets, p.scorer)
	ordered := timeseries.SortByDate(scored)

	occurrences := hashtag.DropMissing(hashtag.Explode(ordered))
	topTags, err := hashtag.Top(occurrences, p.config.Hashtags.TopN)
	if err != nil {
		return nil, fmt.Errorf("aggregate hashtags: %w", err)
	}

	fr, err := frame.New(ordered)
	if err != nil {
		return nil, fmt.Errorf("build frame: %w", err)
	}
	topRetweeted, err := fr.TopBy("retweets", p.config.Output.TopK)
	if err != nil {
		return nil, fmt.Errorf("top retweeted: %w", err)
	}

	report := &model.Report{
		Archive:      path,
		AnalyzedAt:   time.Now().UTC(),
		FromCache:    fromCache,
		TweetCount:   len(ordered),
		TotalReach:   score.Total(ordered),
		DateRange:    timeseries.Range(ordered),
		Daily:        timeseries.Resample(ordered, timeseries.Daily),
		Monthly:      timeseries.Resample(ordered, timeseries.Monthly),
		TopHashtags:  topTags,
		HashtagCount: len(occurrences),
		TopRetweeted: topRetweeted,
	}

	charts, err := p.renderer.RenderAll(report)
	if err != nil {
		return nil, fmt.Errorf("render charts: %w", err)
	}
	report.Charts = charts

	if p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			// The numbers stand on their own; a failed summary only warns.
			fmt.Fprintf(os.Stderr, "Warning: LLM summary failed: %v\n", err)
		} else {
			report.LLM = summary
		}
	}

	return report, nil
}

// normalizedTweets returns the typed records for the archive, from the
// cache when possible. Scoring happens after this step so cached
// entries stay valid across scoring-policy changes.
func (p *Pipeline) normalizedTweets(path string) ([]model.Tweet, bool, error) {
	var key string
	if p.store != nil {
		k, err := cache.ArchiveKey(path)
		if err != nil {
			return nil, false, err
		}
		key = k
		if tweets, found := p.store.GetTweets(key); found {
			return tweets, true, nil
		}
	}

	table, err := p.loader.Load(path)
	if err != nil {
		return nil, false, err
	}

	tweets, err := normalize.Normalize(table)
	if err != nil {
		return nil, false, err
	}

	if p.store != nil {
		if err := p.store.SetTweets(key, tweets); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache write failed: %v\n", err)
		}
	}
	return tweets, false, nil
}
