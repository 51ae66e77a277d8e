package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akarpov/tweetlens/internal/model"
)

const fixtureArchive = `{"created_at":"2022-08-24T09:00:00Z","text":"relief is coming #StudentDebtRelief","public_metrics":{"retweet_count":4,"like_count":10,"reply_count":1,"quote_count":0},"author":{"username":"ada","name":"Ada","verified":true,"description":"bio"}}
{"created_at":"2022-08-24T12:00:00Z","text":"no tags here","public_metrics":{"retweet_count":0,"like_count":0,"reply_count":0,"quote_count":0},"author":{"username":"bob","name":"Bob","verified":false,"description":""}}
{"created_at":"2022-08-26T08:00:00Z","text":"#StudentDebtRelief #debtfree","public_metrics":{"retweet_count":2,"like_count":3,"reply_count":0,"quote_count":1},"author":{"username":"cyd","name":"Cyd","verified":false,"description":"x"}}
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tweets.jsonl")
	if err := os.WriteFile(path, []byte(fixtureArchive), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Output.Dir = "" // no chart files
	return cfg
}

func TestAnalyzeFile_EndToEnd(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	report, err := p.AnalyzeFile(context.Background(), writeFixture(t))
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}

	if report.TweetCount != 3 {
		t.Errorf("expected 3 tweets, got %d", report.TweetCount)
	}
	// Reach: (1+4) + (1+0) + (1+2) = 9.
	if report.TotalReach != 9 {
		t.Errorf("expected total reach 9, got %d", report.TotalReach)
	}

	// Aug 24, 25 (gap, zero), 26.
	if len(report.Daily) != 3 {
		t.Fatalf("expected 3 daily buckets, got %d", len(report.Daily))
	}
	if report.Daily[1].Label != "2022-08-25" || report.Daily[1].Total != 0 {
		t.Errorf("expected zero-filled gap day, got %+v", report.Daily[1])
	}
	if report.Daily[0].Total != 6 || report.Daily[2].Total != 3 {
		t.Errorf("daily totals wrong: %+v", report.Daily)
	}

	if len(report.Monthly) != 1 || report.Monthly[0].Total != 9 {
		t.Errorf("monthly series wrong: %+v", report.Monthly)
	}

	// StudentDebtRelief: 5 + 3 = 8; debtfree: 3. The tagless tweet adds nothing.
	tags := map[string]int{}
	for _, tc := range report.TopHashtags {
		tags[tc.Tag] = tc.Total
	}
	if tags["StudentDebtRelief"] != 8 || tags["debtfree"] != 3 {
		t.Errorf("hashtag tally wrong: %v", tags)
	}
	if report.HashtagCount != 3 {
		t.Errorf("expected 3 hashtag occurrences, got %d", report.HashtagCount)
	}

	if len(report.TopRetweeted) == 0 || report.TopRetweeted[0].Username != "ada" {
		t.Errorf("expected ada as top retweeted, got %+v", report.TopRetweeted)
	}

	if len(report.Charts) != 0 {
		t.Errorf("expected no chart files by default, got %v", report.Charts)
	}
}

func TestAnalyzeFile_EmptyArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	report, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile on empty archive: %v", err)
	}
	if report.TweetCount != 0 || len(report.Daily) != 0 || len(report.TopHashtags) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestAnalyzeFile_CacheHitOnSecondRun(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = true

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	path := writeFixture(t)

	first, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.FromCache {
		t.Error("first run must not hit the cache")
	}

	second, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.FromCache {
		t.Error("second run should hit the cache")
	}
	if second.TotalReach != first.TotalReach || second.TweetCount != first.TweetCount {
		t.Errorf("cached run differs: %+v vs %+v", second, first)
	}
}

func TestAnalyzeFile_WritesCharts(t *testing.T) {
	cfg := testConfig()
	cfg.Output.Dir = t.TempDir()

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	report, err := p.AnalyzeFile(context.Background(), writeFixture(t))
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if len(report.Charts) != 3 {
		t.Fatalf("expected 3 chart artifacts, got %v", report.Charts)
	}
	for _, c := range report.Charts {
		if _, err := os.Stat(c); err != nil {
			t.Errorf("chart %s not written: %v", c, err)
		}
	}
}

func TestMarkdown_ContainsKeySections(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	report, err := p.AnalyzeFile(context.Background(), writeFixture(t))
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}

	md := Markdown(report)
	for _, want := range []string{"# Tweet Archive Analysis", "Top Hashtags", "#StudentDebtRelief", "Most Retweeted", "@ada"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderJSON_RoundTrips(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	report, err := p.AnalyzeFile(context.Background(), writeFixture(t))
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.json")
	if err := RenderJSON(report, path); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), `"tweet_count": 3`) {
		t.Errorf("report JSON missing tweet count: %s", data)
	}
}
