// Package chart renders the analysis artifacts: time-series line
// charts and the hashtag pie chart, as self-contained HTML files.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/akarpov/tweetlens/internal/model"
)

// Renderer writes chart files into an output directory. A Renderer
// with an empty directory renders nothing, so a default run leaves no
// files behind.
type Renderer struct {
	dir string
}

// NewRenderer creates a renderer targeting dir. Pass "" to disable
// file output.
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Enabled reports whether the renderer writes files.
func (r *Renderer) Enabled() bool { return r.dir != "" }

// RenderAll writes the daily line, monthly line and hashtag pie chart
// and returns the written paths. With rendering disabled it returns
// no paths and no error.
func (r *Renderer) RenderAll(report *model.Report) ([]string, error) {
	if !r.Enabled() {
		return nil, nil
	}
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string
	artifacts := []struct {
		file   string
		render func(io.Writer) error
	}{
		{"tweets_by_month.html", func(w io.Writer) error {
			return WriteLine(w, "Student Debt Relief Tweets by Month", report.Monthly)
		}},
		{"tweets_by_day.html", func(w io.Writer) error {
			return WriteLine(w, "Student Debt Relief Tweets by Day", report.Daily)
		}},
		{"hashtags.html", func(w io.Writer) error {
			return WritePie(w, "Hashtags", report.TopHashtags)
		}},
	}

	for _, a := range artifacts {
		path := filepath.Join(r.dir, a.file)
		if err := renderTo(path, a.render); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func renderTo(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart file: %w", err)
	}
	return nil
}

// WriteLine renders a single-series line chart of bucket totals. Every
// bucket becomes a point, zero buckets included, so the line is
// continuous across quiet periods.
func WriteLine(w io.Writer, title string, buckets []model.Bucket) error {
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	labels := make([]string, len(buckets))
	points := make([]opts.LineData, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
		points[i] = opts.LineData{Value: b.Total}
	}

	line.SetXAxis(labels).AddSeries("total_count", points)
	return line.Render(w)
}

// WritePie renders the hashtag pie chart. Slice shares are relative to
// the displayed tags' subtotal, which is how a pie normalizes: the
// top-10 slices always sum to 100% of the chart.
func WritePie(w io.Writer, title string, tags []model.TagCount) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	slices := make([]opts.PieData, len(tags))
	for i, tc := range tags {
		slices[i] = opts.PieData{Name: tc.Tag, Value: tc.Total}
	}

	pie.AddSeries("hashtags", slices)
	return pie.Render(w)
}
