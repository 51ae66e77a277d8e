// Package timeseries regroups time-indexed records into fixed calendar
// buckets. Resampling follows standard time-series semantics: every
// period between the first and last record is emitted, and periods
// with no records carry a zero total rather than being omitted, so a
// plotted line has no gaps.
package timeseries

import (
	"sort"
	"time"

	"github.com/akarpov/tweetlens/internal/model"
)

// Granularity selects the calendar period for resampling.
type Granularity int

const (
	Daily Granularity = iota
	Monthly
)

func (g Granularity) String() string {
	if g == Monthly {
		return "monthly"
	}
	return "daily"
}

// label formats the bucket start for chart axes and report tables.
func (g Granularity) label(t time.Time) string {
	if g == Monthly {
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}

// truncate maps a timestamp to the start of its bucket, in UTC.
func (g Granularity) truncate(t time.Time) time.Time {
	t = t.UTC()
	if g == Monthly {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// next advances a bucket start to the following bucket.
func (g Granularity) next(t time.Time) time.Time {
	if g == Monthly {
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 1)
}

// SortByDate returns the records in chronological order. The sort is
// stable, so records sharing a timestamp keep their original order.
func SortByDate(tweets []model.Tweet) []model.Tweet {
	sorted := make([]model.Tweet, len(tweets))
	copy(sorted, tweets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// Range returns the inclusive timestamp span of the records, or nil
// for an empty slice.
func Range(tweets []model.Tweet) *model.DateRange {
	if len(tweets) == 0 {
		return nil
	}
	r := &model.DateRange{From: tweets[0].Date, To: tweets[0].Date}
	for _, t := range tweets[1:] {
		if t.Date.Before(r.From) {
			r.From = t.Date
		}
		if t.Date.After(r.To) {
			r.To = t.Date
		}
	}
	return r
}

// Resample sums total_count per calendar bucket across the full date
// range of the records. Empty input yields an empty series.
func Resample(tweets []model.Tweet, g Granularity) []model.Bucket {
	if len(tweets) == 0 {
		return []model.Bucket{}
	}

	totals := make(map[time.Time]int)
	var first, last time.Time
	for i, t := range tweets {
		start := g.truncate(t.Date)
		totals[start] += t.TotalCount
		if i == 0 || start.Before(first) {
			first = start
		}
		if i == 0 || start.After(last) {
			last = start
		}
	}

	var buckets []model.Bucket
	for cur := first; !cur.After(last); cur = g.next(cur) {
		buckets = append(buckets, model.Bucket{
			Label: g.label(cur),
			Start: cur,
			Total: totals[cur],
		})
	}
	return buckets
}
