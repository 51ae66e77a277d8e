// Package frame is the dataframe view of the normalized records. The
// column-oriented operations (metric sorts, top-K slices) run through
// gota here rather than ad-hoc slice code.
package frame

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/akarpov/tweetlens/internal/model"
)

// indexColumn carries the original record position through sorts so a
// sorted view can be mapped back to typed records.
const indexColumn = "idx"

// Frame wraps a gota dataframe built from typed records in the final
// projected column order, plus the derived count and total_count
// columns.
type Frame struct {
	df     dataframe.DataFrame
	tweets []model.Tweet
}

// New builds the dataframe view. Column order matches the projection:
// date, username, name, verified, text, retweets, likes, replies,
// quotes, user_bio, count, total_count.
func New(tweets []model.Tweet) (*Frame, error) {
	n := len(tweets)
	if n == 0 {
		return &Frame{tweets: []model.Tweet{}}, nil
	}
	dates := make([]string, n)
	usernames := make([]string, n)
	names := make([]string, n)
	verified := make([]bool, n)
	texts := make([]string, n)
	retweets := make([]int, n)
	likes := make([]int, n)
	replies := make([]int, n)
	quotes := make([]int, n)
	bios := make([]string, n)
	counts := make([]int, n)
	totals := make([]int, n)
	idx := make([]int, n)

	for i, t := range tweets {
		dates[i] = t.Date.UTC().Format(time.RFC3339)
		usernames[i] = t.Username
		names[i] = t.Name
		verified[i] = t.Verified
		texts[i] = t.Text
		retweets[i] = t.Retweets
		likes[i] = t.Likes
		replies[i] = t.Replies
		quotes[i] = t.Quotes
		bios[i] = t.UserBio
		counts[i] = t.Count
		totals[i] = t.TotalCount
		idx[i] = i
	}

	df := dataframe.New(
		series.New(dates, series.String, "date"),
		series.New(usernames, series.String, "username"),
		series.New(names, series.String, "name"),
		series.New(verified, series.Bool, "verified"),
		series.New(texts, series.String, "text"),
		series.New(retweets, series.Int, "retweets"),
		series.New(likes, series.Int, "likes"),
		series.New(replies, series.Int, "replies"),
		series.New(quotes, series.Int, "quotes"),
		series.New(bios, series.String, "user_bio"),
		series.New(counts, series.Int, "count"),
		series.New(totals, series.Int, "total_count"),
		series.New(idx, series.Int, indexColumn),
	)
	if df.Error() != nil {
		return nil, fmt.Errorf("build dataframe: %w", df.Error())
	}

	return &Frame{df: df, tweets: tweets}, nil
}

// Nrow returns the number of records in the view.
func (f *Frame) Nrow() int { return f.df.Nrow() }

// Names returns the column names in projection order, without the
// internal index column.
func (f *Frame) Names() []string {
	names := f.df.Names()
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != indexColumn {
			out = append(out, n)
		}
	}
	return out
}

// SortBy returns the records reordered by the given column. The
// underlying sort is stable, so ties keep their original order.
func (f *Frame) SortBy(column string, descending bool) ([]model.Tweet, error) {
	if f.Nrow() == 0 {
		return []model.Tweet{}, nil
	}

	var order dataframe.Order
	if descending {
		order = dataframe.RevSort(column)
	} else {
		order = dataframe.Sort(column)
	}

	sorted := f.df.Arrange(order)
	if sorted.Error() != nil {
		return nil, fmt.Errorf("sort by %s: %w", column, sorted.Error())
	}

	positions, err := sorted.Col(indexColumn).Int()
	if err != nil {
		return nil, fmt.Errorf("sort by %s: %w", column, err)
	}

	out := make([]model.Tweet, len(positions))
	for i, p := range positions {
		out[i] = f.tweets[p]
	}
	return out, nil
}

// TopBy sorts descending by the given column and returns the first k
// records. A k larger than the record count returns everything.
func (f *Frame) TopBy(column string, k int) ([]model.Tweet, error) {
	sorted, err := f.SortBy(column, true)
	if err != nil {
		return nil, err
	}
	if k > len(sorted) {
		k = len(sorted)
	}
	if k < 0 {
		k = 0
	}
	return sorted[:k], nil
}
