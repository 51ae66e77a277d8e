// Package normalize projects the loaded archive table down to the
// typed record the rest of the pipeline works on. Renaming and
// projection happen together here: the dotted source columns are
// mapped to their short target names and everything else (around 72
// of the original ~83 columns) is discarded.
package normalize

import (
	"fmt"
	"time"

	"github.com/akarpov/tweetlens/internal/archive"
	"github.com/akarpov/tweetlens/internal/model"
)

// Rename is one source → target column mapping.
type Rename struct {
	Source string
	Target string
}

// RenameMap is the fixed source → target mapping, in projection order
// of the targets: date, username, name, verified, text, retweets,
// likes, replies, quotes, user_bio.
var RenameMap = []Rename{
	{"created_at", "date"},
	{"author.username", "username"},
	{"author.name", "name"},
	{"author.verified", "verified"},
	{"text", "text"},
	{"public_metrics.retweet_count", "retweets"},
	{"public_metrics.like_count", "likes"},
	{"public_metrics.reply_count", "replies"},
	{"public_metrics.quote_count", "quotes"},
	{"author.description", "user_bio"},
}

// TargetColumns is the final projected column order.
var TargetColumns = []string{
	"date", "username", "name", "verified", "text",
	"retweets", "likes", "replies", "quotes", "user_bio",
}

// MissingColumnError reports a required source column absent from the
// archive. The pipeline cannot proceed without it.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q missing from archive", e.Column)
}

// Normalize validates that every source column in RenameMap exists in
// the table, then converts each row into a typed model.Tweet. An empty
// table normalizes to an empty slice without column validation, since
// there is no schema to check against.
func Normalize(table *archive.Table) ([]model.Tweet, error) {
	if len(table.Rows) == 0 {
		return []model.Tweet{}, nil
	}

	for _, r := range RenameMap {
		if !table.HasColumn(r.Source) {
			return nil, &MissingColumnError{Column: r.Source}
		}
	}

	tweets := make([]model.Tweet, 0, len(table.Rows))
	for i, row := range table.Rows {
		t, err := typedTweet(row)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		tweets = append(tweets, t)
	}
	return tweets, nil
}

func typedTweet(row archive.Row) (model.Tweet, error) {
	var t model.Tweet
	var err error

	if t.Date, err = dateField(row, "created_at"); err != nil {
		return t, err
	}
	if t.Username, err = stringField(row, "author.username"); err != nil {
		return t, err
	}
	if t.Name, err = stringField(row, "author.name"); err != nil {
		return t, err
	}
	if t.Verified, err = boolField(row, "author.verified"); err != nil {
		return t, err
	}
	if t.Text, err = stringField(row, "text"); err != nil {
		return t, err
	}
	if t.Retweets, err = countField(row, "public_metrics.retweet_count"); err != nil {
		return t, err
	}
	if t.Likes, err = countField(row, "public_metrics.like_count"); err != nil {
		return t, err
	}
	if t.Replies, err = countField(row, "public_metrics.reply_count"); err != nil {
		return t, err
	}
	if t.Quotes, err = countField(row, "public_metrics.quote_count"); err != nil {
		return t, err
	}
	if t.UserBio, err = stringField(row, "author.description"); err != nil {
		return t, err
	}
	return t, nil
}

func dateField(row archive.Row, col string) (time.Time, error) {
	v, ok := row[col].(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("column %s: expected parsed date, got %T", col, row[col])
	}
	return v, nil
}

func stringField(row archive.Row, col string) (string, error) {
	switch v := row[col].(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("column %s: expected string, got %T", col, v)
	}
}

func boolField(row archive.Row, col string) (bool, error) {
	switch v := row[col].(type) {
	case bool:
		return v, nil
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("column %s: expected bool, got %T", col, v)
	}
}

func countField(row archive.Row, col string) (int, error) {
	v, ok := row[col].(float64)
	if !ok {
		return 0, fmt.Errorf("column %s: expected number, got %T", col, row[col])
	}
	n := int(v)
	if float64(n) != v {
		return 0, fmt.Errorf("column %s: expected integer, got %v", col, v)
	}
	if n < 0 {
		return 0, fmt.Errorf("column %s: negative count %d", col, n)
	}
	return n, nil
}
