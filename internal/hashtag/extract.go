// Package hashtag extracts, explodes and aggregates hashtag tokens.
package hashtag

import (
	"strings"

	"github.com/akarpov/tweetlens/internal/model"
)

// Extract tokenizes the text body on whitespace and returns every
// token whose first byte is '#', with that byte stripped, in order of
// appearance. The remainder of the token is preserved verbatim: case,
// trailing punctuation, everything. A bare "#" token therefore yields
// the empty string. Prior tallies were produced with exactly these
// semantics, so they are kept byte-for-byte compatible.
func Extract(text string) []string {
	var tags []string
	for _, token := range strings.Fields(text) {
		if token[0] == '#' {
			tags = append(tags, token[1:])
		}
	}
	return tags
}

// Explode flattens each record's hashtag list into one occurrence row
// per tag, every row inheriting the record's date and total_count
// unchanged. A record with no hashtags produces a single occurrence
// with Valid=false, the explicit stand-in for the null slot a
// dataframe flatten would leave behind.
func Explode(tweets []model.Tweet) []model.Occurrence {
	var occs []model.Occurrence
	for _, t := range tweets {
		tags := Extract(t.Text)
		if len(tags) == 0 {
			occs = append(occs, model.Occurrence{
				Valid:      false,
				Date:       t.Date,
				TotalCount: t.TotalCount,
			})
			continue
		}
		for _, tag := range tags {
			occs = append(occs, model.Occurrence{
				Tag:        tag,
				Valid:      true,
				Date:       t.Date,
				TotalCount: t.TotalCount,
			})
		}
	}
	return occs
}

// DropMissing removes the occurrences whose source record had no
// hashtags. An empty Tag with Valid=true survives: it is a present
// value, not a missing one.
func DropMissing(occs []model.Occurrence) []model.Occurrence {
	kept := make([]model.Occurrence, 0, len(occs))
	for _, o := range occs {
		if o.Valid {
			kept = append(kept, o)
		}
	}
	return kept
}
