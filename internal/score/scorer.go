// Package score derives the per-record engagement weight. The formula
// is a modeling choice, not an invariant, so it lives behind a named
// policy type that the pipeline takes as a dependency.
package score

import (
	"fmt"

	"github.com/akarpov/tweetlens/internal/model"
)

// Func is an engagement scoring policy: it maps one record to its
// total_count weight.
type Func func(model.Tweet) int

// Reach is the default policy: the tweet itself plus each retweet
// counts as one unit of reach. Likes, replies and quotes are ignored.
func Reach(t model.Tweet) int {
	return 1 + t.Retweets
}

// Engagement is the alternative policy: every recorded interaction
// counts as one unit.
func Engagement(t model.Tweet) int {
	return 1 + t.Retweets + t.Likes + t.Replies + t.Quotes
}

// ByName resolves a policy by its config name.
func ByName(name string) (Func, error) {
	switch name {
	case "", "reach":
		return Reach, nil
	case "engagement":
		return Engagement, nil
	default:
		return nil, fmt.Errorf("unknown scoring policy %q", name)
	}
}

// Apply stamps count and total_count on every record and returns the
// scored copy. The input slice is not mutated.
func Apply(tweets []model.Tweet, fn Func) []model.Tweet {
	scored := make([]model.Tweet, len(tweets))
	for i, t := range tweets {
		t.Count = 1
		t.TotalCount = fn(t)
		scored[i] = t
	}
	return scored
}

// Total sums total_count across all records.
func Total(tweets []model.Tweet) int {
	sum := 0
	for _, t := range tweets {
		sum += t.TotalCount
	}
	return sum
}
