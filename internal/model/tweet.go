package model

import "time"

// Tweet is one normalized record from the archive, typed at the
// column-normalization boundary. Field order matches the projected
// column order: date, username, name, verified, text, retweets,
// likes, replies, quotes, user_bio.
type Tweet struct {
	Date     time.Time `json:"date"`     // Parsed created_at timestamp
	Username string    `json:"username"` // author.username
	Name     string    `json:"name"`     // author.name (display name)
	Verified bool      `json:"verified"` // author.verified
	Text     string    `json:"text"`     // Tweet body
	Retweets int       `json:"retweets"` // public_metrics.retweet_count
	Likes    int       `json:"likes"`    // public_metrics.like_count
	Replies  int       `json:"replies"`  // public_metrics.reply_count
	Quotes   int       `json:"quotes"`   // public_metrics.quote_count
	UserBio  string    `json:"user_bio"` // author.description

	// Derived by the engagement scorer, zero until Apply runs.
	Count      int `json:"count"`       // Constant 1: this record is one post
	TotalCount int `json:"total_count"` // Engagement weight (post + retweets under the default policy)
}

// Occurrence is one exploded hashtag row. A tweet with no hashtags
// still produces a single occurrence with Valid=false, mirroring the
// null slot a flatten produces; DropMissing removes those. An empty
// Tag with Valid=true is a real value (a bare "#" token stripped to "").
type Occurrence struct {
	Tag        string    `json:"tag"`
	Valid      bool      `json:"valid"`       // False when the source tweet had no hashtags
	Date       time.Time `json:"date"`        // Inherited from the parent tweet
	TotalCount int       `json:"total_count"` // Inherited unchanged, never split across tags
}

// TagCount is one aggregated hashtag tally.
type TagCount struct {
	Tag   string `json:"tag"`
	Total int    `json:"total"` // Summed total_count across all occurrences
}
