// Package cache stores normalized archive records between runs so an
// unchanged archive is not re-parsed. Keys are derived from the source
// file's contents and modification time, so both an edit and a touch
// invalidate the entry.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/akarpov/tweetlens/internal/model"
)

// Cache is the byte-level cache interface shared by the memory, disk
// and layered implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ArchiveKey derives the cache key for an archive file: sha256 over
// the file contents, modification time and size.
func ArchiveKey(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open archive for hashing: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat archive: %w", err)
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash archive: %w", err)
	}
	fmt.Fprintf(h, "|%d|%d", info.ModTime().UnixNano(), info.Size())

	return "tweetlens:v1:" + hex.EncodeToString(h.Sum(nil)), nil
}

// Store is the typed wrapper the pipeline uses: normalized tweets in,
// normalized tweets out, JSON underneath.
type Store struct {
	cache Cache
	ttl   time.Duration
}

// NewStore wraps a byte cache with tweet encoding.
func NewStore(c Cache, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl}
}

// GetTweets returns the cached normalized records for the key, if any.
// A corrupt entry is treated as a miss.
func (s *Store) GetTweets(key string) ([]model.Tweet, bool) {
	data, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	var tweets []model.Tweet
	if err := json.Unmarshal(data, &tweets); err != nil {
		_ = s.cache.Delete(key)
		return nil, false
	}
	return tweets, true
}

// SetTweets stores the normalized records under the key.
func (s *Store) SetTweets(key string, tweets []model.Tweet) error {
	data, err := json.Marshal(tweets)
	if err != nil {
		return fmt.Errorf("encode tweets: %w", err)
	}
	return s.cache.Set(key, data, s.ttl)
}
