// Package cache persists last-known-good snapshots across restarts.
//
// Entries are JSON values in a bbolt database, one database per API URL so
// switching services never shows another service's data. A Cache opened with
// an empty directory keeps entries in memory only.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/five82/trendintel/internal/trendapi"
)

var (
	bucketStats   = []byte("stats")
	bucketTrends  = []byte("trends")
	bucketReports = []byte("reports")
)

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("cache closed")

type entry struct {
	SavedAt time.Time       `json:"saved_at"`
	Data    json.RawMessage `json:"data"`
}

// Cache stores snapshot payloads keyed by resource.
type Cache struct {
	db *bolt.DB

	mu     sync.RWMutex
	mem    map[string][]byte
	closed bool
	now    func() time.Time
}

// Open opens the cache for apiURL under dir.
func Open(dir, apiURL string) (*Cache, error) {
	c := &Cache{mem: make(map[string][]byte), now: time.Now}
	if strings.TrimSpace(dir) == "" {
		return c, nil
	}

	dir = filepath.Join(dir, hashAPIURL(apiURL))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := bolt.Open(filepath.Join(dir, "cache.db"), 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketStats, bucketTrends, bucketReports} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache buckets: %w", err)
	}

	c.db = db
	return c, nil
}

func hashAPIURL(apiURL string) string {
	normalized := strings.TrimRight(strings.ToLower(strings.TrimSpace(apiURL)), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// Close releases the database. It is safe to call more than once.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// SaveStats stores the latest stats.
func (c *Cache) SaveStats(stats *trendapi.Stats) error {
	if stats == nil {
		return nil
	}
	return c.set(bucketStats, "latest", stats)
}

// LoadStats returns the stored stats and when they were saved.
func (c *Cache) LoadStats() (*trendapi.Stats, time.Time, bool) {
	var stats trendapi.Stats
	savedAt, ok := c.get(bucketStats, "latest", &stats)
	if !ok {
		return nil, time.Time{}, false
	}
	return &stats, savedAt, true
}

// SaveTrends stores the feed for category.
func (c *Cache) SaveTrends(category string, items []trendapi.TrendItem) error {
	return c.set(bucketTrends, category, nonNil(items))
}

// LoadTrends returns the stored feed for category.
func (c *Cache) LoadTrends(category string) ([]trendapi.TrendItem, time.Time, bool) {
	var items []trendapi.TrendItem
	savedAt, ok := c.get(bucketTrends, category, &items)
	if !ok {
		return nil, time.Time{}, false
	}
	return nonNil(items), savedAt, true
}

// SaveReports stores the reports list.
func (c *Cache) SaveReports(items []trendapi.TrendItem) error {
	return c.set(bucketReports, "latest", nonNil(items))
}

// LoadReports returns the stored reports list.
func (c *Cache) LoadReports() ([]trendapi.TrendItem, time.Time, bool) {
	var items []trendapi.TrendItem
	savedAt, ok := c.get(bucketReports, "latest", &items)
	if !ok {
		return nil, time.Time{}, false
	}
	return nonNil(items), savedAt, true
}

func nonNil(items []trendapi.TrendItem) []trendapi.TrendItem {
	if items == nil {
		return []trendapi.TrendItem{}
	}
	return items
}

func (c *Cache) get(bucket []byte, key string, dest any) (time.Time, bool) {
	cacheKey := string(bucket) + ":" + key

	c.mu.RLock()
	data, ok := c.mem[cacheKey]
	db := c.db
	closed := c.closed
	c.mu.RUnlock()

	if !ok && db != nil && !closed {
		_ = db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucket)
			if b == nil {
				return nil
			}
			if v := b.Get([]byte(key)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
		if data != nil {
			c.mu.Lock()
			c.mem[cacheKey] = data
			c.mu.Unlock()
		}
	}
	if data == nil {
		return time.Time{}, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return time.Time{}, false
	}
	if err := json.Unmarshal(e.Data, dest); err != nil {
		return time.Time{}, false
	}
	return e.SavedAt, true
}

func (c *Cache) set(bucket []byte, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", bucket, err)
	}
	data, err := json.Marshal(entry{SavedAt: c.now(), Data: payload})
	if err != nil {
		return fmt.Errorf("encode %s: %w", bucket, err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.mem[string(bucket)+":"+key] = data
	db := c.db
	c.mu.Unlock()

	if db == nil {
		return nil
	}
	return db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}
