// Package cache provides payload caching across js2c runs.
//
// Normalizing a module is cheap, but snapshotting one means launching the
// external snapshot tool once per module on every build. The cache:
//
//  1. Keys each module payload by SHA256 of source content + build configuration
//  2. Stores metadata in BoltDB and payload bytes in the filesystem
//  3. Skips re-normalization / re-snapshot for unchanged modules
//
// Merging and literal extraction still run on every build; only the
// per-module payload production is skipped on a hit.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/jsembed/js2c/internal/config"
)

const (
	// DefaultCacheDir is the default cache directory name
	DefaultCacheDir = ".js2c-cache"

	// bucketName is the BoltDB bucket name for cache entries
	bucketName = "payloads"
)

// Cache manages cached payloads and metadata using BoltDB
type Cache struct {
	db   *bbolt.DB
	root string // Root directory for cache (.js2c-cache/)
}

// New creates a new cache instance
// If cacheDir is empty, uses DefaultCacheDir in current working directory
func New(cacheDir string) (*Cache, error) {
	if cacheDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}

		cacheDir = filepath.Join(cwd, DefaultCacheDir)
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(cacheDir, "cache.db")
	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache bucket: %w", err)
	}

	return &Cache{
		db:   db,
		root: cacheDir,
	}, nil
}

// Close closes the cache database
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}

	return nil
}

// Get retrieves a cached payload by source file and configuration
// Returns a nil entry on cache miss
func (c *Cache) Get(sourceFile string, cfg *config.Config) (*Entry, []byte, error) {
	hash, err := HashSource(sourceFile, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash source: %w", err)
	}

	var entry Entry
	err = c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		data := b.Get([]byte(hash))
		if data == nil {
			return nil // Cache miss
		}

		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return nil, nil, err
	}

	if entry.Hash == "" {
		return nil, nil, nil // Cache miss
	}

	payload, err := ReadPayload(c.payloadPath(hash))
	if err != nil {
		if os.IsNotExist(err) {
			// Metadata without a payload file: treat as a miss and let
			// the caller regenerate.
			return nil, nil, nil
		}

		return nil, nil, err
	}

	return &entry, payload, nil
}

// Store saves a payload and its metadata
func (c *Cache) Store(sourceFile string, cfg *config.Config, moduleName string, payload []byte) error {
	hash, err := HashSource(sourceFile, cfg)
	if err != nil {
		return fmt.Errorf("failed to hash source: %w", err)
	}

	entry := Entry{
		Hash:       hash,
		SourceFile: sourceFile,
		Module:     moduleName,
		BuildType:  cfg.BuildType,
		Snapshot:   cfg.SnapshotMode(),
		Size:       len(payload),
		Timestamp:  time.Now(),
	}

	err = c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}

		return b.Put([]byte(hash), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}

	if err := WritePayload(c.payloadPath(hash), payload); err != nil {
		return fmt.Errorf("failed to store payload: %w", err)
	}

	return nil
}

// Clear removes all cache entries and payloads
func (c *Cache) Clear() error {
	err := c.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket([]byte(bucketName))
	})
	if err != nil {
		return err
	}

	err = c.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
	if err != nil {
		return err
	}

	payloadsDir := filepath.Join(c.root, "payloads")
	if err := os.RemoveAll(payloadsDir); err != nil {
		return fmt.Errorf("failed to remove payloads: %w", err)
	}

	return nil
}

// Stats returns cache statistics
func (c *Cache) Stats() (int, int64, error) {
	var count int
	var totalSize int64

	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		count = b.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	payloadsDir := filepath.Join(c.root, "payloads")
	err = filepath.Walk(payloadsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		if !info.IsDir() {
			totalSize += info.Size()
		}

		return nil
	})

	return count, totalSize, nil
}

// payloadPath returns the payload file path for a given cache hash
func (c *Cache) payloadPath(hash string) string {
	return filepath.Join(c.root, "payloads", hash+".bin")
}
