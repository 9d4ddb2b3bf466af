package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/taizguy/zamapedia/internal/page/domain"
)

// FileCache keeps one JSON file per entry in a local directory. Entry age is
// the file's mtime, so expiry survives process restarts but the cache itself
// is ephemeral (typically under the OS temp dir).
type FileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &FileCache{dir: dir, ttl: ttl, now: time.Now}, nil
}

func (c *FileCache) Get(ctx context.Context, rawURL string) (*domain.FetchResult, error) {
	path := c.entryPath(rawURL)

	info, err := os.Stat(path)
	if err != nil {
		return nil, nil
	}
	if c.now().Sub(info.ModTime()) > c.ttl {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}

	var result domain.FetchResult
	if err := json.Unmarshal(data, &result); err != nil {
		// Corrupt entry, treat as absent.
		return nil, nil
	}

	return &result, nil
}

func (c *FileCache) Set(ctx context.Context, rawURL string, result *domain.FetchResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := os.WriteFile(c.entryPath(rawURL), data, 0o644); err != nil {
		return fmt.Errorf("cache write error: %w", err)
	}

	return nil
}

func (c *FileCache) entryPath(rawURL string) string {
	return filepath.Join(c.dir, Key(rawURL)+".json")
}
