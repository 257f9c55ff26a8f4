package modules

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultMetadataCacheSize bounds the metadata cache of installed modules
	DefaultMetadataCacheSize = 256
	// DefaultMetadataCacheTTL is how long parsed metadata of installed modules is reused
	DefaultMetadataCacheTTL = 5 * time.Minute
)

// metadataCache holds parsed module.info files of installed modules which
// are not loaded. Entries are keyed by path, size and modification time so
// an edited file is parsed again.
type metadataCache struct {
	cache  *lru.LRU[string, *Metadata]
	hits   atomic.Int64
	misses atomic.Int64
}

func newMetadataCache(size int, ttl time.Duration) *metadataCache {
	if size <= 0 {
		size = DefaultMetadataCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultMetadataCacheTTL
	}

	return &metadataCache{
		cache: lru.NewLRU[string, *Metadata](size, nil, ttl),
	}
}

// get returns the metadata of the module named name located in baseDir
func (c *metadataCache) get(name, baseDir string) (*Metadata, error) {
	path := filepath.Join(baseDir, MetadataFileName)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewMetadata(name), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	key := fmt.Sprintf("%s@%d@%d", path, info.Size(), info.ModTime().UnixNano())
	if metadata, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return metadata, nil
	}
	c.misses.Add(1)

	metadata, err := LoadMetadata(name, path)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, metadata)

	return metadata, nil
}

// MetadataCacheStats reports how often installed module metadata was reused
type MetadataCacheStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	ItemCount int   `json:"item_count"`
}

func (c *metadataCache) stats() MetadataCacheStats {
	return MetadataCacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		ItemCount: c.cache.Len(),
	}
}
