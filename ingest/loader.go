package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/freightlens/freightlens/dataset"
)

// ============================================================================
// LOADER — normalized-table cache
// ============================================================================
// Normalizing a large export is the expensive step, so the loader caches
// finished tables keyed by file identity (path, size, mtime). Editing or
// replacing a file changes the key and forces a re-parse. The cache is
// unbounded and lives for the process.
// ============================================================================

// Loader reads and normalizes spreadsheet files with caching.
type Loader struct {
	mu    sync.Mutex
	cache map[string]*dataset.Table
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{cache: make(map[string]*dataset.Table)}
}

// Load reads, parses, and normalizes the file at path, serving repeated
// loads of an unchanged file from cache.
func (l *Loader) Load(path string) (*dataset.Table, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: stat %s: %w", path, err)
	}
	key := fmt.Sprintf("%s|%d|%d", path, stat.Size(), stat.ModTime().UnixNano())

	l.mu.Lock()
	cached, hit := l.cache[key]
	l.mu.Unlock()
	if hit {
		slog.Debug("loader cache hit", "path", path)
		return cached, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	var raw *dataset.RawTable
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		raw, err = ReadCSV(f)
	} else {
		raw, err = ReadXLSX(f)
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: read %s: %w", path, err)
	}

	table := dataset.Normalize(raw)
	l.mu.Lock()
	l.cache[key] = table
	l.mu.Unlock()
	return table, nil
}
