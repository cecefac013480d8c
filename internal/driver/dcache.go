package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"flint/internal/diag"
)

// Current schema version - increment when diskPayload format changes.
const diskCacheSchemaVersion uint16 = 1

// Digest keys a cache entry: content hash mixed with the target version,
// so flipping the configured version never serves stale reachability.
type Digest [32]byte

// CacheKey derives the cache digest for a source payload.
func CacheKey(content []byte, targetVersion string) Digest {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte{0})
	h.Write([]byte(targetVersion))
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

type cachedDiag struct {
	Line     int
	Severity uint8
	Code     uint16
	Symbol   string
	Message  string
}

type diskPayload struct {
	Schema      uint16
	Diagnostics []cachedDiag
}

// DiskCache stores per-file diagnostic results on disk, keyed by Digest.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location ($XDG_CACHE_HOME/flint or ~/.cache/flint).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt uses an explicit directory; tests point this somewhere
// disposable.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".bin")
}

// Load returns the cached bag for key, or ok=false on miss, schema
// mismatch or any decode trouble (a miss, never an error).
func (c *DiskCache) Load(key Digest, maxDiagnostics int) (*diag.Bag, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	var payload diskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}
	size := maxDiagnostics
	if len(payload.Diagnostics) > size {
		size = len(payload.Diagnostics)
	}
	bag := diag.NewBag(size)
	for _, d := range payload.Diagnostics {
		bag.Add(diag.Diagnostic{
			Line:     d.Line,
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Symbol:   d.Symbol,
			Message:  d.Message,
		})
	}
	return bag, true
}

// Store writes a bag for key. Failures are swallowed: the cache is an
// optimization, not a source of truth.
func (c *DiskCache) Store(key Digest, bag *diag.Bag) {
	if bag == nil {
		return
	}
	payload := diskPayload{Schema: diskCacheSchemaVersion}
	for _, d := range bag.Items() {
		payload.Diagnostics = append(payload.Diagnostics, cachedDiag{
			Line:     d.Line,
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Symbol:   d.Symbol,
			Message:  d.Message,
		})
	}
	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	path := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, path)
}

// Clear removes every cached entry.
func (c *DiskCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := os.RemoveAll(filepath.Join(c.dir, "files"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
