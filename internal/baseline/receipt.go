package baseline

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Bump when the Receipt layout changes; older entries then read as misses.
const receiptSchemaVersion uint16 = 1

// Receipt is the cached proof of one successful verification: the content
// hashes of the vector and its recorded files, plus the pass list that
// ran. While all of them still match, the comparison can be skipped.
type Receipt struct {
	Schema     uint16
	Suite      string
	VectorHash [32]byte
	DumpHash   [32]byte
	DiagHash   [32]byte
	Passes     []string
	Verified   time.Time
}

// Fresh reports whether the receipt still matches the current vector,
// recorded files, and pass list.
func (r *Receipt) Fresh(suite string, vector, dump, diags [32]byte, passes []string) bool {
	if r == nil || r.Suite != suite {
		return false
	}
	if r.VectorHash != vector || r.DumpHash != dump || r.DiagHash != diags {
		return false
	}
	if len(r.Passes) != len(passes) {
		return false
	}
	for i := range passes {
		if r.Passes[i] != passes[i] {
			return false
		}
	}
	return true
}

// ReceiptCache stores receipts on disk, one msgpack file per key.
// Thread-safe for concurrent access.
type ReceiptCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenReceiptCache initializes a receipt cache at the standard location,
// $XDG_CACHE_HOME/<app>/receipts, falling back to ~/.cache.
func OpenReceiptCache(app string) (*ReceiptCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenReceiptCacheAt(filepath.Join(base, app, "receipts"))
}

// OpenReceiptCacheAt initializes a receipt cache in an explicit
// directory; tests point it at a temp dir.
func OpenReceiptCacheAt(dir string) (*ReceiptCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ReceiptCache{dir: dir}, nil
}

// Key derives the cache key for one vector within a suite.
func Key(suite, vectorPath string) [32]byte {
	h := sha256.New()
	h.Write([]byte(suite))
	h.Write([]byte{0})
	h.Write([]byte(vectorPath))
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *ReceiptCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a receipt, replacing any previous entry
// atomically.
func (c *ReceiptCache) Put(key [32]byte, r *Receipt) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(f).Encode(r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), c.pathFor(key))
}

// Get reads a receipt. A missing entry or a schema mismatch is a miss,
// not an error.
func (c *ReceiptCache) Get(key [32]byte) (*Receipt, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	// #nosec G304 -- path is derived from the cache's own directory
	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var r Receipt
	if err := msgpack.NewDecoder(f).Decode(&r); err != nil {
		return nil, false, err
	}
	if r.Schema != receiptSchemaVersion {
		return nil, false, nil
	}
	return &r, true, nil
}

// DropAll invalidates every receipt, useful after format changes.
func (c *ReceiptCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// hashFile digests a recorded file; an absent file hashes to zero.
func hashFile(path string) ([32]byte, error) {
	var zero [32]byte
	// #nosec G304 -- path is derived from the caller's baseline dir
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return zero, nil
		}
		return zero, err
	}
	return sha256.Sum256(data), nil
}
