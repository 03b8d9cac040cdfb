package cache

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// entryMagic opens every file written by FileCache. Files with any other
// first line are treated as corrupt.
const entryMagic = "salesmap-cache 1"

// FileCache stores one file per key under dir, sharded by the first two
// hex digits of the key hash. Each file holds a three-line header (magic,
// key, expiry as Unix seconds or 0) followed by the raw value, so rendered
// SVG stays readable on disk.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache opens (and creates if needed) a cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

func (c *FileCache) Dir() string { return c.dir }

// Get returns the stored value. Expired, corrupt or foreign files count as
// misses and are removed.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	gotKey, expires, data, ok := decodeEntry(raw)
	if !ok || gotKey != key || c.expired(expires) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

// Set writes the value through a temp file and rename, so a concurrent
// reader sees either the old entry or the new one.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = c.now().Add(ttl).Unix()
		if expires <= c.now().Unix() {
			expires = c.now().Unix()
		}
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	fmt.Fprintf(w, "%s\n%s\n%d\n", entryMagic, key, expires)
	w.Write(data)
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every entry and returns how many were deleted. The root
// directory itself is kept.
func (c *FileCache) Clear() (int, error) {
	return c.sweep(func(string) bool { return true })
}

// Prune removes expired and unreadable entries only.
func (c *FileCache) Prune() (int, error) {
	return c.sweep(func(path string) bool {
		raw, err := os.ReadFile(path)
		if err != nil {
			return true
		}
		_, expires, _, ok := decodeEntry(raw)
		return !ok || c.expired(expires)
	})
}

// sweep deletes the files for which drop reports true, then any shard
// directories left empty.
func (c *FileCache) sweep(drop func(path string) bool) (int, error) {
	count := 0
	var shards []string
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			if path != c.dir {
				shards = append(shards, path)
			}
			return nil
		}
		if drop(path) && os.Remove(path) == nil {
			count++
		}
		return nil
	})
	for _, s := range shards {
		_ = os.Remove(s) // fails while non-empty
	}
	return count, err
}

func (c *FileCache) Close() error { return nil }

func (c *FileCache) expired(unix int64) bool {
	return unix != 0 && c.now().Unix() >= unix
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:])
}

// decodeEntry splits a cache file into its header fields and value.
func decodeEntry(raw []byte) (key string, expires int64, data []byte, ok bool) {
	magic, rest, found := bytes.Cut(raw, []byte{'\n'})
	if !found || string(magic) != entryMagic {
		return "", 0, nil, false
	}
	k, rest, found := bytes.Cut(rest, []byte{'\n'})
	if !found {
		return "", 0, nil, false
	}
	exp, data, found := bytes.Cut(rest, []byte{'\n'})
	if !found {
		return "", 0, nil, false
	}
	expires, err := strconv.ParseInt(strings.TrimSpace(string(exp)), 10, 64)
	if err != nil {
		return "", 0, nil, false
	}
	return string(k), expires, data, true
}

var _ Cache = (*FileCache)(nil)
