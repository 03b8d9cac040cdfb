package cache

import (
	"context"
	"strings"
)

// Open selects a backend from a target string:
//
//   - "" or a directory path: [FileCache] in that directory (defaultDir when empty)
//   - "none": [NullCache]
//   - "redis://..." or "rediss://...": [RedisCache] with keys under "salesmap:"
func Open(ctx context.Context, target, defaultDir string) (Cache, error) {
	switch {
	case target == "none":
		return NewNullCache(), nil
	case IsRedisURL(target):
		c, err := NewRedisCache(ctx, target, "salesmap:")
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	dir := target
	if dir == "" {
		dir = defaultDir
	}
	c, err := NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// IsRedisURL reports whether target selects the Redis backend.
func IsRedisURL(target string) bool {
	return strings.HasPrefix(target, "redis://") || strings.HasPrefix(target, "rediss://")
}
