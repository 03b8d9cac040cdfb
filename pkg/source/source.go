// Package source loads sales datasets from HTTP endpoints or local files.
//
// A [Loader] performs exactly one GET per fetch unless retries are enabled
// explicitly with [Loader.Attempts]. Any failure to obtain or decode the
// dataset is reported as a FETCH_ERROR and is terminal for the run.
//
// Successfully decoded HTTP payloads are stored in a [cache.Cache] keyed by
// URL, so repeated renders of the same dataset skip the network.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/salesmap/pkg/buildinfo"
	"github.com/matzehuels/salesmap/pkg/cache"
	"github.com/matzehuels/salesmap/pkg/dataset"
	"github.com/matzehuels/salesmap/pkg/errors"
	"github.com/matzehuels/salesmap/pkg/httputil"
	"github.com/matzehuels/salesmap/pkg/observability"
)

// DefaultURL is the public video game sales dataset.
const DefaultURL = "https://cdn.rawgit.com/freeCodeCamp/testable-projects-fcc/a80ce8f9/src/data/tree_map/video-game-sales-data.json"

// ReferenceDelay is the pause the reference page waits before fetching.
const ReferenceDelay = 300 * time.Millisecond

const (
	httpTimeout    = 30 * time.Second
	maxBodyBytes   = 32 << 20
	defaultBackoff = 500 * time.Millisecond
	maxBackoff     = 8 * time.Second
)

// Loader fetches and decodes datasets.
type Loader struct {
	HTTP  *http.Client
	Cache cache.Cache
	Keyer cache.Keyer

	// Delay is waited before every network request.
	Delay time.Duration
	// Attempts is the total number of tries for transient failures
	// (network errors, 5xx). Values below 2 mean a single request.
	Attempts int
	// Backoff is the wait before the first retry; it doubles afterwards.
	Backoff time.Duration
	// Refresh bypasses cached payloads (the fresh payload is still stored).
	Refresh bool

	Logger *log.Logger
}

// NewLoader creates a Loader with a standard HTTP timeout.
// A nil cache disables caching.
func NewLoader(c cache.Cache, logger *log.Logger) *Loader {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{
		HTTP:     &http.Client{Timeout: httpTimeout},
		Cache:    c,
		Keyer:    cache.NewDefaultKeyer(),
		Attempts: 1,
		Backoff:  defaultBackoff,
		Logger:   logger,
	}
}

// Result is a loaded dataset.
type Result struct {
	Source    string
	Root      dataset.Node
	Hash      string // SHA-256 of the raw payload
	Size      int
	FromCache bool
}

// Fetch retrieves and decodes the dataset at rawURL.
func (l *Loader) Fetch(ctx context.Context, rawURL string) (dataset.Node, error) {
	res, err := l.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return res.Root, nil
}

// Load dispatches on target: http(s) URLs are fetched, anything else is
// read as a local file. An empty target loads [DefaultURL].
func (l *Loader) Load(ctx context.Context, target string) (*Result, error) {
	if target == "" {
		target = DefaultURL
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, target)

	var (
		res *Result
		err error
	)
	if errors.IsURL(target) {
		res, err = l.fetch(ctx, target)
	} else {
		res, err = LoadFile(target)
	}

	leaves := 0
	if err == nil {
		leaves = len(dataset.Leaves(res.Root))
	}
	observability.Pipeline().OnLoadComplete(ctx, target, leaves, time.Since(start), err)
	return res, err
}

// LoadFile reads and decodes a dataset from a local JSON file.
func LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "read %s", path)
	}
	root, err := dataset.DecodeBytes(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "parse %s", path)
	}
	return &Result{Source: path, Root: root, Hash: cache.Hash(data), Size: len(data)}, nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) (*Result, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "fetch %s", rawURL)
	}

	key := l.Keyer.DatasetKey(rawURL)
	if !l.Refresh {
		if data, ok, _ := l.Cache.Get(ctx, key); ok {
			if root, err := dataset.DecodeBytes(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "dataset")
				l.Logger.Debug("dataset cache hit", "url", rawURL)
				return &Result{Source: rawURL, Root: root, Hash: cache.Hash(data), Size: len(data), FromCache: true}, nil
			}
			_ = l.Cache.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, "dataset")
	}

	if l.Delay > 0 {
		l.Logger.Debug("waiting before fetch", "delay", l.Delay)
		if err := httputil.Sleep(ctx, l.Delay); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFetch, err, "fetch %s", rawURL)
		}
	}

	policy := httputil.Policy{
		Attempts: l.Attempts,
		Initial:  l.Backoff,
		Max:      maxBackoff,
		OnRetry: func(attempt int, err error, wait time.Duration) {
			l.Logger.Debug("fetch attempt failed", "url", rawURL, "attempt", attempt, "retry_in", wait, "err", err)
		},
	}
	var data []byte
	err := policy.Do(ctx, func() error {
		var err error
		data, err = l.get(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "fetch %s", rawURL)
	}

	root, err := dataset.DecodeBytes(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "fetch %s", rawURL)
	}

	if err := l.Cache.Set(ctx, key, data, cache.TTLDataset); err != nil {
		l.Logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "dataset", len(data))
	}

	return &Result{Source: rawURL, Root: root, Hash: cache.Hash(data), Size: len(data)}, nil
}

// get performs one GET. Transport errors and 5xx responses are marked
// retryable; everything else is permanent.
func (l *Loader) get(ctx context.Context, rawURL string) ([]byte, error) {
	host, path := rawURL, ""
	if u, err := url.Parse(rawURL); err == nil {
		host, path = u.Host, u.Path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodGet, host, path)
	start := time.Now()

	resp, err := l.HTTP.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		return nil, &httputil.RetryableError{Err: err}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &errors.StatusError{StatusCode: resp.StatusCode, URL: rawURL}
		if serr.Temporary() {
			return nil, &httputil.RetryableError{Err: serr}
		}
		return nil, serr
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("read body: %w", err)}
	}
	if len(data) > maxBodyBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", maxBodyBytes)
	}
	return data, nil
}
