package pipeline

import (
	"context"

	"github.com/matzehuels/salesmap/pkg/cache"
	"github.com/matzehuels/salesmap/pkg/source"
)

// Load fetches or reads the dataset named by opts.Source.
func Load(ctx context.Context, c cache.Cache, opts Options) (*source.Result, error) {
	return newLoader(c, nil, opts).Load(ctx, opts.Source)
}

func newLoader(c cache.Cache, keyer cache.Keyer, opts Options) *source.Loader {
	l := source.NewLoader(c, opts.Logger)
	if keyer != nil {
		l.Keyer = keyer
	}
	l.Delay = opts.Delay
	l.Attempts = opts.Retries
	l.Refresh = opts.Refresh
	return l
}
