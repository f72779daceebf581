package media

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/treykane/cli-gallery/internal/gallery"
)

// DefaultParallel is the mirror concurrency used when none is given.
const DefaultParallel = 4

// Result is the outcome of mirroring one item.
type Result struct {
	ID   string
	Path string
	Err  error
}

// Mirror saves every item with an image, running at most parallel downloads
// at once. A failed item never cancels its siblings; all failures are
// joined into the returned error. Results are in item order.
func Mirror(ctx context.Context, items []gallery.Item, saver gallery.Saver, parallel int) ([]Result, error) {
	if parallel < 1 {
		parallel = DefaultParallel
	}

	results := make([]Result, len(items))
	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	g.SetLimit(parallel)
	for i, item := range items {
		i, item := i, item
		results[i].ID = item.ID
		if item.Image == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			path, err := saver.Save(ctx, item)
			results[i].Path = path
			results[i].Err = err
			if err != nil {
				log.Warn("mirror item failed", "id", item.ID, "error", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", item.ID, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return results, errors.Join(errs...)
}
