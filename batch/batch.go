// Package batch provides bounded concurrent parsing of independent byte
// ranges over the root package's reader, for callers holding many
// documents (e.g. one per request or one per file) that want to decode
// them in parallel without spawning an unbounded number of goroutines.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	json "github.com/edirooss/libjson"
)

// DecodeAll parses each element of docs independently and concurrently,
// returning results in the same order as docs. Each document gets its own
// Value tree allocated with alloc (nil selects json.DefaultAllocator()).
// limit bounds the number of goroutines running at once; a value <= 0
// means unbounded (SetLimit is then not called at all).
//
// The first parse error cancels ctx for the remaining goroutines and is
// returned together with a nil result slice.
func DecodeAll(ctx context.Context, docs [][]byte, alloc json.Allocator, opts *json.ReadOptions, limit int) ([]*json.Value, error) {
	results := make([]*json.Value, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			v, _, err := json.ReadValue(doc, alloc, opts)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
