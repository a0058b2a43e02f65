package libhkb

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of resolving one sentence of a batch.
type BatchResult struct {
	Sentence Sentence
	Spec     TimeSpec
	Err      error
}

// ResolveAll resolves sentences concurrently with at most limit workers
// (unbounded when limit <= 0). Results are returned in input order; a sentence
// that fails to resolve records its error in its result and does not stop the
// batch. Only ctx cancellation aborts, returning ctx's error.
func ResolveAll(ctx context.Context, r *Resolver, sentences []Sentence, limit int) ([]BatchResult, error) {
	results := make([]BatchResult, len(sentences))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, s := range sentences {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			spec, err := r.Resolve(s)
			results[i] = BatchResult{Sentence: s, Spec: spec, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
