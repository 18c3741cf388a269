package batch

import (
	"context"
	"sort"
	"sync"
)

type indexed[T any] struct {
	index int
	value T
}

// runPool applies fn to items on up to workers goroutines and returns the
// results in input order. Items not yet dispatched when ctx is done are
// skipped and have no result.
func runPool[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) R) []R {
	if len(items) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan indexed[T])
	results := make(chan indexed[R], len(items))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- indexed[R]{index: job.index, value: fn(ctx, job.value)}
			}
		}()
	}

	go func() {
		defer func() {
			close(jobs)
			wg.Wait()
			close(results)
		}()
		for i, item := range items {
			if ctx.Err() != nil {
				return
			}
			select {
			case jobs <- indexed[T]{index: i, value: item}:
			case <-ctx.Done():
				return
			}
		}
	}()

	collected := make([]indexed[R], 0, len(items))
	for r := range results {
		collected = append(collected, r)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].index < collected[j].index })

	out := make([]R, len(collected))
	for i, r := range collected {
		out[i] = r.value
	}
	return out
}
