// Package gather implements the join policy used by every fan-out in the
// pipeline: run N independent tasks concurrently and return a fixed-shape
// slice of per-task results, each carrying either a value or an error. A
// failing branch never cancels or poisons its siblings.
package gather

import (
	"context"
	"sync"
)

// Result holds one branch's outcome.
type Result[T any] struct {
	Value T
	Err   error
}

// Task is one independent unit of work.
type Task[T any] func(ctx context.Context) (T, error)

// All runs every task concurrently and returns results indexed by input
// position, regardless of completion order.
func All[T any](ctx context.Context, tasks []Task[T]) []Result[T] {
	results := make([]Result[T], len(tasks))

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task Task[T]) {
			defer wg.Done()
			v, err := task(ctx)
			results[i] = Result[T]{Value: v, Err: err}
		}(i, task)
	}
	wg.Wait()

	return results
}
