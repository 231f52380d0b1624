package concurrency

import (
	"context"
	"sync"
)

// WorkerFn is one unit of fan-out work.
type WorkerFn func(ctx context.Context, index int)

// FanOut runs fn on the given number of goroutines and blocks until all
// of them return.
func FanOut(ctx context.Context, workers int, fn WorkerFn) {
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			fn(ctx, idx)
		}(i)
	}
	wg.Wait()
}
