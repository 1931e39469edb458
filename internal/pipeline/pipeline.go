package pipeline

import (
	"runtime"
	"sync"
)

// Task processes the item at index i. Results should be written by index so
// output order does not depend on scheduling.
type Task func(i int) error

// Run executes fn for every index in [0, n) on a bounded pool of workers.
// workers <= 0 uses one worker per CPU. All indexes run even when some fail;
// the returned errors are in completion order.
func Run(n, workers int, fn Task) []error {
	if n <= 0 || fn == nil {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}
	workers = min(workers, n)

	jobs := make(chan int)
	errs := make(chan error, n)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := fn(i); err != nil {
					errs <- err
				}
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(errs)

	out := make([]error, 0, len(errs))
	for err := range errs {
		out = append(out, err)
	}
	return out
}

// Runner adapts the pool to callers that cannot fail per index.
func Runner(workers int) func(n int, fn func(i int)) {
	return func(n int, fn func(i int)) {
		Run(n, workers, func(i int) error {
			fn(i)
			return nil
		})
	}
}
