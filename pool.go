package slidedeck

import (
	"context"
	"runtime"
	"sync"
)

// Worker sizing constants.
const (
	// MinWorkers ensures at least one slide is processed at a time.
	MinWorkers = 1

	// MaxWorkers caps automatic sizing; macros are mostly I/O on small files.
	MaxWorkers = 8

	// cpuDivisor leaves headroom for the rest of the process.
	cpuDivisor = 2
)

// ResolveWorkers determines how many slides are processed in parallel.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// slideJob is the outcome of processing one slide.
type slideJob struct {
	slide Slide
	err   error // macro failure, the slide keeps its raw content
}

// processSlides runs fn over every chunk with at most workers goroutines.
// Results keep document order.
func processSlides(ctx context.Context, chunks []string, workers int, fn func(i int, chunk string) slideJob) ([]slideJob, error) {
	if len(chunks) == 0 {
		return nil, ctx.Err()
	}

	concurrency := ResolveWorkers(workers)
	if concurrency > len(chunks) {
		concurrency = len(chunks)
	}

	results := make([]slideJob, len(chunks))
	var wg sync.WaitGroup
	jobs := make(chan int, len(chunks))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					continue
				}
				results[idx] = fn(idx, chunks[idx])
			}
		}()
	}

	for i := range chunks {
		jobs <- i
	}
	close(jobs)

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
