// Package parallel fans independent derivative evaluations out across goroutines.
//
// Dual-number evaluations share no mutable state, so the n passes of a naive
// gradient, or derivatives at many distinct points, can run concurrently
// without locks. Each index is handed to exactly one goroutine.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines; <= 0 means runtime.NumCPU().
	MinChunkSize int  // Minimum evaluations per goroutine.
}

// DefaultConfig returns defaults based on CPU count.
//
// A single function evaluation is far heavier than a tensor element, so
// chunks are small.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4,
	}
}

// Sequential returns a Config that runs everything on the calling goroutine.
func Sequential() Config {
	return Config{}
}

// For executes f(i) for i in [0, n) and returns when all calls are done.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	chunk := cfg.chunkSize(n)
	if !cfg.Enabled || chunk >= n {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// chunkSize splits n evaluations evenly over the workers, never below MinChunkSize.
func (c Config) chunkSize(n int) int {
	workers := c.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return max((n+workers-1)/workers, c.MinChunkSize, 1)
}
