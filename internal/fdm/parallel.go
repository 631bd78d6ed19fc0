package fdm

import (
	"runtime"
	"sync"
)

// parallelMinRows keeps small grids on the calling goroutine.
const parallelMinRows = 32

// ParallelFor splits [0, n) into contiguous chunks of at least minChunk and
// runs fn on each chunk concurrently. It returns once every chunk is done.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// InteriorRows runs fn over rows 1..ny-2 of a 2D plane, in parallel when the
// grid is large enough. Rows are independent: every update reads only the
// previous level.
func InteriorRows(ny int, fn func(j int)) {
	ParallelFor(ny-2, parallelMinRows, func(start, end int) {
		for j := start + 1; j < end+1; j++ {
			fn(j)
		}
	})
}
