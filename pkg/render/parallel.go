package render

import (
	"runtime"
	"sync"
)

// parallelRows splits [0,rows) into one contiguous band per CPU and calls
// fn for each band concurrently. fn must only write rows inside its band.
func parallelRows(rows int, fn func(y0, y1 int)) {
	if rows <= 0 {
		return
	}
	workers := min(runtime.GOMAXPROCS(0), rows)
	band := (rows + workers - 1) / workers

	var wg sync.WaitGroup
	for y0 := 0; y0 < rows; y0 += band {
		y1 := min(y0+band, rows)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(y0, y1)
		}()
	}
	wg.Wait()
}
