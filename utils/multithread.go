// Package utils provides small helpers shared by the latentlab subpackages.
package utils

import (
	"runtime"
	"sync"
)

// MultiThread runs an operation over a range of integers, splitting the work
// across goroutines. It should be run sequentially, not in a separate thread;
// it is designed for use by Operators and Optimizers in their mass
// calculations.
//
// The range includes 'start' and excludes 'end'; MultiThread assumes that
// end >= start. 'f' is the function run for each value in the range.
// 'opsPerThread' is the number of operations each goroutine handles before
// requesting another set, and 'threadsPerCPU' the number of goroutines
// created per CPU.
func MultiThread(start, end int, f func(int), opsPerThread, threadsPerCPU int) {
	numThreads := runtime.NumCPU() * threadsPerCPU
	index := start
	var indexMux sync.Mutex

	var wg sync.WaitGroup
	wg.Add(numThreads)

	for thread := 0; thread < numThreads; thread++ {
		go func() {
			defer wg.Done()

			for {
				indexMux.Lock()
				if index >= end {
					indexMux.Unlock()
					return
				}

				i := index
				index += opsPerThread
				indexMux.Unlock()

				e := i + opsPerThread
				if e > end {
					e = end
				}

				for ; i < e; i++ {
					f(i)
				}
			}
		}()
	}

	wg.Wait()
}
