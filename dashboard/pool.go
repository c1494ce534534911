package dashboard

import "sync"

// forEachLimit runs fn(i) for every i in [0, n) using a fixed pool of
// workers pulling from a shared index feed, capping simultaneous in-flight
// work. Workers write to disjoint output slots keyed by i, so callers need
// no locking as long as each index owns its own slot.
func forEachLimit(n, limit int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if limit < 1 {
		limit = 1
	}
	if limit > n {
		limit = n
	}

	indexes := make(chan int)
	go func() {
		for i := 0; i < n; i++ {
			indexes <- i
		}
		close(indexes)
	}()

	var wg sync.WaitGroup
	for w := 0; w < limit; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				fn(i)
			}
		}()
	}
	wg.Wait()
}
