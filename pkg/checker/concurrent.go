package checker

import (
	"context"
	"io"
	"sync"

	"github.com/remeh/sizedwaitgroup"
)

// CheckAll runs Check over several sources concurrently. The tree is
// read-only after construction, so the workers share it without locking;
// only the result slots are coordinated. Results come back indexed like
// sources. The first source error wins; remaining sources still finish
// unless ctx is cancelled.
func (c *Checker) CheckAll(ctx context.Context, sources []io.Reader, workers int) ([][]Miss, error) {
	if workers <= 0 {
		workers = 4
	}

	results := make([][]Miss, len(sources))

	var mu sync.Mutex
	var firstErr error

	swg := sizedwaitgroup.New(workers)
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			break
		}
		if err := swg.AddWithContext(ctx); err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			break
		}

		go func(i int, src io.Reader) {
			defer swg.Done()

			misses, err := c.Check(src)
			mu.Lock()
			results[i] = misses
			if err != nil && firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}(i, src)
	}

	swg.Wait()
	return results, firstErr
}
