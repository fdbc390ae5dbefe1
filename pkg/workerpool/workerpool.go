// Package workerpool fans a slice of jobs out across a bounded number of
// goroutines. The library's one caller, internal/facade.Base.FetchUTXOsFanOut,
// uses it to issue one getUTXOs RPC per address group concurrently instead of
// serially, so a wallet with many address groups doesn't pay for each round
// trip back to back.
package workerpool

import (
	"context"
	"sync"
)

// Process runs do over jobs using workerCount goroutines, stopping early and
// canceling the remaining work the first time do returns an error. onCancel,
// if non-nil, fires once on that first failure — FetchUTXOsFanOut passes nil
// since a partial UTXO fetch is simply reported as an error, with no
// fan-out-specific cleanup to run.
func Process[T any](
	ctx context.Context,
	workerCount int,
	jobs []T,
	do func(context.Context, T) error,
	onCancel func(),
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pending := make(chan T, workerCount)
	failures := make(chan error, workerCount)
	var cancelOnce sync.Once
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-pending:
					if !ok {
						return
					}
					if err := do(ctx, job); err != nil {
						select {
						case failures <- err:
						default:
						}
						if onCancel != nil {
							cancelOnce.Do(onCancel)
						}
						cancel()
						return
					}
				}
			}
		}()
	}

	go func() {
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				close(pending)
				return
			case pending <- job:
			}
		}
		close(pending)
	}()

	wg.Wait()
	close(failures)

	for err := range failures {
		if err != nil {
			return err
		}
	}

	return ctx.Err()
}
