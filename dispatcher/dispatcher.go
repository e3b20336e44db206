package dispatcher

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/byte4ever/hashsift/digester"
	"github.com/byte4ever/hashsift/walker"
)

// Result is the outcome of hashing one enumerated file. Exactly
// one of Hex or Err is set.
type Result struct {
	Task     walker.Task
	Hex      string
	Modified time.Time
	Err      error
}

// Sink receives each completed Result. Implementations must be
// safe for concurrent use; workers call Add from independent
// goroutines in completion order, not discovery order.
type Sink interface {
	Add(Result)
}

// WorkerCount normalizes a configured worker count: values
// below 1 select the host's CPU count.
func WorkerCount(workers int) int {
	if workers < 1 {
		return runtime.NumCPU()
	}

	return workers
}

// Run drains tasks with a pool of worker goroutines, digesting
// each file and delivering one Result per task to sink. An
// optional observe callback fires after each delivery. Run
// blocks until the task channel is closed and every in-flight
// file has finished; workers never exceed the given count
// (values < 1 select the host's CPU count). Once ctx is
// cancelled, remaining tasks are accounted with the context's
// error instead of being hashed.
func Run(
	ctx context.Context,
	workers int,
	algo digester.Algorithm,
	tasks <-chan walker.Task,
	sink Sink,
	observe func(Result),
) {
	workers = WorkerCount(workers)

	var wg sync.WaitGroup

	for n := 0; n < workers; n++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for task := range tasks {
				res := Result{Task: task}

				if err := ctx.Err(); err != nil {
					res.Err = err
				} else {
					dr, err := digester.Digest(
						task.Path, algo,
					)
					if err != nil {
						res.Err = err
					} else {
						res.Hex = dr.Hex
						res.Modified = dr.Modified
					}
				}

				sink.Add(res)

				if observe != nil {
					observe(res)
				}
			}
		}()
	}

	wg.Wait()
}
