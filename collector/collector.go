package collector

import (
	"sort"
	"sync"

	"github.com/byte4ever/hashsift/dispatcher"
)

// Collector is a thread-safe result sink. The zero value is
// ready to use.
type Collector struct {
	mu      sync.Mutex
	results []dispatcher.Result
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{}
}

// Add records one result. Safe for concurrent use.
func (c *Collector) Add(res dispatcher.Result) {
	c.mu.Lock()
	c.results = append(c.results, res)
	c.mu.Unlock()
}

// Len reports how many results have been recorded so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.results)
}

// Sorted returns a copy of all recorded results ordered by
// discovery index. Call it after the dispatcher has finished;
// results added concurrently with Sorted may or may not appear.
func (c *Collector) Sorted() []dispatcher.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]dispatcher.Result, len(c.results))
	copy(out, c.results)

	sort.Slice(out, func(i, j int) bool {
		return out[i].Task.Index < out[j].Task.Index
	})

	return out
}
