package lib

import (
	"log"
	"runtime"
	"sync"
	"time"
)

// ExpandSeedsConcurrent behaves like ExpandSeeds but spreads match
// collection over several workers. The seed queue is drained up front so
// workers only share the read-only node and interval structures; edge
// registration serializes on one mutex. The resulting pair set is the
// same as for sequential expansion because every discovered edge points
// from a seed to a strictly heavier node, so two seeds can never race on
// the same pair. Arena order may still differ between runs.
// A worker count of zero falls back to the configured ExpandWorkers and
// then to one worker per cpu.
func (g *RelationGraph) ExpandSeedsConcurrent(workers int) int {
	if workers <= 0 {
		workers = g.config.ExpandWorkers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	started := time.Now()
	seeds := g.DrainSeeds()
	if len(seeds) == 0 {
		return 0
	}
	if workers > len(seeds) {
		workers = len(seeds)
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	total := 0
	jobs := make(chan *GraphNode)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				matches := g.collectMatches(n)
				if len(matches) > 0 {
					mu.Lock()
					for _, m := range matches {
						g.AddEdge(m.source, m.target, m.transition, m.massError, m.rtError)
					}
					total += len(matches)
					mu.Unlock()
				}
				seedsProcessed.Inc()
			}
		}()
	}
	for _, n := range seeds {
		jobs <- n
	}
	close(jobs)
	wg.Wait()

	expansionDurationHist.Observe(float64(time.Since(started).Milliseconds()))
	log.Printf("expanded %d seeds into %d edges on %d workers\n", len(seeds), total, workers)
	return total
}
