package search

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Aggregator fans a query out to every registered engine, merges their
// results in registration order, and deduplicates by canonical URL. Engines
// run concurrently and independently: each goroutine writes only its own
// slot, so a slow or broken surface never blocks or fails the others.
type Aggregator struct {
	engines []Engine
	logger  *zap.Logger
}

func NewAggregator(logger *zap.Logger, engines ...Engine) *Aggregator {
	return &Aggregator{engines: engines, logger: logger}
}

// Aggregate returns at most maxResults deduplicated results. It never
// returns an error: total collapse of every engine yields an empty slice.
func (a *Aggregator) Aggregate(ctx context.Context, query string, maxResults int) []Result {
	segments := make([][]Result, len(a.engines))

	var wg sync.WaitGroup
	for i, eng := range a.engines {
		wg.Add(1)
		go func(slot int, eng Engine) {
			defer wg.Done()
			segments[slot] = eng.Search(ctx, query, maxResults)
		}(i, eng)
	}
	wg.Wait()

	merged := make([]Result, 0, maxResults)
	seen := make(map[string]struct{})
	for i, segment := range segments {
		a.logger.Debug("engine segment",
			zap.String("engine", string(a.engines[i].Name())),
			zap.Int("results", len(segment)))
		for _, r := range segment {
			if r.URL == "" {
				continue
			}
			if _, dup := seen[r.URL]; dup {
				continue
			}
			seen[r.URL] = struct{}{}
			merged = append(merged, r)
		}
	}

	if len(merged) > maxResults {
		merged = merged[:maxResults]
	}
	return merged
}
