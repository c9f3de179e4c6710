// Package game implements the per-game half of the pipeline: the concurrent
// batch fetcher over the memo table, and the fold of fetched game documents
// into a betting-relevant team summary.
package game

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/dugout-labs/dugout-data/internal/cache"
	"github.com/dugout-labs/dugout-data/internal/gather"
	"github.com/dugout-labs/dugout-data/internal/provider/mlb"
)

// Source is the upstream operation the fetcher depends on.
type Source interface {
	GameFeed(ctx context.Context, gamePk int) (*mlb.GameDocument, error)
}

// Fetcher retrieves game documents, memoizing each by gamePk so a document
// is fetched from upstream at most once per process. Concurrent first
// accesses to the same key are coalesced into a single in-flight request.
type Fetcher struct {
	source Source
	memo   *cache.Memo
	flight singleflight.Group
	logger *slog.Logger
}

// NewFetcher creates a Fetcher over the given upstream source and memo table.
func NewFetcher(source Source, memo *cache.Memo, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{source: source, memo: memo, logger: logger}
}

// FetchOne returns the document for one game, from the memo table when
// possible. The document is memoized before it is returned.
func (f *Fetcher) FetchOne(ctx context.Context, gamePk int) (*mlb.GameDocument, error) {
	key := cache.GameKey(gamePk)
	if v, ok := f.memo.Get(key); ok {
		return v.(*mlb.GameDocument), nil
	}

	v, err, _ := f.flight.Do(key, func() (interface{}, error) {
		doc, err := f.source.GameFeed(ctx, gamePk)
		if err != nil {
			return nil, err
		}
		f.memo.Set(key, doc)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mlb.GameDocument), nil
}

// FetchBatch retrieves documents for every game in gamePks, issuing cache
// misses concurrently. Output order follows input order; documents that fail
// to fetch are dropped, so the result may be shorter than the input and
// callers must treat that as normal.
func (f *Fetcher) FetchBatch(ctx context.Context, gamePks []int) []*mlb.GameDocument {
	tasks := make([]gather.Task[*mlb.GameDocument], len(gamePks))
	for i, pk := range gamePks {
		pk := pk
		tasks[i] = func(ctx context.Context) (*mlb.GameDocument, error) {
			return f.FetchOne(ctx, pk)
		}
	}

	results := gather.All(ctx, tasks)

	docs := make([]*mlb.GameDocument, 0, len(results))
	for i, res := range results {
		if res.Err != nil {
			f.logger.Warn("dropping game from batch", "game_pk", gamePks[i], "error", res.Err)
			continue
		}
		if res.Value != nil {
			docs = append(docs, res.Value)
		}
	}
	return docs
}
