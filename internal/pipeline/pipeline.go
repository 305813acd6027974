// Package pipeline drives one full fetch-transform-deliver cycle: filter
// new wall items against the persisted watermark, compose drafts, advance
// the watermark, and deliver the drafts in order.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/vkgram/vkgram/internal/compose"
	"github.com/vkgram/vkgram/internal/vk"
)

// watermarkKey is the store key holding the last processed item timestamp
// as a decimal string.
const watermarkKey = "last-date"

// Stats summarizes one run.
type Stats struct {
	Fetched   int // items returned by the source
	Skipped   int // sponsored or already processed
	Composed  int // drafts produced
	Delivered int
	Failed    int
}

// Pipeline owns the run loop state. Runs are serialized: both the
// scheduler and the HTTP trigger share one Pipeline, and the watermark
// read-modify-persist must not interleave.
type Pipeline struct {
	source   Source
	sender   Sender
	store    Store
	composer *compose.Composer
	logger   *slog.Logger

	mu sync.Mutex
}

// New creates a Pipeline with all collaborators injected.
func New(source Source, sender Sender, store Store, composer *compose.Composer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		source:   source,
		sender:   sender,
		store:    store,
		composer: composer,
		logger:   logger.With("component", "pipeline"),
	}
}

// Run performs one cycle to completion. Fetch and watermark errors abort
// the run; individual delivery failures are logged and skipped, never
// retried, so a post is attempted at most once.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	items, err := p.source.FetchWall(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch wall: %w", err)
	}

	stats := &Stats{Fetched: len(items)}
	if len(items) == 0 {
		return stats, nil
	}

	watermark, err := p.loadWatermark(ctx)
	if err != nil {
		return nil, fmt.Errorf("load watermark: %w", err)
	}
	p.logger.Debug("loaded watermark", "watermark", watermark, "incoming", len(items))

	fresh := filterNew(items, watermark)
	stats.Skipped = len(items) - len(fresh)

	drafts, err := p.composeAll(ctx, fresh, watermark)
	if err != nil {
		return nil, err
	}
	stats.Composed = len(drafts)

	for _, draft := range drafts {
		if err := p.sender.Send(ctx, draft); err != nil {
			// Deliberate at-most-once delivery: log and move on.
			p.logger.Warn("delivery failed, skipping draft",
				"kind", draft.Kind.String(), "error", err)
			stats.Failed++
			continue
		}
		stats.Delivered++
	}

	return stats, nil
}

// filterNew drops sponsored items and items at or below the watermark,
// keeping the source's newest-first order.
func filterNew(items []vk.Item, watermark int64) []vk.Item {
	fresh := make([]vk.Item, 0, len(items))
	for _, item := range items {
		if item.Sponsored() || item.Date <= watermark {
			continue
		}
		fresh = append(fresh, item)
	}
	return fresh
}

// composeAll walks the new items oldest first, collecting drafts and
// advancing the persisted watermark after every item. Persisting per item
// rather than at batch end keeps a re-pinned old post from being forwarded
// twice if a run dies mid-batch.
func (p *Pipeline) composeAll(ctx context.Context, items []vk.Item, watermark int64) ([]compose.Draft, error) {
	var drafts []compose.Draft
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		drafts = append(drafts, p.composer.Compose(item)...)

		if item.Date > watermark {
			watermark = item.Date
			if err := p.store.SetValue(ctx, watermarkKey, strconv.FormatInt(watermark, 10)); err != nil {
				return nil, fmt.Errorf("persist watermark: %w", err)
			}
		}
	}
	return drafts, nil
}

func (p *Pipeline) loadWatermark(ctx context.Context) (int64, error) {
	raw, ok, err := p.store.GetValue(ctx, watermarkKey)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse watermark %q: %w", raw, err)
	}
	return v, nil
}
