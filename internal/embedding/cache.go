package embedding

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Factory builds the underlying embedder. Construction is deferred until
// the first embedding request so process startup stays cheap when no
// embeddings are needed.
type Factory func(ctx context.Context) (Embedder, error)

// Cache memoizes text embeddings by content fingerprint. The in-memory map
// lives for the process lifetime; named sets can be flushed to disk and
// reloaded in a later process.
type Cache struct {
	factory Factory
	dir     string
	model   string
	logger  *zap.Logger

	embedderMu sync.Mutex
	embedder   Embedder

	mu      sync.RWMutex
	vectors map[string][]float32

	// flight collapses concurrent single-text requests for the same
	// fingerprint into one model call.
	flight singleflight.Group

	// computeMu serializes every model computation, single or batch, so no
	// distinct text is ever being computed twice at the same time.
	computeMu sync.Mutex
}

// NewCache creates a cache backed by the given embedder factory. The dir
// holds persisted vector sets; model is the identity string recorded in
// their metadata.
func NewCache(factory Factory, dir, model string, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if model == "" {
		model = defaultModel
	}
	return &Cache{
		factory: factory,
		dir:     dir,
		model:   model,
		logger:  logger,
		vectors: make(map[string][]float32),
	}
}

// Model returns the configured model identity string.
func (c *Cache) Model() string {
	return c.model
}

func (c *Cache) loadModel(ctx context.Context) (Embedder, error) {
	c.embedderMu.Lock()
	defer c.embedderMu.Unlock()

	if c.embedder != nil {
		return c.embedder, nil
	}

	c.logger.Info("loading embedding model", zap.String("model", c.model))
	embedder, err := c.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load embedding model: %w", err)
	}

	c.embedder = embedder
	return embedder, nil
}

func (c *Cache) lookup(fp string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vector, ok := c.vectors[fp]
	return vector, ok
}

// Embed returns the vector for a single text, computing and caching it on
// first use. Concurrent callers for the same text share one computation.
func (c *Cache) Embed(ctx context.Context, text string) ([]float32, error) {
	fp := Fingerprint(text)
	if vector, ok := c.lookup(fp); ok {
		return vector, nil
	}

	result, err, _ := c.flight.Do(fp, func() (any, error) {
		c.computeMu.Lock()
		defer c.computeMu.Unlock()

		// A batch holding computeMu may have computed this text meanwhile.
		if vector, ok := c.lookup(fp); ok {
			return vector, nil
		}

		embedder, err := c.loadModel(ctx)
		if err != nil {
			return nil, err
		}

		vectors, err := embedder.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vectors) != 1 {
			return nil, fmt.Errorf("embedder returned %d vectors for one text", len(vectors))
		}

		c.mu.Lock()
		c.vectors[fp] = vectors[0]
		c.mu.Unlock()

		return vectors[0], nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]float32), nil
}

// EmbedBatch returns one vector per input text, preserving order. Texts
// already cached are served from memory; the remaining distinct texts go
// to the model in a single call. Duplicate texts within the batch are
// computed once. A failed model call leaves already-cached entries intact.
func (c *Cache) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	c.computeMu.Lock()
	defer c.computeMu.Unlock()

	results := make([][]float32, len(texts))

	// positions maps each uncached fingerprint to every input index
	// carrying that text, so duplicates are computed once.
	positions := make(map[string][]int)
	missTexts := make([]string, 0, len(texts))
	missFPs := make([]string, 0, len(texts))

	c.mu.RLock()
	for i, text := range texts {
		fp := Fingerprint(text)
		if vector, ok := c.vectors[fp]; ok {
			results[i] = vector
			continue
		}
		if _, seen := positions[fp]; !seen {
			missTexts = append(missTexts, text)
			missFPs = append(missFPs, fp)
		}
		positions[fp] = append(positions[fp], i)
	}
	c.mu.RUnlock()

	if len(missTexts) == 0 {
		return results, nil
	}

	c.logger.Info("embedding new texts",
		zap.Int("total", len(texts)),
		zap.Int("uncached", len(missTexts)),
	)

	embedder, err := c.loadModel(ctx)
	if err != nil {
		return nil, err
	}

	vectors, err := embedder.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missTexts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(missTexts))
	}

	c.mu.Lock()
	for j, fp := range missFPs {
		c.vectors[fp] = vectors[j]
		for _, i := range positions[fp] {
			results[i] = vectors[j]
		}
	}
	c.mu.Unlock()

	return results, nil
}
