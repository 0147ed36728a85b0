package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jobscout-kr/jobscout/internal/embedding"
	"github.com/jobscout-kr/jobscout/internal/filtering"
	"github.com/jobscout-kr/jobscout/internal/job"
	"github.com/jobscout-kr/jobscout/internal/secrets"
)

// newEmbeddingCache builds the embedding cache with a deferred Gemini
// factory: the API key is read and the client built only when something
// actually asks for a vector.
func newEmbeddingCache(cfg *Config, logger *zap.Logger) *embedding.Cache {
	gemini := cfg.Embedding.Gemini

	factory := func(ctx context.Context) (embedding.Embedder, error) {
		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set embedding.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		return embedding.NewGeminiEmbedder(ctx, apiKey, &embedding.GeminiConfig{
			Model:             gemini.Model,
			Dimension:         gemini.Dimension,
			MaxRetries:        gemini.MaxRetries,
			RequestsPerSecond: gemini.RequestsPerSecond,
		}, logger)
	}

	return embedding.NewCache(factory, cfg.Embedding.CacheDir, gemini.Model, logger)
}

// loadEligiblePostings reads the postings file and runs the eligibility
// pipeline over it.
func loadEligiblePostings(cfg *Config, logger *zap.Logger) (*job.Postings, error) {
	postings, err := job.PostingsFromFile(cfg.PostingsFile)
	if err != nil {
		return nil, fmt.Errorf("loading postings from %s: %w", cfg.PostingsFile, err)
	}

	logger.Info("loaded postings", zap.String("path", cfg.PostingsFile), zap.Int("count", postings.Len()))

	eligibility, err := filtering.NewEligibility(cfg.filterConfig())
	if err != nil {
		return nil, fmt.Errorf("building eligibility filter: %w", err)
	}

	return filtering.NewPipeline(eligibility, logger).RunFilters(postings)
}
