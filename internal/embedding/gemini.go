package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/jobscout-kr/jobscout/internal/utils"
)

const (
	defaultModel     = "text-embedding-004"
	defaultDimension = 384
	defaultRPS       = 1
	retryBackoff     = 2 * time.Second
)

var backoff = utils.WaitFor

// GeminiConfig configures the Gemini-backed embedder.
type GeminiConfig struct {
	Model             string
	Dimension         int
	MaxRetries        int
	RequestsPerSecond float64
}

// embedFunc is the call into the Gemini embedding endpoint. It is a field
// so tests can substitute a fake without a network client.
type embedFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)

// GeminiEmbedder produces embeddings through the Gemini API. Requests are
// rate limited and retried a bounded number of times before the failure
// propagates to the caller.
type GeminiEmbedder struct {
	embed      embedFunc
	modelName  string
	dimension  int
	maxRetries int
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewGeminiEmbedder creates an embedder configured for the Gemini API backend.
func NewGeminiEmbedder(ctx context.Context, apiKey string, cfg *GeminiConfig, logger *zap.Logger) (*GeminiEmbedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if cfg == nil {
		cfg = &GeminiConfig{}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	dimension := cfg.Dimension
	if dimension <= 0 {
		dimension = defaultDimension
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &GeminiEmbedder{
		embed:      client.Models.EmbedContent,
		modelName:  model,
		dimension:  dimension,
		maxRetries: cfg.MaxRetries,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}, nil
}

// Embed sends the texts to the Gemini embedding endpoint in one call.
func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if e == nil || e.embed == nil {
		return nil, errors.New("gemini embedder is not initialized")
	}
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	cfg := &genai.EmbedContentConfig{
		OutputDimensionality: genai.Ptr(int32(e.dimension)),
	}

	e.logger.Debug("embed content request",
		zap.Int("texts", len(texts)),
		zap.String("first_text_preview", utils.TruncateForLog(texts[0], 120)),
	)

	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			e.logger.Warn("retrying embed request",
				zap.Int("attempt", attempt),
				zap.Int("texts", len(texts)),
				zap.Error(lastErr),
			)
			if err := backoff(ctx, retryBackoff); err != nil {
				return nil, err
			}
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := e.embed(ctx, e.modelName, contents, cfg)
		if err != nil {
			lastErr = err
			continue
		}

		vectors, err := extractVectors(resp, len(texts))
		if err != nil {
			lastErr = err
			continue
		}
		return vectors, nil
	}

	return nil, fmt.Errorf("embed content: %w", lastErr)
}

func extractVectors(resp *genai.EmbedContentResponse, want int) ([][]float32, error) {
	if resp == nil || len(resp.Embeddings) != want {
		got := 0
		if resp != nil {
			got = len(resp.Embeddings)
		}
		return nil, fmt.Errorf("gemini api returned %d embeddings, want %d", got, want)
	}

	vectors := make([][]float32, want)
	for i, embedding := range resp.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, fmt.Errorf("gemini api returned empty embedding at index %d", i)
		}
		vectors[i] = embedding.Values
	}
	return vectors, nil
}

func (e *GeminiEmbedder) Dimension() int {
	if e == nil {
		return 0
	}
	return e.dimension
}

func (e *GeminiEmbedder) Model() string {
	if e == nil {
		return ""
	}
	return e.modelName
}
