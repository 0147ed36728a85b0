package cmd

import (
	"context"
	"log"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobscout-kr/jobscout/internal/logger"
)

// embedBatchSize bounds how many texts go to the model per request.
const embedBatchSize = 32

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Compute embeddings for eligible postings and persist them as the jobs vector set",
	Run: func(_ *cobra.Command, _ []string) {
		runEmbed()
	},
}

func init() {
	rootCmd.AddCommand(embedCmd)
}

func runEmbed() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	postings, err := loadEligiblePostings(config, logger)
	if err != nil {
		logger.Fatal("filtering postings", zap.Error(err))
	}

	if postings.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no eligible postings to embed"))
		return
	}

	cache := newEmbeddingCache(config, logger)

	texts := make([]string, 0, postings.Len())
	for _, posting := range postings.Items {
		texts = append(texts, posting.EmbeddingText())
	}

	logger.Info("embedding postings", zap.Int("count", len(texts)))

	bar := progressbar.Default(int64(len(texts)), "embedding")
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := cache.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			logger.Fatal("embedding batch", zap.Int("offset", start), zap.Error(err))
		}
		vectors = append(vectors, batch...)
		_ = bar.Add(end - start)
	}

	path, err := cache.SaveEmbeddings(postings.IDs(), vectors, jobsSetName)
	if err != nil {
		logger.Fatal("saving embeddings", zap.Error(err))
	}

	logger.Info("embeddings saved",
		zap.String("set", jobsSetName),
		zap.Int("count", postings.Len()),
		zap.String("path", path),
	)
}
