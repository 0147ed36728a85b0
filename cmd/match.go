package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobscout-kr/jobscout/internal/embedding"
	"github.com/jobscout-kr/jobscout/internal/job"
	"github.com/jobscout-kr/jobscout/internal/logger"
	"github.com/jobscout-kr/jobscout/internal/matching"
)

const (
	PromptExit           = "Exit"
	PromptReportBySource = "Report postings by source"
	PromptResultsToFile  = "Dump match results to file"
)

var errExit = errors.New("exit requested")

var matchPrompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptExit, PromptReportBySource, PromptResultsToFile},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match candidate profiles against eligible postings and rank the results",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().BoolP("auto-approve", "y", false, "print the results and exit without the interactive menu")
	matchCmd.Flags().Bool("no-embeddings", false, "skip embedding similarity and score on rules only")
}

func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	profiles, err := job.ProfilesFromFile(config.ProfilesFile)
	if err != nil {
		logger.Fatal("loading profiles", zap.String("path", config.ProfilesFile), zap.Error(err))
	}

	if profiles.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no profiles registered"))
		return
	}

	logger.Info("loaded profiles", zap.Int("count", profiles.Len()))

	postings, err := loadEligiblePostings(config, logger)
	if err != nil {
		logger.Fatal("filtering postings", zap.Error(err))
	}

	if postings.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no eligible postings"))
		return
	}

	keywords, err := config.categoryKeywords()
	if err != nil {
		logger.Fatal("reading category keywords", zap.Error(err))
	}

	engine, err := matching.NewEngine(keywords, logger)
	if err != nil {
		logger.Fatal("building matching engine", zap.Error(err))
	}

	jobEmbeddings := map[string][]float32{}
	if cmd.Flag("no-embeddings").Value.String() != "true" {
		cache := newEmbeddingCache(config, logger)

		jobEmbeddings, err = loadJobEmbeddings(cache, logger)
		if err != nil {
			logger.Fatal("loading job embeddings", zap.Error(err))
		}

		if len(jobEmbeddings) > 0 {
			if err := embedProfiles(ctx, cache, profiles); err != nil {
				logger.Fatal("embedding profiles", zap.Error(err))
			}
		}
	}

	results := make([]*job.MatchResult, 0)
	for _, profile := range profiles.Items {
		matches := engine.MatchProfileToJobs(profile, postings, jobEmbeddings)
		logger.Info("profile matched",
			zap.String("profile_id", profile.ID),
			zap.String("username", profile.Username),
			zap.Int("matches", len(matches)),
		)
		printMatches(profile, matches, postings)
		results = append(results, matches...)
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		return
	}

	for {
		_, action, err := matchPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleMatchAction(action, logger, postings, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// loadJobEmbeddings reads the persisted jobs vector set. A missing set
// degrades to rule-only scoring.
func loadJobEmbeddings(cache *embedding.Cache, logger *zap.Logger) (map[string][]float32, error) {
	ids, vectors, err := cache.LoadEmbeddings(jobsSetName)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		logger.Warn("no job embeddings found; matching on rules only",
			zap.String("hint", "run '"+app+" embed' first"),
		)
		return map[string][]float32{}, nil
	}

	embeddings := make(map[string][]float32, len(ids))
	for i, id := range ids {
		embeddings[id] = vectors[i]
	}
	return embeddings, nil
}

func embedProfiles(ctx context.Context, cache *embedding.Cache, profiles *job.Profiles) error {
	texts := make([]string, 0, profiles.Len())
	for _, profile := range profiles.Items {
		texts = append(texts, profile.EmbeddingText())
	}

	vectors, err := cache.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}

	for i, profile := range profiles.Items {
		profile.Embedding = vectors[i]
	}
	return nil
}

func printMatches(profile *job.Profile, matches []*job.MatchResult, postings *job.Postings) {
	if len(matches) == 0 {
		fmt.Printf("#%s @%s: no matches\n", profile.ID, profile.Username)
		return
	}

	fmt.Printf("#%s @%s: %d matches\n", profile.ID, profile.Username, len(matches))
	for _, match := range matches {
		title := match.JobID
		if posting := postings.FindByID(match.JobID); posting != nil {
			title = posting.Title
		}
		fmt.Printf("  %5.1f  %s [category %.0f / experience %.0f / location %.0f / embedding %.1f]\n",
			match.TotalScore, title,
			match.Breakdown.CategoryScore,
			match.Breakdown.ExperienceScore,
			match.Breakdown.LocationScore,
			match.Breakdown.EmbeddingScore,
		)
		if len(match.MissingSkills) > 0 {
			fmt.Printf("         missing skills: %v\n", match.MissingSkills)
		}
	}
}

func handleMatchAction(action string, logger *zap.Logger, postings *job.Postings, results []*job.MatchResult) error {
	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReportBySource:
		pretty, _ := json.MarshalIndent(postings.ReportBySource(), "", "  ")
		logger.Info(string(pretty), zap.Int("postings count", postings.Len()))
		return nil
	case PromptResultsToFile:
		filename, err := dumpResults(results)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping results to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func dumpResults(results []*job.MatchResult) (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return "", err
	}
	return file.Name(), nil
}
