package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobscout-kr/jobscout/internal/logger"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Run the eligibility filter over the postings file and report per-rule drop counts",
	Run: func(cmd *cobra.Command, _ []string) {
		runFilter(cmd)
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().BoolP("dump", "o", false, "dump surviving postings to a temporary file")
}

func runFilter(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	eligible, err := loadEligiblePostings(config, logger)
	if err != nil {
		logger.Fatal("filtering postings", zap.Error(err))
	}

	logger.Info("eligible postings", zap.Int("count", eligible.Len()))

	if cmd.Flag("dump").Value.String() == "true" {
		filename, err := eligible.DumpToTmpFile()
		if err != nil {
			logger.Fatal("dumping postings to file", zap.Error(err))
		}
		logger.Info("dumped postings", zap.String("filename", filename))
	}
}
