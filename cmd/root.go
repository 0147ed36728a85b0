package cmd

import (
	"fmt"
	"log"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jobscout-kr/jobscout/internal/filtering"
	"github.com/jobscout-kr/jobscout/internal/job"
	"github.com/jobscout-kr/jobscout/internal/matching"
)

const (
	app = "jobscout"

	jobsSetName = "jobs"
)

type Config struct {
	PostingsFile string        `mapstructure:"postings-file"`
	ProfilesFile string        `mapstructure:"profiles-file"`
	Filter       *FilterConfig `mapstructure:"filter"`
	Matching     *MatchConfig  `mapstructure:"matching"`
	Embedding    *EmbedConfig  `mapstructure:"embedding"`
}

type FilterConfig struct {
	JobKeywords     []string `mapstructure:"job-keywords"`
	ExcludeKeywords []string `mapstructure:"exclude-keywords"`
}

type MatchConfig struct {
	// Categories overrides the built-in category keyword table. Keys must
	// be known job categories.
	Categories map[string][]string `mapstructure:"categories"`
}

type EmbedConfig struct {
	CacheDir string        `mapstructure:"cache-dir"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile        string  `mapstructure:"api-key-file"`
	Model             string  `mapstructure:"model"`
	Dimension         int     `mapstructure:"dimension"`
	MaxRetries        int     `mapstructure:"max-retries"`
	RequestsPerSecond float64 `mapstructure:"requests-per-second"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobscout filters scraped job postings and matches them against candidate profiles",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("embedding.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing config file is fine: defaults cover everything except the
	// Gemini key. A present but unparseable one is not.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}

	if config.PostingsFile == "" {
		config.PostingsFile = "data/jobs.json"
	}
	if config.ProfilesFile == "" {
		config.ProfilesFile = "data/profiles.json"
	}
	if config.Embedding == nil {
		config.Embedding = &EmbedConfig{}
	}
	if config.Embedding.CacheDir == "" {
		config.Embedding.CacheDir = "data/embeddings"
	}
	if config.Embedding.Gemini == nil {
		config.Embedding.Gemini = &GeminiConfig{}
	}

	return config, nil
}

// filterConfig merges the configured keyword tables over the defaults.
func (c *Config) filterConfig() *filtering.Config {
	cfg := filtering.DefaultConfig()
	if c.Filter == nil {
		return cfg
	}
	if len(c.Filter.JobKeywords) > 0 {
		cfg.JobKeywords = c.Filter.JobKeywords
	}
	if len(c.Filter.ExcludeKeywords) > 0 {
		cfg.ExcludeKeywords = c.Filter.ExcludeKeywords
	}
	return cfg
}

// categoryKeywords decodes keyword-table overrides from the config into
// the typed table the engine validates at startup.
func (c *Config) categoryKeywords() (map[job.Category][]string, error) {
	if c.Matching == nil || len(c.Matching.Categories) == 0 {
		return nil, nil
	}

	overrides := make(map[job.Category][]string)
	if err := mapstructure.Decode(c.Matching.Categories, &overrides); err != nil {
		return nil, fmt.Errorf("decoding category keyword overrides: %w", err)
	}

	merged := matching.DefaultCategoryKeywords()
	for category, keywords := range overrides {
		merged[category] = keywords
	}
	return merged, nil
}
