package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/keyword-atlas/internal/cache"
	"github.com/jonathan/keyword-atlas/internal/config"
	"github.com/jonathan/keyword-atlas/internal/observability"
	"github.com/jonathan/keyword-atlas/internal/pipeline"
	"github.com/jonathan/keyword-atlas/internal/provider"
	"github.com/jonathan/keyword-atlas/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full analysis pipeline end-to-end",
	Long: `Loads the keyword, report, and link data (from the provider API or local fixture files), resolves keyword texts, matches ranking report rows, computes movement, builds clusters, associates links, and lays out the cluster map.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath     string
	analyzeKeywords       string
	analyzeReports        string
	analyzeLinks          string
	analyzeProviderURL    string
	analyzeAPIKey         string
	analyzeSiteID         string
	analyzeDomain         string
	analyzeViewportWidth  float64
	analyzeViewportHeight float64
	analyzeDatabaseURL    string
	analyzeCacheTTLHours  int
	analyzeOutput         string
	analyzeVerbose        bool
)

func init() {
	// Config file flag (processed first)
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCommand.Flags().StringVarP(&analyzeKeywords, "keywords", "k", "", "Path to keyword list JSON fixture (mutually exclusive with --provider-url)")
	analyzeCommand.Flags().StringVarP(&analyzeReports, "reports", "r", "", "Path to SERP report list JSON fixture")
	analyzeCommand.Flags().StringVarP(&analyzeLinks, "links", "l", "", "Path to link report JSON fixture")
	analyzeCommand.Flags().StringVar(&analyzeProviderURL, "provider-url", "", "Provider API base URL (mutually exclusive with fixture paths)")
	analyzeCommand.Flags().StringVar(&analyzeSiteID, "site-id", "", "Provider site identifier")
	analyzeCommand.Flags().StringVarP(&analyzeDomain, "domain", "d", "", "Site domain used for link ordering")
	analyzeCommand.Flags().Float64Var(&analyzeViewportWidth, "viewport-width", 0, "Layout viewport width in pixels")
	analyzeCommand.Flags().Float64Var(&analyzeViewportHeight, "viewport-height", 0, "Layout viewport height in pixels")
	analyzeCommand.Flags().IntVar(&analyzeCacheTTLHours, "cache-ttl-hours", 0, "Freshness window for cached page scores and map images")
	analyzeCommand.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the full result as JSON to this path")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed progress and per-keyword summaries")

	// API key can be passed as a flag, or read from env var PROVIDER_API_KEY
	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Provider API key (optional, defaults to PROVIDER_API_KEY env var)")

	// Database URL for the score/map cache
	analyzeCommand.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "PostgreSQL connection URL for the cache (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadAnalyzeConfig(cmd, analyzeConfigPath)
	if err != nil {
		return err
	}

	if cfg.ProviderURL == "" && cfg.Keywords == "" && cfg.Reports == "" && cfg.Links == "" {
		return fmt.Errorf("either --provider-url or fixture paths must be provided (via flag or config)")
	}

	opts := pipeline.RunOptions{
		Keywords: cfg.Keywords,
		Reports:  cfg.Reports,
		Links:    cfg.Links,
		Domain:   cfg.Domain,
		Viewport: types.Viewport{Width: cfg.ViewportWidth, Height: cfg.ViewportHeight},
	}

	if cfg.ProviderURL != "" {
		client, err := provider.NewHTTPClient(types.ProviderConfig{
			BaseURL: cfg.ProviderURL,
			APIKey:  cfg.APIKey,
			SiteID:  cfg.SiteID,
		})
		if err != nil {
			return fmt.Errorf("failed to create provider client: %w", err)
		}
		opts.Provider = client
	}

	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Printf("[%s] %s\n", event.Step, event.Message)
		}
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintClusters(result.Clusters)

	if cfg.Verbose {
		for _, c := range result.Clusters {
			printer.PrintLinkSummary(result.Texts[c.Parent.ID], result.Links[c.Parent.ID])
		}
	}

	// The cache is a side store for the dashboard; failure to reach it
	// never blocks the analysis itself.
	if cfg.DatabaseURL != "" {
		reportCacheCoverage(ctx, cfg, result)
	}

	if analyzeOutput != "" {
		data, err := pipeline.MarshalResult(result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(analyzeOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Result written to %s\n", analyzeOutput)
	}

	return nil
}

// reportCacheCoverage checks how many cluster parents with a live page
// have a fresh cached page score.
func reportCacheCoverage(ctx context.Context, cfg config.Config, result *pipeline.Result) {
	store, err := cache.Connect(ctx, cfg.DatabaseURL, time.Duration(cfg.CacheTTLHours)*time.Hour)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cache unavailable: %v\n", err)
		return
	}
	defer store.Close()

	pages, cached := 0, 0
	for _, c := range result.Clusters {
		if !c.Parent.HasPage() {
			continue
		}
		pages++
		score, err := store.GetScore(ctx, c.Parent.LinkedURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache lookup failed for %s: %v\n", c.Parent.LinkedURL, err)
			continue
		}
		if score != nil {
			cached++
		}
	}
	fmt.Printf("Page score cache: %d/%d parent pages fresh\n", cached, pages)
}

// loadAnalyzeConfig loads the config file (if any), applies analyze flag
// overrides, fills env-var fallbacks, and merges defaults.
func loadAnalyzeConfig(cmd *cobra.Command, configPath string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loadedCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
	}

	// Apply CLI overrides; only override if the flag was explicitly set
	if cmd.Flags().Changed("keywords") {
		cfg.Keywords = analyzeKeywords
	}
	if cmd.Flags().Changed("reports") {
		cfg.Reports = analyzeReports
	}
	if cmd.Flags().Changed("links") {
		cfg.Links = analyzeLinks
	}
	if cmd.Flags().Changed("provider-url") {
		cfg.ProviderURL = analyzeProviderURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("site-id") {
		cfg.SiteID = analyzeSiteID
	}
	if cmd.Flags().Changed("domain") {
		cfg.Domain = analyzeDomain
	}
	if cmd.Flags().Changed("viewport-width") {
		cfg.ViewportWidth = analyzeViewportWidth
	}
	if cmd.Flags().Changed("viewport-height") {
		cfg.ViewportHeight = analyzeViewportHeight
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = analyzeDatabaseURL
	}
	if cmd.Flags().Changed("cache-ttl-hours") {
		cfg.CacheTTLHours = analyzeCacheTTLHours
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("PROVIDER_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	cfg = cfg.MergeWithDefaults(config.Config{})

	if cfg.ProviderURL != "" && (cfg.Keywords != "" || cfg.Reports != "" || cfg.Links != "") {
		return cfg, fmt.Errorf("--provider-url and fixture paths are mutually exclusive; provide only one source")
	}

	return cfg, nil
}
