package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/keyword-atlas/internal/config"
	"github.com/jonathan/keyword-atlas/internal/movement"
	"github.com/jonathan/keyword-atlas/internal/observability"
	"github.com/jonathan/keyword-atlas/internal/pipeline"
	"github.com/jonathan/keyword-atlas/internal/provider"
	"github.com/jonathan/keyword-atlas/internal/resolver"
	"github.com/jonathan/keyword-atlas/internal/serpmatch"
	"github.com/jonathan/keyword-atlas/internal/types"
	"github.com/spf13/cobra"
)

var movementCommand = &cobra.Command{
	Use:   "movement",
	Short: "Report ranking movement per keyword",
	Long: `Compares the earliest and most recent ranking reports and prints the per-engine position change for each keyword, including keywords that only appear in the reports.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runMovementCmd,
}

var (
	movementConfigPath  string
	movementKeywords    string
	movementReports     string
	movementProviderURL string
	movementAPIKey      string
	movementSiteID      string
	movementFilter      string
)

func init() {
	movementCommand.Flags().StringVar(&movementConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	movementCommand.Flags().StringVarP(&movementKeywords, "keywords", "k", "", "Path to keyword list JSON fixture (mutually exclusive with --provider-url)")
	movementCommand.Flags().StringVarP(&movementReports, "reports", "r", "", "Path to SERP report list JSON fixture")
	movementCommand.Flags().StringVar(&movementProviderURL, "provider-url", "", "Provider API base URL (mutually exclusive with fixture paths)")
	movementCommand.Flags().StringVar(&movementAPIKey, "api-key", "", "Provider API key (optional, defaults to PROVIDER_API_KEY env var)")
	movementCommand.Flags().StringVar(&movementSiteID, "site-id", "", "Provider site identifier")
	movementCommand.Flags().StringVarP(&movementFilter, "keyword", "w", "", "Only show keywords whose text contains this substring")

	rootCmd.AddCommand(movementCommand)
}

func runMovementCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if movementConfigPath != "" {
		loadedCfg, err := config.LoadConfig(movementConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	if cmd.Flags().Changed("keywords") {
		cfg.Keywords = movementKeywords
	}
	if cmd.Flags().Changed("reports") {
		cfg.Reports = movementReports
	}
	if cmd.Flags().Changed("provider-url") {
		cfg.ProviderURL = movementProviderURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = movementAPIKey
	}
	if cmd.Flags().Changed("site-id") {
		cfg.SiteID = movementSiteID
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("PROVIDER_API_KEY")
	}

	if cfg.ProviderURL == "" && cfg.Keywords == "" && cfg.Reports == "" {
		return fmt.Errorf("either --provider-url or fixture paths must be provided (via flag or config)")
	}

	opts := pipeline.RunOptions{
		Keywords: cfg.Keywords,
		Reports:  cfg.Reports,
		Links:    cfg.Links,
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

	dataset, err := pipeline.LoadDataset(ctx, opts)
	if err != nil {
		return err
	}

	keywords := pipeline.Enrich(dataset.Keywords, dataset.Reports)

	baseline := dataset.Reports.Baseline()
	latest := dataset.Reports.Latest()
	var baselineMatcher, latestMatcher *serpmatch.Matcher
	if baseline != nil {
		baselineMatcher = serpmatch.NewMatcher(baseline.Rows)
	}
	if latest != nil {
		latestMatcher = serpmatch.NewMatcher(latest.Rows)
	}

	printer := observability.NewPrinter(os.Stdout)
	shown := 0
	for _, k := range keywords {
		text := resolver.DisplayText(k)
		if movementFilter != "" && !strings.Contains(strings.ToLower(text), strings.ToLower(movementFilter)) {
			continue
		}

		var baselineRow, latestRow *types.SerpSnapshotRow
		if baselineMatcher != nil {
			baselineRow = baselineMatcher.Find(text)
		}
		if latestMatcher != nil {
			latestRow = latestMatcher.Find(text)
		}

		results := movement.ForEngines(baselineRow, latestRow, types.Engines)
		changes := make(map[types.Engine]movement.Change, len(types.Engines))
		for _, engine := range types.Engines {
			changes[engine] = movement.Classify(enginePosition(baselineRow, engine), enginePosition(latestRow, engine))
		}

		printer.PrintMovement(text, results, changes)
		shown++
	}

	if shown == 0 && movementFilter != "" {
		return fmt.Errorf("no keyword matched filter %q", movementFilter)
	}
	return nil
}

func enginePosition(row *types.SerpSnapshotRow, engine types.Engine) *int {
	if row == nil {
		return nil
	}
	return row.Position(engine)
}
