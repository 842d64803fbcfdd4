// Package pipeline provides the high-level orchestration for one full
// analysis pass: fetch or load a dataset, derive per-keyword facts,
// build clusters, associate links, and lay out the result.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/keyword-atlas/internal/cluster"
	"github.com/jonathan/keyword-atlas/internal/layout"
	"github.com/jonathan/keyword-atlas/internal/links"
	"github.com/jonathan/keyword-atlas/internal/movement"
	"github.com/jonathan/keyword-atlas/internal/provider"
	"github.com/jonathan/keyword-atlas/internal/resolver"
	"github.com/jonathan/keyword-atlas/internal/serpmatch"
	"github.com/jonathan/keyword-atlas/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline. Exactly one
// dataset source must be set: an injected Dataset, local fixture paths,
// or a provider client.
type RunOptions struct {
	Dataset  *types.Dataset
	Keywords string // fixture path
	Reports  string // fixture path
	Links    string // fixture path
	Provider provider.Client

	Domain     string
	Viewport   types.Viewport
	OnProgress ProgressCallback
}

// Result is everything the rendering layer needs for one data load.
// Derived maps are keyed by keyword id.
type Result struct {
	Keywords  []types.KeywordRecord
	Texts     map[int]string
	Rows      map[int]*types.SerpSnapshotRow
	Movements map[int][]types.MovementResult
	Clusters  []types.KeywordCluster
	Links     map[int]links.Associated
	Nodes     []types.NodePosition
}

// Run executes one full analysis pass. The transformation itself is
// total; only dataset acquisition can fail.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	dataset, err := LoadDataset(ctx, opts)
	if err != nil {
		return nil, err
	}

	emitProgress(&opts, "dataset", fmt.Sprintf("Loaded %d keywords, %d reports, %d inbound / %d outbound links",
		len(dataset.Keywords), len(dataset.Reports), len(dataset.LinksIn), len(dataset.LinksOut)))

	keywords := Enrich(dataset.Keywords, dataset.Reports)
	emitProgress(&opts, "enrich", fmt.Sprintf("Working set is %d keywords after tracking-only synthesis", len(keywords)))

	result := &Result{
		Keywords:  keywords,
		Texts:     make(map[int]string, len(keywords)),
		Rows:      make(map[int]*types.SerpSnapshotRow, len(keywords)),
		Movements: make(map[int][]types.MovementResult, len(keywords)),
		Links:     make(map[int]links.Associated),
	}

	baseline := dataset.Reports.Baseline()
	latest := dataset.Reports.Latest()

	var baselineMatcher, latestMatcher *serpmatch.Matcher
	if baseline != nil {
		baselineMatcher = serpmatch.NewMatcher(baseline.Rows)
	}
	if latest != nil {
		latestMatcher = serpmatch.NewMatcher(latest.Rows)
	}

	for _, k := range keywords {
		text := resolver.DisplayText(k)
		result.Texts[k.ID] = text

		var baselineRow, latestRow *types.SerpSnapshotRow
		if baselineMatcher != nil {
			baselineRow = baselineMatcher.Find(text)
		}
		if latestMatcher != nil {
			latestRow = latestMatcher.Find(text)
		}

		result.Rows[k.ID] = latestRow
		result.Movements[k.ID] = movement.ForEngines(baselineRow, latestRow, types.Engines)
	}
	emitProgress(&opts, "movement", "Matched report rows and computed movement")

	result.Clusters = cluster.Build(keywords)
	emitProgress(&opts, "clusters", fmt.Sprintf("Built %d clusters", len(result.Clusters)))

	for _, c := range result.Clusters {
		result.Links[c.Parent.ID] = links.Associate(c.Parent, dataset.LinksIn, dataset.LinksOut, opts.Domain)
	}
	emitProgress(&opts, "links", "Associated links per cluster parent")

	result.Nodes = layout.Layout(result.Clusters, opts.Viewport)
	emitProgress(&opts, "layout", fmt.Sprintf("Positioned %d nodes", len(result.Nodes)))

	return result, nil
}

// Enrich appends tracking-only virtual records for latest-snapshot rows
// that no content keyword matches. Virtual records get negative ids so
// they can never collide with provider ids.
func Enrich(keywords []types.KeywordRecord, history types.SerpHistory) []types.KeywordRecord {
	latest := history.Latest()
	if latest == nil {
		return keywords
	}

	matcher := serpmatch.NewMatcher(latest.Rows)
	claimed := make(map[int]bool, len(latest.Rows))
	for _, k := range keywords {
		if idx := matcher.FindIndex(resolver.DisplayText(k)); idx >= 0 {
			claimed[idx] = true
		}
	}

	// Copy before appending: the input slice may have spare capacity and
	// the caller's backing array must stay untouched.
	enriched := make([]types.KeywordRecord, len(keywords), len(keywords)+len(latest.Rows))
	copy(enriched, keywords)
	nextID := -1
	for idx, row := range latest.Rows {
		if claimed[idx] || row.KeywordText == "" {
			continue
		}
		enriched = append(enriched, types.KeywordRecord{
			ID:           nextID,
			Keyword:      row.KeywordText,
			TrackingOnly: true,
		})
		nextID--
	}
	return enriched
}

// LoadDataset resolves the configured dataset source. Exposed so
// subcommands can inspect the raw dataset before running the pipeline.
func LoadDataset(ctx context.Context, opts RunOptions) (*types.Dataset, error) {
	switch {
	case opts.Dataset != nil:
		return opts.Dataset, nil
	case opts.Provider != nil:
		return opts.Provider.FetchDataset(ctx)
	case opts.Keywords != "" || opts.Reports != "" || opts.Links != "":
		return loadFixtures(opts.Keywords, opts.Reports, opts.Links)
	default:
		return nil, fmt.Errorf("no dataset source configured: set Dataset, Provider, or fixture paths")
	}
}

// loadFixtures reads local JSON files written in the provider's wire
// format. Any path may be empty; its list is simply absent.
func loadFixtures(keywordsPath, reportsPath, linksPath string) (*types.Dataset, error) {
	var dataset types.Dataset

	if keywordsPath != "" {
		data, err := os.ReadFile(keywordsPath)
		if err != nil {
			return nil, fmt.Errorf("reading keywords fixture: %w", err)
		}
		dataset.Keywords, err = provider.DecodeKeywords(data)
		if err != nil {
			return nil, err
		}
	}

	if reportsPath != "" {
		data, err := os.ReadFile(reportsPath)
		if err != nil {
			return nil, fmt.Errorf("reading reports fixture: %w", err)
		}
		dataset.Reports, err = provider.DecodeSerpHistory(data)
		if err != nil {
			return nil, err
		}
	}

	if linksPath != "" {
		data, err := os.ReadFile(linksPath)
		if err != nil {
			return nil, fmt.Errorf("reading links fixture: %w", err)
		}
		dataset.LinksIn, dataset.LinksOut, err = provider.DecodeLinks(data)
		if err != nil {
			return nil, err
		}
	}

	return &dataset, nil
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message})
	}
}

// MarshalResult renders a Result as indented JSON for CLI output.
func MarshalResult(result *Result) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return data, nil
}
