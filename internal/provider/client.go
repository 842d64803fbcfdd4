// Package provider fetches keyword, ranking and link data from the
// marketing content provider's REST API. The rest of the system consumes
// the Client interface only; network and auth concerns stop here.
package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/keyword-atlas/internal/schemas"
	"github.com/jonathan/keyword-atlas/internal/types"
)

const defaultTimeout = 30 * time.Second

// maxResponseBytes caps how much of a provider response is read.
const maxResponseBytes = 16 << 20

// Client is the provider-facing interface the pipeline consumes.
type Client interface {
	FetchKeywords(ctx context.Context) ([]types.KeywordRecord, error)
	FetchSerpHistory(ctx context.Context) (types.SerpHistory, error)
	FetchLinks(ctx context.Context) (inbound, outbound []types.LinkRecord, err error)
	FetchDataset(ctx context.Context) (*types.Dataset, error)
}

// HTTPClient is the default Client over the provider's REST API.
type HTTPClient struct {
	config types.ProviderConfig
	http   *http.Client

	// validate toggles JSON Schema validation of raw payloads before
	// decoding. Disabled automatically when the schema files are not
	// found on disk.
	validate bool
}

// NewHTTPClient builds a client for the given provider account.
func NewHTTPClient(config types.ProviderConfig) (*HTTPClient, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid provider config: %w", err)
	}
	return &HTTPClient{
		config:   config,
		http:     &http.Client{Timeout: defaultTimeout},
		validate: schemas.Available(),
	}, nil
}

// FetchKeywords retrieves the tracked keyword list.
func (c *HTTPClient) FetchKeywords(ctx context.Context) ([]types.KeywordRecord, error) {
	data, err := c.get(ctx, "/v1/keywords")
	if err != nil {
		return nil, err
	}
	if c.validate {
		if err := schemas.ValidateKeywordList(data); err != nil {
			return nil, &DecodeError{Resource: "keyword list", Message: "schema validation failed", Cause: err}
		}
	}
	return DecodeKeywords(data)
}

// FetchSerpHistory retrieves all ranking reports for the site, ordered
// by capture time.
func (c *HTTPClient) FetchSerpHistory(ctx context.Context) (types.SerpHistory, error) {
	data, err := c.get(ctx, "/v1/serp-reports")
	if err != nil {
		return nil, err
	}
	if c.validate {
		if err := schemas.ValidateSerpReports(data); err != nil {
			return nil, &DecodeError{Resource: "serp report", Message: "schema validation failed", Cause: err}
		}
	}
	return DecodeSerpHistory(data)
}

// FetchLinks retrieves the link report split by direction.
func (c *HTTPClient) FetchLinks(ctx context.Context) ([]types.LinkRecord, []types.LinkRecord, error) {
	data, err := c.get(ctx, "/v1/links")
	if err != nil {
		return nil, nil, err
	}
	if c.validate {
		if err := schemas.ValidateLinkReport(data); err != nil {
			return nil, nil, &DecodeError{Resource: "link report", Message: "schema validation failed", Cause: err}
		}
	}
	return DecodeLinks(data)
}

// FetchDataset fetches all three lists concurrently and assembles one
// Dataset.
func (c *HTTPClient) FetchDataset(ctx context.Context) (*types.Dataset, error) {
	var dataset types.Dataset

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		keywords, err := c.FetchKeywords(gCtx)
		if err != nil {
			return fmt.Errorf("fetching keywords: %w", err)
		}
		dataset.Keywords = keywords
		return nil
	})

	g.Go(func() error {
		history, err := c.FetchSerpHistory(gCtx)
		if err != nil {
			return fmt.Errorf("fetching serp reports: %w", err)
		}
		dataset.Reports = history
		return nil
	})

	g.Go(func() error {
		inbound, outbound, err := c.FetchLinks(gCtx)
		if err != nil {
			return fmt.Errorf("fetching links: %w", err)
		}
		dataset.LinksIn = inbound
		dataset.LinksOut = outbound
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dataset, nil
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	url := c.config.BaseURL + path
	if c.config.SiteID != "" {
		url += "?site_id=" + c.config.SiteID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RequestError{URL: url, Message: "building request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{URL: url, Message: "sending request", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{URL: url, StatusCode: resp.StatusCode, Message: "unexpected status"}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &RequestError{URL: url, Message: "reading response", Cause: err}
	}
	return data, nil
}
