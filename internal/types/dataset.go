package types

import (
	"github.com/go-playground/validator/v10"
)

// Dataset is one complete load of provider data. The whole pipeline
// reruns over a fresh Dataset whenever any of the lists changes; there is
// no incremental update path.
type Dataset struct {
	Keywords []KeywordRecord `json:"keywords"`
	Reports  SerpHistory     `json:"reports"`
	LinksIn  []LinkRecord    `json:"linksIn"`
	LinksOut []LinkRecord    `json:"linksOut"`
}

// ProviderConfig identifies the provider account the client fetches from.
type ProviderConfig struct {
	BaseURL string `json:"base_url" validate:"required,url"`
	APIKey  string `json:"api_key" validate:"required"`
	SiteID  string `json:"site_id,omitempty"`
}

// Validate validates the ProviderConfig using the validator.
func (c *ProviderConfig) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
