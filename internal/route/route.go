package route

import (
	"context"

	"mediaapi/internal/model"
)

// SalesChannelContext identifies the storefront a store-api call runs against.
type SalesChannelContext struct {
	SalesChannelID string
	LanguageID     string
	Token          string
}

// LanguageRequest carries the criteria of a language listing.
type LanguageRequest struct {
	Page   int
	Limit  int
	Filter string
}

// LanguageRouteResponse is a page of languages.
type LanguageRouteResponse struct {
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	Elements []model.Language `json:"elements"`
}

// LanguageRoute answers a language listing for a sales channel.
type LanguageRoute interface {
	Load(ctx context.Context, req LanguageRequest, sc SalesChannelContext) (*LanguageRouteResponse, error)
}
