package repository

import (
	"context"

	"mediaapi/internal/model"
)

// LanguageFilter narrows a language listing to one sales channel.
// Term, when set, matches the beginning of the name or locale case-insensitively.
type LanguageFilter struct {
	SalesChannelID string
	Term           string
}

// LanguageRepository reads languages assigned to sales channels.
type LanguageRepository interface {
	ListBySalesChannel(ctx context.Context, f LanguageFilter, pq PageQuery) (*PageResult[model.Language], error)
}

// SalesChannelRepository resolves store-api credentials.
type SalesChannelRepository interface {
	// FindByAccessKey returns sql.ErrNoRows when no sales channel uses key.
	FindByAccessKey(ctx context.Context, key string) (*model.SalesChannel, error)
}
