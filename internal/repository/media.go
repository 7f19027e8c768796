package repository

import (
	"context"

	"mediaapi/internal/model"
)

// MediaRepository defines data access for media metadata using SQL queries only.
type MediaRepository interface {
	// Create inserts a new media record and returns it as stored.
	Create(ctx context.Context, m *model.Media) (*model.Media, error)

	// FindByID returns a media record by its ID.
	FindByID(ctx context.Context, id string) (*model.Media, error)

	// List returns a paginated list of media and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Media], error)

	// Delete removes a media record by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
