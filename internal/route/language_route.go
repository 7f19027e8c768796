package route

import (
	"context"
	"errors"

	"mediaapi/internal/repository"
)

const (
	DefaultLanguageLimit = 100
	MaxLanguageLimit     = 500
)

var ErrSalesChannelRequired = errors.New("sales channel is required")

type languageRoute struct {
	repo repository.LanguageRepository
}

// NewLanguageRoute returns the database-backed LanguageRoute.
func NewLanguageRoute(repo repository.LanguageRepository) LanguageRoute {
	return &languageRoute{repo: repo}
}

func (r *languageRoute) Load(ctx context.Context, req LanguageRequest, sc SalesChannelContext) (*LanguageRouteResponse, error) {
	if sc.SalesChannelID == "" {
		return nil, ErrSalesChannelRequired
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLanguageLimit
	}
	if limit > MaxLanguageLimit {
		limit = MaxLanguageLimit
	}

	res, err := r.repo.ListBySalesChannel(ctx,
		repository.LanguageFilter{SalesChannelID: sc.SalesChannelID, Term: req.Filter},
		repository.PageQuery{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	return &LanguageRouteResponse{
		Total:    res.Total,
		Page:     page,
		Limit:    limit,
		Elements: res.Items,
	}, nil
}
