package mocks

import (
	"context"

	"mediaapi/internal/model"
	"mediaapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockLanguageRepository struct {
	mock.Mock
}

func (m *MockLanguageRepository) ListBySalesChannel(ctx context.Context, f repository.LanguageFilter, pq repository.PageQuery) (*repository.PageResult[model.Language], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Language]), args.Error(1)
}

type MockSalesChannelRepository struct {
	mock.Mock
}

func (m *MockSalesChannelRepository) FindByAccessKey(ctx context.Context, key string) (*model.SalesChannel, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesChannel), args.Error(1)
}
