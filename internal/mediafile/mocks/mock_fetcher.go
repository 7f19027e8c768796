package mocks

import (
	"context"
	"io"

	"mediaapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchRequestData(ctx context.Context, body io.ReadCloser, mf model.MediaFile, key string) error {
	args := m.Called(ctx, body, mf, key)
	return args.Error(0)
}

func (m *MockFetcher) FetchFileFromURL(ctx context.Context, mf model.MediaFile, rawURL, key string) (model.MediaFile, error) {
	args := m.Called(ctx, mf, rawURL, key)
	return args.Get(0).(model.MediaFile), args.Error(1)
}
