package services

import (
	"context"

	"github.com/satyadev-truss/truss-review/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

type MockVCSClient struct {
	mock.Mock
}

func (m *MockVCSClient) GetDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	args := m.Called(ctx, owner, repo, number)
	return args.String(0), args.Error(1)
}

func (m *MockVCSClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	args := m.Called(ctx, owner, repo, number, body)
	return args.Error(0)
}

type MockRoastGenerator struct {
	mock.Mock
}

func (m *MockRoastGenerator) GenerateRoast(ctx context.Context, req models.RoastRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockRoastGenerator) GenerateGifSearchTerm(ctx context.Context, roast string) (string, error) {
	args := m.Called(ctx, roast)
	return args.String(0), args.Error(1)
}

type MockMediaSearcher struct {
	mock.Mock
}

func (m *MockMediaSearcher) SearchGif(ctx context.Context, term string) (models.Media, bool) {
	args := m.Called(ctx, term)
	return args.Get(0).(models.Media), args.Bool(1)
}
