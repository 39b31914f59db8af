package service

import (
	"context"

	"catalog/relations/internal/domain"
	"catalog/relations/internal/domain/task"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

type mockResolver struct{ mock.Mock }

func (m *mockResolver) IsValidID(ctx context.Context, id domain.ASIN) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockResolver) ResolveFamily(ctx context.Context, seed domain.ASIN) (domain.Family, error) {
	args := m.Called(ctx, seed)
	return args.Get(0).(domain.Family), args.Error(1)
}

func (m *mockResolver) ExtractAttributes(ctx context.Context, id domain.ASIN) (domain.ItemAttributes, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ItemAttributes), args.Error(1)
}

func (m *mockResolver) ExtractImages(ctx context.Context, id domain.ASIN) (domain.ImageSet, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ImageSet), args.Error(1)
}

func (m *mockResolver) AggregateOffers(ctx context.Context, item domain.Item) ([]domain.Offer, error) {
	args := m.Called(ctx, item)
	return args.Get(0).([]domain.Offer), args.Error(1)
}

type mockQueue struct{ mock.Mock }

func (m *mockQueue) AddTask(ctx context.Context, t task.Task) (string, error) {
	args := m.Called(ctx, t)
	return args.String(0), args.Error(1)
}

func (m *mockQueue) GetTask(ctx context.Context, consumer, taskType string) (*redis.XMessage, error) {
	args := m.Called(ctx, consumer, taskType)
	msg, _ := args.Get(0).(*redis.XMessage)
	return msg, args.Error(1)
}

func (m *mockQueue) AckTask(ctx context.Context, taskType, msgID string) error {
	return m.Called(ctx, taskType, msgID).Error(0)
}

func (m *mockQueue) AutoClaim(ctx context.Context, consumer, taskType string) ([]redis.XMessage, error) {
	args := m.Called(ctx, consumer, taskType)
	messages, _ := args.Get(0).([]redis.XMessage)
	return messages, args.Error(1)
}

func (m *mockQueue) EnsureStreamsExist(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockRepository struct{ mock.Mock }

func (m *mockRepository) EnsureSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockRepository) SaveFamily(ctx context.Context, family domain.Family) error {
	return m.Called(ctx, family).Error(0)
}

func (m *mockRepository) SaveItemDetails(ctx context.Context, details *domain.ItemDetails) error {
	return m.Called(ctx, details).Error(0)
}

type mockState struct{ mock.Mock }

func (m *mockState) GetLastEnqueuedSeed(ctx context.Context, seeds []domain.ASIN) (int, error) {
	args := m.Called(ctx, seeds)
	return args.Int(0), args.Error(1)
}

func (m *mockState) SetLastEnqueuedSeed(ctx context.Context, seeds []domain.ASIN, index int) error {
	return m.Called(ctx, seeds, index).Error(0)
}
