package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-tracker/backend/internal/model"
	"github.com/pageza/recipe-tracker/backend/internal/storage"
)

// MockTagService is a mock implementation of the tag service
type MockTagService struct {
	mock.Mock
}

func (m *MockTagService) SearchTags(ctx context.Context, term string) ([]model.Tag, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

// MockEquipmentService is a mock implementation of the equipment service
type MockEquipmentService struct {
	mock.Mock
}

func (m *MockEquipmentService) SearchEquipment(ctx context.Context, term string) ([]model.Equipment, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Equipment), args.Error(1)
}

// MockImagePresigner is a mock implementation of storage.ImagePresigner
type MockImagePresigner struct {
	mock.Mock
}

func (m *MockImagePresigner) PresignUpload(ctx context.Context, contentType string) (*storage.PresignedUpload, error) {
	args := m.Called(ctx, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PresignedUpload), args.Error(1)
}
