package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restoapi/internal/model"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetOrCreate(ctx context.Context, userID string) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartRepository) SaveItems(ctx context.Context, cartID string, items []model.CartItem) (*model.Cart, error) {
	args := m.Called(ctx, cartID, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}
