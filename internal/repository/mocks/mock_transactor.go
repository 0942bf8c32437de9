package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTransactor records WithinTx and runs fn with the same ctx, so repository
// mocks observe the calls made inside the transaction.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
