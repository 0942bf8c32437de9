package mocks

import (
	"github.com/stretchr/testify/mock"

	"restoapi/internal/model"
)

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(u *model.User) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}
