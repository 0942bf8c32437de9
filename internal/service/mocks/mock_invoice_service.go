package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restoapi/internal/model"
	"restoapi/internal/service"
)

type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) CreateFromOrder(ctx context.Context, caller *service.Caller, orderID string) (*model.Invoice, bool, error) {
	args := m.Called(ctx, caller, orderID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Invoice), args.Bool(1), args.Error(2)
}

func (m *MockInvoiceService) Get(ctx context.Context, caller *service.Caller, id string) (*model.InvoiceView, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceView), args.Error(1)
}

func (m *MockInvoiceService) ExportHTML(ctx context.Context, caller *service.Caller, id string) (*service.Rendered, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Rendered), args.Error(1)
}

func (m *MockInvoiceService) ExportPDF(ctx context.Context, caller *service.Caller, id string) (*service.Rendered, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Rendered), args.Error(1)
}

func (m *MockInvoiceService) Send(ctx context.Context, caller *service.Caller, id string, to string) (*model.Invoice, error) {
	args := m.Called(ctx, caller, id, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context, query string, page int, limit int) (*service.InvoiceListResult, error) {
	args := m.Called(ctx, query, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceListResult), args.Error(1)
}
