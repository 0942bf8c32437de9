package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"restoapi/internal/invoice"
	"restoapi/internal/logger"
	"restoapi/internal/mail"
	mailMocks "restoapi/internal/mail/mocks"
	"restoapi/internal/model"
	"restoapi/internal/repository"
	repoMocks "restoapi/internal/repository/mocks"
)

type invoiceDeps struct {
	invoices *repoMocks.MockInvoiceRepository
	orders   *repoMocks.MockOrderRepository
	mailer   *mailMocks.MockMailer
}

func newInvoiceDeps(now time.Time) (*invoiceDeps, *invoiceService) {
	d := &invoiceDeps{
		invoices: new(repoMocks.MockInvoiceRepository),
		orders:   new(repoMocks.MockOrderRepository),
		mailer:   new(mailMocks.MockMailer),
	}
	svc := NewInvoiceService(d.invoices, d.orders, invoice.NewRenderer(time.UTC), d.mailer, logger.Discard(), time.UTC).(*invoiceService)
	svc.now = func() time.Time { return now }
	return d, svc
}

var completedOrder = &model.Order{
	ID:       "o-1",
	UserID:   "user-1",
	Status:   model.OrderCompleted,
	Items:    []model.OrderItem{{MenuItemID: "m-1", Name: "Phở bò", Price: 65000, Quantity: 2, Total: 130000}},
	Subtotal: 130000,
	Discount: 10000,
	Total:    120000,
}

func TestInvoiceNumber(t *testing.T) {
	n := invoiceNumber(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^INV-20261018-[0-9A-F]{6}$`), n)
}

func TestInvoiceService_CreateFromOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		caller      *Caller
		setup       func(d *invoiceDeps)
		wantErr     error
		wantCreated bool
	}{
		{
			name:   "issues new invoice",
			caller: customer,
			setup: func(d *invoiceDeps) {
				d.orders.On("FindByID", ctx, "o-1").Return(completedOrder, nil)
				d.invoices.On("FindByOrderID", ctx, "o-1").Return(nil, sql.ErrNoRows)
				d.invoices.On("Create", ctx, mock.MatchedBy(func(inv *model.Invoice) bool {
					return inv.OrderID == "o-1" &&
						inv.Status == model.InvoiceIssued &&
						inv.Total == 120000 &&
						len(inv.Items) == 1 &&
						inv.IssuedAt.Equal(now) &&
						regexp.MustCompile(`^INV-20261018-`).MatchString(inv.InvoiceNumber)
				})).Return(&model.Invoice{ID: "inv-1"}, nil)
			},
			wantCreated: true,
		},
		{
			name:   "returns existing invoice",
			caller: staff,
			setup: func(d *invoiceDeps) {
				d.orders.On("FindByID", ctx, "o-1").Return(completedOrder, nil)
				d.invoices.On("FindByOrderID", ctx, "o-1").Return(&model.Invoice{ID: "inv-1"}, nil)
			},
		},
		{
			name:   "order not completed",
			caller: customer,
			setup: func(d *invoiceDeps) {
				d.orders.On("FindByID", ctx, "o-1").Return(&model.Order{ID: "o-1", UserID: "user-1", Status: model.OrderServed}, nil)
				d.invoices.On("FindByOrderID", ctx, "o-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrOrderNotCompleted,
		},
		{
			name:   "unknown order",
			caller: customer,
			setup: func(d *invoiceDeps) {
				d.orders.On("FindByID", ctx, "o-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrOrderNotFound,
		},
		{
			name:   "someone else's order",
			caller: &Caller{UserID: "user-2", Role: model.RoleCustomer},
			setup: func(d *invoiceDeps) {
				d.orders.On("FindByID", ctx, "o-1").Return(completedOrder, nil)
			},
			wantErr: ErrOrderNotFound,
		},
		{
			name:   "concurrent issue",
			caller: customer,
			setup: func(d *invoiceDeps) {
				d.orders.On("FindByID", ctx, "o-1").Return(completedOrder, nil)
				d.invoices.On("FindByOrderID", ctx, "o-1").Return(nil, sql.ErrNoRows).Once()
				d.invoices.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
				d.invoices.On("FindByOrderID", ctx, "o-1").Return(&model.Invoice{ID: "inv-1"}, nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, svc := newInvoiceDeps(now)
			tt.setup(d)

			inv, created, err := svc.CreateFromOrder(ctx, tt.caller, "o-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, inv)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "inv-1", inv.ID)
				assert.Equal(t, tt.wantCreated, created)
			}
			d.orders.AssertExpectations(t)
			d.invoices.AssertExpectations(t)
		})
	}
}

func TestInvoiceService_Send(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	stored := &model.Invoice{ID: "inv-1", OrderID: "o-1", InvoiceNumber: "INV-20261018-ABCDEF", Total: 120000}

	t.Run("defaults to caller email", func(t *testing.T) {
		d, svc := newInvoiceDeps(now)
		d.invoices.On("FindByID", ctx, "inv-1").Return(stored, nil)
		d.orders.On("FindByID", ctx, "o-1").Return(completedOrder, nil)
		d.mailer.On("Send", ctx, mock.MatchedBy(func(m mail.Message) bool {
			return m.To == "an@example.com" &&
				len(m.Attachments) == 1 &&
				m.Attachments[0].Name == "INV-20261018-ABCDEF.html"
		})).Return(nil)
		d.invoices.On("MarkSent", ctx, "inv-1", "an@example.com", now).Return(&model.Invoice{ID: "inv-1", Status: model.InvoiceSent}, nil)

		inv, err := svc.Send(ctx, customer, "inv-1", "")
		require.NoError(t, err)
		assert.Equal(t, model.InvoiceSent, inv.Status)
		d.mailer.AssertExpectations(t)
		d.invoices.AssertExpectations(t)
	})

	t.Run("mail failure", func(t *testing.T) {
		d, svc := newInvoiceDeps(now)
		d.invoices.On("FindByID", ctx, "inv-1").Return(stored, nil)
		d.orders.On("FindByID", ctx, "o-1").Return(completedOrder, nil)
		d.mailer.On("Send", ctx, mock.Anything).Return(errors.New("smtp down"))

		_, err := svc.Send(ctx, staff, "inv-1", "kh@example.com")
		assert.ErrorIs(t, err, ErrMailDelivery)
		d.invoices.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no recipient", func(t *testing.T) {
		d, svc := newInvoiceDeps(now)
		d.invoices.On("FindByID", ctx, "inv-1").Return(stored, nil)
		d.orders.On("FindByID", ctx, "o-1").Return(completedOrder, nil)

		_, err := svc.Send(ctx, &Caller{UserID: "staff-2", Role: model.RoleStaff}, "inv-1", " ")
		assert.ErrorIs(t, err, ErrRecipientRequired)
	})
}

func TestInvoiceService_Export(t *testing.T) {
	ctx := context.Background()
	d, svc := newInvoiceDeps(time.Now())
	d.invoices.On("FindByID", ctx, "inv-1").Return(&model.Invoice{ID: "inv-1", OrderID: "o-1", InvoiceNumber: "INV-1", IssuedAt: time.Now()}, nil)
	d.orders.On("FindByID", ctx, "o-1").Return(completedOrder, nil)
	d.invoices.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

	html, err := svc.ExportHTML(ctx, customer, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "INV-1.html", html.Filename)
	assert.Contains(t, string(html.Body), "INV-1")

	pdf, err := svc.ExportPDF(ctx, staff, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.True(t, len(pdf.Body) > 4 && string(pdf.Body[:4]) == "%PDF")

	_, err = svc.ExportHTML(ctx, &Caller{UserID: "user-2"}, "inv-1")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	_, err = svc.ExportPDF(ctx, staff, "missing")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}
