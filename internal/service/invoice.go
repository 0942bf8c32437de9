package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"restoapi/internal/invoice"
	"restoapi/internal/mail"
	"restoapi/internal/model"
	"restoapi/internal/repository"
)

type InvoiceListResult struct {
	Items      []model.Invoice `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// Rendered is an exported invoice document.
type Rendered struct {
	Filename    string
	ContentType string
	Body        []byte
}

type InvoiceService interface {
	// CreateFromOrder issues the invoice of a completed order. created is false
	// when the order already had one, which is returned unchanged.
	CreateFromOrder(ctx context.Context, caller *Caller, orderID string) (inv *model.Invoice, created bool, err error)
	Get(ctx context.Context, caller *Caller, id string) (*model.InvoiceView, error)
	ExportHTML(ctx context.Context, caller *Caller, id string) (*Rendered, error)
	ExportPDF(ctx context.Context, caller *Caller, id string) (*Rendered, error)
	// Send mails the HTML invoice to `to`, or to the caller when empty.
	Send(ctx context.Context, caller *Caller, id, to string) (*model.Invoice, error)
	List(ctx context.Context, query string, page, limit int) (*InvoiceListResult, error)
}

type invoiceService struct {
	invoices repository.InvoiceRepository
	orders   repository.OrderRepository
	renderer *invoice.Renderer
	mailer   mail.Mailer
	log      *slog.Logger
	loc      *time.Location
	now      func() time.Time
}

func NewInvoiceService(invoices repository.InvoiceRepository, orders repository.OrderRepository, renderer *invoice.Renderer, mailer mail.Mailer, log *slog.Logger, loc *time.Location) InvoiceService {
	if loc == nil {
		loc = time.UTC
	}
	return &invoiceService{
		invoices: invoices,
		orders:   orders,
		renderer: renderer,
		mailer:   mailer,
		log:      log,
		loc:      loc,
		now:      time.Now,
	}
}

// invoiceNumber formats INV-YYYYMMDD-XXXXXX with a random upper-case hex suffix.
func invoiceNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("INV-%s-%s", t.Format("20060102"), suffix)
}

func (s *invoiceService) CreateFromOrder(ctx context.Context, caller *Caller, orderID string) (*model.Invoice, bool, error) {
	if orderID == "" {
		return nil, false, ErrIDRequired
	}
	o, err := findOrder(ctx, s.orders, orderID)
	if err != nil {
		return nil, false, err
	}
	if !caller.IsStaff() && (caller == nil || o.UserID != caller.UserID) {
		return nil, false, ErrOrderNotFound
	}

	existing, err := s.invoices.FindByOrderID(ctx, o.ID)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, false, err
	}

	if o.Status != model.OrderCompleted {
		return nil, false, ErrOrderNotCompleted
	}

	now := s.now().In(s.loc)
	inv := &model.Invoice{
		OrderID:       o.ID,
		InvoiceNumber: invoiceNumber(now),
		Items:         make([]model.InvoiceItem, 0, len(o.Items)),
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		Tax:           o.Tax,
		Total:         o.Total,
		Status:        model.InvoiceIssued,
		IssuedAt:      now,
		CreatedBy:     caller.IDPtr(),
	}
	for _, it := range o.Items {
		inv.Items = append(inv.Items, model.InvoiceItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
			Total:      it.Total,
		})
	}

	out, err := s.invoices.Create(ctx, inv)
	if err != nil {
		// lost a race against a concurrent request for the same order
		if errors.Is(err, repository.ErrDuplicate) {
			existing, ferr := s.invoices.FindByOrderID(ctx, o.ID)
			if ferr != nil {
				return nil, false, ferr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	s.log.InfoContext(ctx, "invoice_issued", "invoice_id", out.ID, "order_id", o.ID, "number", out.InvoiceNumber)
	return out, true, nil
}

func (s *invoiceService) Get(ctx context.Context, caller *Caller, id string) (*model.InvoiceView, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}

	view := &model.InvoiceView{Invoice: *inv}
	o, err := s.orders.FindByID(ctx, inv.OrderID)
	switch {
	case err == nil:
		view.Order = o
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	if !caller.IsStaff() && (caller == nil || view.Order == nil || view.Order.UserID != caller.UserID) {
		return nil, ErrInvoiceNotFound
	}
	return view, nil
}

func (s *invoiceService) ExportHTML(ctx context.Context, caller *Caller, id string) (*Rendered, error) {
	view, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	body, err := s.renderer.HTML(*view)
	if err != nil {
		return nil, fmt.Errorf("render invoice html: %w", err)
	}
	return &Rendered{Filename: view.InvoiceNumber + ".html", ContentType: "text/html; charset=utf-8", Body: body}, nil
}

func (s *invoiceService) ExportPDF(ctx context.Context, caller *Caller, id string) (*Rendered, error) {
	view, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	body, err := s.renderer.PDF(*view)
	if err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return &Rendered{Filename: view.InvoiceNumber + ".pdf", ContentType: "application/pdf", Body: body}, nil
}

func (s *invoiceService) Send(ctx context.Context, caller *Caller, id, to string) (*model.Invoice, error) {
	view, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	to = strings.TrimSpace(to)
	if to == "" && caller != nil {
		to = caller.Email
	}
	if to == "" {
		return nil, ErrRecipientRequired
	}

	body, err := s.renderer.HTML(*view)
	if err != nil {
		return nil, fmt.Errorf("render invoice html: %w", err)
	}
	err = s.mailer.Send(ctx, mail.Message{
		To:      to,
		Subject: "Hóa đơn " + view.InvoiceNumber,
		Text:    "Cảm ơn quý khách! Hóa đơn " + view.InvoiceNumber + " được đính kèm trong email này.",
		HTML:    string(body),
		Attachments: []mail.Attachment{{
			Name:        view.InvoiceNumber + ".html",
			ContentType: "text/html",
			Data:        body,
		}},
	})
	if err != nil {
		s.log.ErrorContext(ctx, "invoice_mail_failed", "invoice_id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	return s.invoices.MarkSent(ctx, id, to, s.now())
}

func (s *invoiceService) List(ctx context.Context, query string, page, limit int) (*InvoiceListResult, error) {
	page, limit, offset := pageQuery(page, limit, 20)
	res, err := s.invoices.List(ctx, strings.TrimSpace(query), repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &InvoiceListResult{
		Items:      res.Items,
		Pagination: Pagination{Page: page, Limit: limit, Total: res.Total},
	}, nil
}
