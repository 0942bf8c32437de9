package service

import (
	"context"
	"log/slog"
	"strconv"

	"restoapi/internal/mail"
	"restoapi/internal/model"
	"restoapi/internal/repository"
)

// bookingNotifier emails customers about booking status changes. Delivery
// problems are logged and never returned to the caller.
type bookingNotifier struct {
	mailer mail.Mailer
	tables repository.TableRepository
	log    *slog.Logger
}

func (n *bookingNotifier) notify(ctx context.Context, b model.Booking) {
	if b.CustomerEmail == "" {
		return
	}

	info := mail.BookingInfo{
		CustomerName: b.CustomerName,
		Date:         b.Date,
		Time:         b.Time,
		GuestCount:   b.PartySize(),
	}
	if b.TableID != nil {
		if t, err := n.tables.FindByID(ctx, *b.TableID); err == nil {
			info.TableNumber = strconv.Itoa(t.TableNumber)
		}
	}

	msg, ok, err := mail.BookingMessage(b.CustomerEmail, b.Status, info)
	if err != nil {
		n.log.Error("booking_email_render_failed", "booking_id", b.ID, "status", b.Status, "error", err.Error())
		return
	}
	if !ok {
		return
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		n.log.Warn("booking_email_failed", "booking_id", b.ID, "status", b.Status, "error", err.Error())
		return
	}
	n.log.Info("booking_email_sent", "booking_id", b.ID, "status", b.Status)
}
