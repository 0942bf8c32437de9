package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"restoapi/internal/mail"
	"restoapi/internal/model"
	"restoapi/internal/repository"
	"restoapi/internal/statemachine"
)

type BookingInput struct {
	RestaurantID  string
	TableID       string
	Date          string
	Time          string
	Adults        int
	Children      int
	Note          string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
}

type BookingListQuery struct {
	RestaurantID string
	Date         string
	Status       model.BookingStatus
	Page         int
	Limit        int
}

type BookingListResult struct {
	Items      []model.Booking `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// BookingService owns the booking lifecycle. Every write runs in one
// transaction and cascades into the table's floor status.
type BookingService interface {
	Create(ctx context.Context, caller *Caller, in BookingInput) (*model.Booking, error)
	List(ctx context.Context, q BookingListQuery) (*BookingListResult, error)
	Mine(ctx context.Context, caller *Caller) ([]model.Booking, error)
	// Get is open to staff and to the user who made the booking.
	Get(ctx context.Context, caller *Caller, id string) (*model.Booking, error)
	AssignTable(ctx context.Context, caller *Caller, id, tableID string) (*model.Booking, error)
	// UpdateStatus applies a staff transition. Confirming cancels competing pending bookings.
	UpdateStatus(ctx context.Context, caller *Caller, id string, to model.BookingStatus, note string) (*model.Booking, error)
	// Cancel is the customer's own cancellation.
	Cancel(ctx context.Context, caller *Caller, id string) (*model.Booking, error)
	History(ctx context.Context, id string) ([]model.BookingStatusChange, error)
	// SweepNoShows marks confirmed bookings whose slot started more than the grace
	// period ago as no_show and returns how many were marked.
	SweepNoShows(ctx context.Context) (int, error)
}

// BookingOptions carries the clock settings of the booking service.
type BookingOptions struct {
	Location    *time.Location
	NoShowGrace time.Duration
}

type bookingService struct {
	tx          repository.Transactor
	bookings    repository.BookingRepository
	tables      repository.TableRepository
	restaurants repository.RestaurantRepository
	blocks      repository.TableBlockRepository
	notifier    *bookingNotifier
	log         *slog.Logger
	loc         *time.Location
	grace       time.Duration
	now         func() time.Time
}

func NewBookingService(
	tx repository.Transactor,
	bookings repository.BookingRepository,
	tables repository.TableRepository,
	restaurants repository.RestaurantRepository,
	blocks repository.TableBlockRepository,
	mailer mail.Mailer,
	log *slog.Logger,
	opt BookingOptions,
) BookingService {
	if opt.Location == nil {
		opt.Location = time.UTC
	}
	return &bookingService{
		tx:          tx,
		bookings:    bookings,
		tables:      tables,
		restaurants: restaurants,
		blocks:      blocks,
		notifier:    &bookingNotifier{mailer: mailer, tables: tables, log: log},
		log:         log,
		loc:         opt.Location,
		grace:       opt.NoShowGrace,
		now:         time.Now,
	}
}

func historyActor(caller *Caller) statemachine.Actor {
	if caller.IsStaff() {
		return statemachine.ActorStaff
	}
	return statemachine.ActorCustomer
}

func (s *bookingService) find(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// checkTable verifies that tableID can seat party at the slot for restaurantID.
// excludeID skips the booking being edited.
func (s *bookingService) checkTable(ctx context.Context, tableID, restaurantID string, party int, date, tm, excludeID string) (*model.Table, error) {
	t, err := s.tables.FindByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotInRestaurant
		}
		return nil, err
	}
	if t.RestaurantID != restaurantID {
		return nil, ErrTableNotInRestaurant
	}
	if t.Status == model.TableMaintenance {
		return nil, ErrTableInMaintenance
	}
	if !t.Fits(party) {
		return nil, ErrTableTooSmall
	}
	taken, err := s.bookings.SlotTaken(ctx, tableID, date, tm, excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrTableBooked
	}
	blocked, err := s.blocks.Exists(ctx, tableID, date, tm)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrTableBlocked
	}
	return t, nil
}

func (s *bookingService) Create(ctx context.Context, caller *Caller, in BookingInput) (*model.Booking, error) {
	party := in.Adults + in.Children
	if party < 1 {
		return nil, ErrPartySize
	}
	if _, err := findRestaurant(ctx, s.restaurants, in.RestaurantID); err != nil {
		return nil, err
	}

	var created *model.Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var tableID *string
		if in.TableID != "" {
			if _, err := s.checkTable(ctx, in.TableID, in.RestaurantID, party, in.Date, in.Time, ""); err != nil {
				return err
			}
			tableID = &in.TableID
		}

		b, err := s.bookings.Create(ctx, &model.Booking{
			RestaurantID:  in.RestaurantID,
			TableID:       tableID,
			Date:          in.Date,
			Time:          in.Time,
			Adults:        in.Adults,
			Children:      in.Children,
			Note:          strings.TrimSpace(in.Note),
			CustomerName:  strings.TrimSpace(in.CustomerName),
			CustomerPhone: strings.TrimSpace(in.CustomerPhone),
			CustomerEmail: normalizeEmail(in.CustomerEmail),
			Status:        model.BookingPending,
			CreatedBy:     caller.IDPtr(),
		})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrTableBooked
			}
			return err
		}
		created = b

		return s.bookings.AddHistory(ctx, &model.BookingStatusChange{
			BookingID: b.ID,
			ToStatus:  model.BookingPending,
			ChangedBy: caller.IDPtr(),
			Actor:     string(historyActor(caller)),
		})
	})
	if err != nil {
		return nil, err
	}

	s.notifier.notify(ctx, *created)
	return created, nil
}

func (s *bookingService) List(ctx context.Context, q BookingListQuery) (*BookingListResult, error) {
	page, limit, offset := pageQuery(q.Page, q.Limit, 20)
	res, err := s.bookings.List(ctx, repository.BookingFilter{
		RestaurantID: q.RestaurantID,
		Date:         q.Date,
		Status:       q.Status,
	}, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &BookingListResult{
		Items:      res.Items,
		Pagination: Pagination{Page: page, Limit: limit, Total: res.Total},
	}, nil
}

func (s *bookingService) Mine(ctx context.Context, caller *Caller) ([]model.Booking, error) {
	if caller == nil {
		return nil, ErrForbidden
	}
	res, err := s.bookings.List(ctx, repository.BookingFilter{CreatedBy: caller.UserID}, repository.PageQuery{Limit: 100})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (s *bookingService) Get(ctx context.Context, caller *Caller, id string) (*model.Booking, error) {
	b, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsStaff() && !caller.owns(b.CreatedBy) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *bookingService) AssignTable(ctx context.Context, caller *Caller, id, tableID string) (*model.Booking, error) {
	var out *model.Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.find(ctx, id)
		if err != nil {
			return err
		}
		if b.Status != model.BookingPending && b.Status != model.BookingConfirmed {
			return ErrBookingNotEditable
		}
		if b.TableID != nil && *b.TableID == tableID {
			out = b
			return nil
		}
		if _, err := s.checkTable(ctx, tableID, b.RestaurantID, b.PartySize(), b.Date, b.Time, b.ID); err != nil {
			return err
		}

		updated, err := s.bookings.AssignTable(ctx, b.ID, tableID, caller.IDPtr())
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrTableBooked
			}
			return err
		}

		if b.Status == model.BookingConfirmed {
			if b.TableID != nil {
				if err := s.tables.CascadeStatus(ctx, *b.TableID, model.TableAvailable); err != nil {
					return err
				}
			}
			if err := s.tables.CascadeStatus(ctx, tableID, model.TableReserved); err != nil {
				return err
			}
		}
		out = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// transition moves b to status to inside the caller's transaction. It returns the
// updated booking and any pending bookings cancelled because b took their slot.
func (s *bookingService) transition(ctx context.Context, b *model.Booking, to model.BookingStatus, actor statemachine.Actor, by *string, note string) (*model.Booking, []model.Booking, error) {
	if err := statemachine.CanTransitionBooking(b.Status, to, actor); err != nil {
		return nil, nil, err
	}

	if to == model.BookingConfirmed {
		if b.TableID == nil {
			return nil, nil, ErrTableRequired
		}
		t, err := findTable(ctx, s.tables, *b.TableID)
		if err != nil {
			return nil, nil, err
		}
		if t.Status == model.TableMaintenance {
			return nil, nil, ErrTableInMaintenance
		}
		blocked, err := s.blocks.Exists(ctx, t.ID, b.Date, b.Time)
		if err != nil {
			return nil, nil, err
		}
		if blocked {
			return nil, nil, ErrTableBlocked
		}
	}

	updated, err := s.bookings.UpdateStatus(ctx, b.ID, b.Status, to, by)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, nil, ErrStatusChanged
		case errors.Is(err, repository.ErrDuplicate):
			return nil, nil, ErrTableBooked
		}
		return nil, nil, err
	}

	if err := s.bookings.AddHistory(ctx, &model.BookingStatusChange{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   to,
		ChangedBy:  by,
		Actor:      string(actor),
		Note:       note,
	}); err != nil {
		return nil, nil, err
	}

	if ts, ok := statemachine.TableStatusAfter(b.Status, to); ok && updated.TableID != nil {
		if err := s.tables.CascadeStatus(ctx, *updated.TableID, ts); err != nil {
			return nil, nil, err
		}
	}

	if to != model.BookingConfirmed {
		return updated, nil, nil
	}

	rivals, err := s.bookings.PendingForSlot(ctx, *updated.TableID, updated.Date, updated.Time, updated.ID)
	if err != nil {
		return nil, nil, err
	}
	cancelled := make([]model.Booking, 0, len(rivals))
	for _, r := range rivals {
		c, err := s.bookings.UpdateStatus(ctx, r.ID, model.BookingPending, model.BookingCancelled, nil)
		if errors.Is(err, repository.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		if err := s.bookings.AddHistory(ctx, &model.BookingStatusChange{
			BookingID:  r.ID,
			FromStatus: model.BookingPending,
			ToStatus:   model.BookingCancelled,
			Actor:      string(statemachine.ActorSystem),
			Note:       "slot confirmed for booking " + updated.ID,
		}); err != nil {
			return nil, nil, err
		}
		cancelled = append(cancelled, *c)
	}
	return updated, cancelled, nil
}

func (s *bookingService) applyTransition(ctx context.Context, id string, to model.BookingStatus, actor statemachine.Actor, caller *Caller, note string, authorize func(*model.Booking) error) (*model.Booking, error) {
	var (
		updated   *model.Booking
		cancelled []model.Booking
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.find(ctx, id)
		if err != nil {
			return err
		}
		if authorize != nil {
			if err := authorize(b); err != nil {
				return err
			}
		}
		updated, cancelled, err = s.transition(ctx, b, to, actor, caller.IDPtr(), note)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking_status_changed", "booking_id", updated.ID, "status", updated.Status, "actor", actor, "auto_cancelled", len(cancelled))
	s.notifier.notify(ctx, *updated)
	for _, c := range cancelled {
		s.notifier.notify(ctx, c)
	}
	return updated, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, caller *Caller, id string, to model.BookingStatus, note string) (*model.Booking, error) {
	return s.applyTransition(ctx, id, to, statemachine.ActorStaff, caller, strings.TrimSpace(note), nil)
}

func (s *bookingService) Cancel(ctx context.Context, caller *Caller, id string) (*model.Booking, error) {
	return s.applyTransition(ctx, id, model.BookingCancelled, statemachine.ActorCustomer, caller, "cancelled by customer", func(b *model.Booking) error {
		if !caller.owns(b.CreatedBy) {
			return ErrForbidden
		}
		return nil
	})
}

func (s *bookingService) History(ctx context.Context, id string) ([]model.BookingStatusChange, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	return s.bookings.ListHistory(ctx, id)
}

func (s *bookingService) SweepNoShows(ctx context.Context) (int, error) {
	now := s.now().In(s.loc)
	due, err := s.bookings.ConfirmedOnOrBefore(ctx, now.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, b := range due {
		start, err := b.SlotStart(s.loc)
		if err != nil {
			s.log.Warn("no_show_bad_slot", "booking_id", b.ID, "date", b.Date, "time", b.Time)
			continue
		}
		if now.Sub(start) < s.grace {
			continue
		}

		var updated *model.Booking
		err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
			var err error
			updated, _, err = s.transition(ctx, &b, model.BookingNoShow, statemachine.ActorSystem, nil, "no-show sweep")
			return err
		})
		if errors.Is(err, ErrStatusChanged) {
			continue
		}
		if err != nil {
			return marked, err
		}
		marked++
		s.notifier.notify(ctx, *updated)
	}
	return marked, nil
}
