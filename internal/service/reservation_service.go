package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
)

// ReservationService computes table availability and drives the reservation
// lifecycle.
type ReservationService struct {
	Tables       TableStore
	Reservations ReservationStore
	Notifier     Notifier
	Audit        AuditSink
	Logger       *slog.Logger
	// NotifyAsync dispatches notifications on a separate goroutine so the
	// caller never waits on them. Tests run synchronous.
	NotifyAsync bool
}

type CreateReservationInput struct {
	TableID         int64
	PartySize       int
	Date            time.Time
	StartTime       string
	EndTime         string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	SpecialRequests string
	Occasion        domain.Occasion
}

// GetAvailableTables returns every table with enough capacity and no
// reservation overlapping the requested window on that date. Overlap is
// half-open: a reservation ending exactly when the request starts does not
// conflict.
func (s ReservationService) GetAvailableTables(ctx context.Context, partySize int, date time.Time, startTime, endTime string) ([]domain.Table, error) {
	if partySize < 1 {
		return nil, domain.BadRequest("party size must be at least 1")
	}
	reqStart, reqEnd, err := parseWindow(startTime, endTime)
	if err != nil {
		return nil, err
	}

	candidates, err := s.Tables.ListBookable(ctx, partySize)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.NotFoundf("no tables with capacity for %d guests", partySize)
	}

	existing, err := s.Reservations.ListActiveForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	booked := make(map[int64]bool)
	for _, r := range existing {
		if booked[r.TableID] {
			continue
		}
		rs, re, err := parseWindow(r.StartTime, r.EndTime)
		if err != nil {
			continue // malformed stored window, never blocks a table
		}
		if rs < reqEnd && re > reqStart {
			booked[r.TableID] = true
		}
	}

	free := make([]domain.Table, 0, len(candidates))
	for _, t := range candidates {
		if !booked[t.ID] {
			free = append(free, t)
		}
	}
	if len(free) == 0 {
		return nil, domain.NotFound("no tables available for the requested time")
	}
	return free, nil
}

// CreateReservation validates the request, re-checks availability to close
// the gap between the availability screen and booking, and persists a
// pending reservation. Notifications are best-effort and never fail the
// booking.
//
// The availability re-check and the insert are not atomic; two bookings
// racing for the last slot can both pass the check. Accepted for this
// scale.
func (s ReservationService) CreateReservation(ctx context.Context, in CreateReservationInput, actor domain.Principal) (*domain.Reservation, error) {
	if err := validateReservationInput(in); err != nil {
		return nil, err
	}

	table, err := s.Tables.GetByID(ctx, in.TableID)
	if err != nil {
		return nil, err
	}
	if table.Capacity < in.PartySize {
		return nil, domain.BadRequestf("table %d seats %d, party of %d requested", table.TableNumber, table.Capacity, in.PartySize)
	}

	free, err := s.GetAvailableTables(ctx, in.PartySize, in.Date, in.StartTime, in.EndTime)
	if err != nil {
		if domain.IsCode(err, domain.CodeNotFound) {
			return nil, domain.Conflict("table not available at requested time")
		}
		return nil, err
	}
	available := false
	for _, t := range free {
		if t.ID == in.TableID {
			available = true
			break
		}
	}
	if !available {
		return nil, domain.Conflict("table not available at requested time")
	}

	start, end, _ := parseWindow(in.StartTime, in.EndTime)
	reservation := &domain.Reservation{
		UserID:          actor.ID,
		TableID:         in.TableID,
		PartySize:       in.PartySize,
		Date:            dayOf(in.Date),
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		DurationHours:   float64(end-start) / 60,
		Status:          domain.ReservationPending,
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		SpecialRequests: in.SpecialRequests,
		Occasion:        in.Occasion,
		CreatedBy:       actor.ID,
	}
	created, err := s.Reservations.Create(ctx, reservation)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, actor, "reservation.create",
		fmt.Sprintf("reservation for table %d on %s %s-%s", in.TableID, created.Date.Format("2006-01-02"), in.StartTime, in.EndTime),
		created.ID)

	if s.NotifyAsync {
		go s.dispatchNotifications(context.WithoutCancel(ctx), created)
	} else {
		s.dispatchNotifications(ctx, created)
	}

	return created, nil
}

func (s ReservationService) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.Reservations.GetByID(ctx, id)
}

// UpdateReservationStatus sets any of the five statuses. Leaving a terminal
// status (Cancelled, Completed) requires the force override.
func (s ReservationService) UpdateReservationStatus(ctx context.Context, id int64, status domain.ReservationStatus, force bool, actor domain.Principal) (*domain.Reservation, error) {
	if err := RequireRole(actor, domain.RoleAdmin, domain.RoleManager); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.BadRequestf("invalid reservation status %q", status)
	}

	reservation, err := s.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.Status.Terminal() && reservation.Status != status && !force {
		return nil, domain.Conflict("reservation is " + strings.ToLower(string(reservation.Status)))
	}

	if err := s.Reservations.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	reservation.Status = status

	s.audit(ctx, actor, "reservation.status",
		fmt.Sprintf("reservation %d set to %s", id, status), id)
	return reservation, nil
}

// CancelReservation is allowed for the booking owner, Admins and Managers.
// Cancelling an already-cancelled reservation is rejected, not absorbed;
// callers must handle it.
func (s ReservationService) CancelReservation(ctx context.Context, id int64, actor domain.Principal) (*domain.Reservation, error) {
	reservation, err := s.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnerOrRole(actor, reservation.UserID, domain.RoleAdmin, domain.RoleManager); err != nil {
		return nil, err
	}
	if reservation.Status == domain.ReservationCancelled {
		return nil, domain.BadRequest("reservation already cancelled")
	}

	if err := s.Reservations.UpdateStatus(ctx, id, domain.ReservationCancelled); err != nil {
		return nil, err
	}
	reservation.Status = domain.ReservationCancelled

	s.audit(ctx, actor, "reservation.cancel",
		fmt.Sprintf("reservation %d cancelled", id), id)
	return reservation, nil
}

func (s ReservationService) dispatchNotifications(ctx context.Context, r *domain.Reservation) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendReservationConfirmation(ctx, r); err != nil {
		s.log().Warn("reservation confirmation failed", "reservation", r.ID, "err", err)
	}
	if err := s.Notifier.NotifyManagers(ctx, r); err != nil {
		s.log().Warn("manager notification failed", "reservation", r.ID, "err", err)
	}
}

func (s ReservationService) audit(ctx context.Context, actor domain.Principal, action, description string, affectedID int64) {
	if s.Audit == nil {
		return
	}
	err := s.Audit.Record(ctx, domain.AuditEntry{
		Action:        action,
		Description:   description,
		Severity:      domain.SeverityInfo,
		Type:          "reservation",
		UserID:        actor.ID,
		AffectedID:    &affectedID,
		AffectedModel: "reservations",
	})
	if err != nil {
		s.log().Warn("audit write failed", "action", action, "err", err)
	}
}

func (s ReservationService) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func validateReservationInput(in CreateReservationInput) error {
	switch {
	case in.TableID == 0:
		return domain.BadRequest("tableId is required")
	case in.PartySize < 1:
		return domain.BadRequest("partySize must be at least 1")
	case in.Date.IsZero():
		return domain.BadRequest("reservationDate is required")
	case strings.TrimSpace(in.CustomerName) == "":
		return domain.BadRequest("customerName is required")
	case strings.TrimSpace(in.CustomerEmail) == "":
		return domain.BadRequest("customerEmail is required")
	}
	if in.Occasion != "" && !in.Occasion.Valid() {
		return domain.BadRequestf("invalid occasion %q", in.Occasion)
	}
	if _, _, err := parseWindow(in.StartTime, in.EndTime); err != nil {
		return err
	}
	return nil
}

// parseWindow converts an HH:MM same-day window to minutes since midnight.
func parseWindow(start, end string) (int, int, error) {
	s, err := clockMinutes(start)
	if err != nil {
		return 0, 0, domain.BadRequestf("invalid startTime %q", start)
	}
	e, err := clockMinutes(end)
	if err != nil {
		return 0, 0, domain.BadRequestf("invalid endTime %q", end)
	}
	if s >= e {
		return 0, 0, domain.BadRequest("startTime must be before endTime")
	}
	return s, e, nil
}

func clockMinutes(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
