package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
)

// NotificationService is the in-app notification dispatcher. Everything here
// is best-effort; callers log failures and move on.
type NotificationService struct {
	Store  NotificationStore
	Users  UserStore
	Logger *slog.Logger
}

// SendReservationConfirmation writes the customer-facing confirmation for
// the booking owner. Email delivery is out of scope; the in-app record is
// the confirmation.
func (s NotificationService) SendReservationConfirmation(ctx context.Context, r *domain.Reservation) error {
	_, err := s.Store.Create(ctx, domain.Notification{
		UserID:    r.UserID,
		Title:     "Reservation received",
		Message:   fmt.Sprintf("Your reservation for %d on %s at %s is pending confirmation.", r.PartySize, r.Date.Format("2006-01-02"), r.StartTime),
		Type:      domain.NotificationInfo,
		Reference: reservationRef(r.ID),
	})
	return err
}

// NotifyManagers fans out to every manager, skipping managers who still
// have an unread notification for this reservation.
func (s NotificationService) NotifyManagers(ctx context.Context, r *domain.Reservation) error {
	managers, err := s.Users.ListByRole(ctx, domain.RoleManager)
	if err != nil {
		return err
	}
	ref := reservationRef(r.ID)
	for _, m := range managers {
		unread, err := s.Store.HasUnreadForReference(ctx, m.ID, ref)
		if err != nil {
			s.log().Warn("notification dedupe check failed", "user", m.ID, "err", err)
			continue
		}
		if unread {
			continue
		}
		_, err = s.Store.Create(ctx, domain.Notification{
			UserID:    m.ID,
			Title:     "New reservation",
			Message:   fmt.Sprintf("%s booked table %d for %d on %s %s-%s.", r.CustomerName, r.TableID, r.PartySize, r.Date.Format("2006-01-02"), r.StartTime, r.EndTime),
			Type:      domain.NotificationInfo,
			Reference: ref,
		})
		if err != nil {
			s.log().Warn("manager notification write failed", "user", m.ID, "err", err)
		}
	}
	return nil
}

func (s NotificationService) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func reservationRef(id int64) string {
	return fmt.Sprintf("reservation:%d", id)
}
