package notification

import (
	"context"
	"fmt"

	"carrental/internal/domain"
	"carrental/internal/events"

	"github.com/rs/zerolog"
)

type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

// Pusher delivers a payload to a user's live connection, if any.
type Pusher interface {
	SendToUser(userID int64, message any) bool
}

// PushMessage is the websocket frame sent for every new notification.
type PushMessage struct {
	Type         string               `json:"type"`
	Notification *domain.Notification `json:"notification"`
}

type template struct {
	kind  domain.NotificationType
	title string
}

var templates = map[domain.Action]template{
	domain.ActionApprove:  {domain.NotifReservationApproved, "Reservation confirmed"},
	domain.ActionReject:   {domain.NotifReservationRejected, "Reservation rejected"},
	domain.ActionStart:    {domain.NotifReservationStarted, "Rental started"},
	domain.ActionCancel:   {domain.NotifReservationCancelled, "Reservation cancelled"},
	domain.ActionComplete: {domain.NotifReservationCompleted, "Rental completed"},
	domain.ActionExtend:   {domain.NotifReservationExtended, "Reservation extended"},
}

type Service struct {
	repo   Repository
	pusher Pusher
	log    zerolog.Logger
}

func NewService(repo Repository, pusher Pusher, log zerolog.Logger) *Service {
	return &Service{repo: repo, pusher: pusher, log: log}
}

// HandleEvent stores a notification for the reservation owner and pushes it
// to their websocket. Actions without a template are ignored.
func (s *Service) HandleEvent(ctx context.Context, e events.Event) error {
	tpl, ok := templates[e.Action]
	if !ok {
		return nil
	}

	r := e.Reservation
	rid := r.ID
	n := &domain.Notification{
		UserID:        r.UserID,
		ReservationID: &rid,
		Type:          tpl.kind,
		Title:         tpl.title,
		Message:       message(e),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	if s.pusher != nil && s.pusher.SendToUser(r.UserID, PushMessage{Type: "notification", Notification: n}) {
		s.log.Debug().Int64("user_id", r.UserID).Int64("notification_id", n.ID).Msg("notification pushed")
	}
	return nil
}

func message(e events.Event) string {
	r := e.Reservation
	dates := fmt.Sprintf("%s to %s", r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"))
	switch e.Action {
	case domain.ActionExtend:
		if e.Extension != nil {
			return fmt.Sprintf("Reservation %s now ends on %s (extra %.2f).",
				r.TicketID, r.EndDate.Format("2006-01-02"), e.Extension.AdditionalCost)
		}
		return fmt.Sprintf("Reservation %s now ends on %s.", r.TicketID, r.EndDate.Format("2006-01-02"))
	default:
		return fmt.Sprintf("Reservation %s (%s) is now %s.", r.TicketID, dates, r.Status)
	}
}

func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, int64, error) {
	list, err := s.repo.ListByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}
