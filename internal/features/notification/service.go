package notification

import (
	"context"
	"fmt"
	"time"

	"go-permit/internal/features/permit"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// NotificationService implements the permit feature's Notifier port plus the
// inbox operations. All channels are best-effort: a failed email or socket
// write never fails the decision that triggered it.
type NotificationService interface {
	NotifySubmitted(ctx context.Context, p *permit.Permit)
	NotifyDecision(ctx context.Context, p *permit.Permit, next *permit.Approver)
	RemindCurrentApprover(ctx context.Context, p *permit.Permit)

	ListForRecipient(ctx context.Context, recipient string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id string, recipient string) error
}

type NotificationServiceImpl struct {
	Repo   NotificationRepository
	Mailer *Mailer
	Hub    *Hub
	Logger *zap.Logger
}

func NewNotificationService(repo NotificationRepository, mailer *Mailer, hub *Hub, logger *zap.Logger) NotificationService {
	return &NotificationServiceImpl{
		Repo:   repo,
		Mailer: mailer,
		Hub:    hub,
		Logger: logger,
	}
}

func (s *NotificationServiceImpl) NotifySubmitted(ctx context.Context, p *permit.Permit) {
	first := p.CurrentApprover()
	if first == nil {
		return
	}
	s.deliver(ctx, first.Email, p, NotificationTypeTurn,
		fmt.Sprintf("Permit %s awaits your approval", p.ID),
		fmt.Sprintf("%s submitted %q (%s). You are the first approver.", p.Requester.Name, p.Title, p.ID))
}

func (s *NotificationServiceImpl) NotifyDecision(ctx context.Context, p *permit.Permit, next *permit.Approver) {
	switch {
	case next != nil:
		s.deliver(ctx, next.Email, p, NotificationTypeTurn,
			fmt.Sprintf("Permit %s awaits your approval", p.ID),
			fmt.Sprintf("The previous step of %q (%s) was approved. You are next.", p.Title, p.ID))
	case p.Status == permit.PermitStatusApproved:
		s.deliver(ctx, p.Requester.Email, p, NotificationTypeApproved,
			fmt.Sprintf("Permit %s approved", p.ID),
			fmt.Sprintf("All approvers signed off on %q.", p.Title))
	case p.Status == permit.PermitStatusRejected:
		reason := ""
		if idx := p.CurrentApproverIndex; idx >= 0 && idx < len(p.Approvers) {
			reason = p.Approvers[idx].Comments
		}
		s.deliver(ctx, p.Requester.Email, p, NotificationTypeRejected,
			fmt.Sprintf("Permit %s rejected", p.ID),
			fmt.Sprintf("%q was rejected: %s", p.Title, reason))
	}
}

func (s *NotificationServiceImpl) RemindCurrentApprover(ctx context.Context, p *permit.Permit) {
	current := p.CurrentApprover()
	if current == nil {
		return
	}
	s.deliver(ctx, current.Email, p, NotificationTypeReminder,
		fmt.Sprintf("Reminder: permit %s still awaits your decision", p.ID),
		fmt.Sprintf("%q (%s) has been waiting on you since %s.", p.Title, p.ID, p.UpdatedAt.Format("2006-01-02")))
}

func (s *NotificationServiceImpl) deliver(ctx context.Context, recipient string, p *permit.Permit, kind NotificationType, title, message string) {
	n := &Notification{
		ID:        primitive.NewObjectID(),
		Recipient: recipient,
		PermitID:  p.ID,
		Title:     title,
		Message:   message,
		Type:      kind,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		s.Logger.Warn("failed to persist notification",
			zap.String("permit_id", p.ID), zap.Error(err))
	}

	if err := s.Mailer.Send([]string{recipient}, title, message); err != nil {
		s.Logger.Debug("mail delivery skipped",
			zap.String("permit_id", p.ID), zap.Error(err))
	}

	s.Hub.Broadcast(PermitEvent{
		PermitID: p.ID,
		Status:   string(p.Status),
		Type:     string(kind),
		Message:  title,
	})
}

func (s *NotificationServiceImpl) ListForRecipient(ctx context.Context, recipient string, unreadOnly bool) ([]Notification, error) {
	return s.Repo.ListForRecipient(ctx, recipient, unreadOnly)
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id string, recipient string) error {
	return s.Repo.MarkRead(ctx, id, recipient)
}
