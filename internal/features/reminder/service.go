package reminder

import (
	"context"
	"fmt"

	"go-permit/internal/config"
	"go-permit/internal/features/notification"
	"go-permit/internal/features/permit"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderService periodically re-notifies current approvers of permits
// still waiting on a decision. It never transitions permit state.
type ReminderService interface {
	InitializeScheduler(ctx context.Context) error
	StopScheduler() error
	RunSweep(ctx context.Context) (int, error)
}

type ReminderServiceImpl struct {
	PermitService       permit.PermitService
	NotificationService notification.NotificationService
	Config              *config.Config
	Logger              *zap.Logger

	scheduler *cron.Cron
}

func NewReminderService(permitService permit.PermitService, notificationService notification.NotificationService, cfg *config.Config, logger *zap.Logger) ReminderService {
	return &ReminderServiceImpl{
		PermitService:       permitService,
		NotificationService: notificationService,
		Config:              cfg,
		Logger:              logger,
	}
}

func (s *ReminderServiceImpl) InitializeScheduler(ctx context.Context) error {
	if _, err := cron.ParseStandard(s.Config.ReminderSchedule); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.Config.ReminderSchedule, err)
	}

	s.scheduler = cron.New()
	_, err := s.scheduler.AddFunc(s.Config.ReminderSchedule, func() {
		count, err := s.RunSweep(context.Background())
		if err != nil {
			s.Logger.Error("reminder sweep failed", zap.Error(err))
			return
		}
		s.Logger.Info("reminder sweep done", zap.Int("reminded", count))
	})
	if err != nil {
		return err
	}

	s.scheduler.Start()
	return nil
}

func (s *ReminderServiceImpl) StopScheduler() error {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	return nil
}

// RunSweep reminds the current approver of every non-terminal permit
func (s *ReminderServiceImpl) RunSweep(ctx context.Context) (int, error) {
	count := 0
	for _, status := range []permit.PermitStatus{permit.PermitStatusPending, permit.PermitStatusInProgress} {
		permits, err := s.PermitService.ListPermits(ctx, permit.ListFilter{Status: status})
		if err != nil {
			return count, err
		}
		for i := range permits {
			s.NotificationService.RemindCurrentApprover(ctx, &permits[i])
			count++
		}
	}
	return count, nil
}
