package permit

import (
	"context"
	"time"

	common_models "go-permit/internal/common/models"
	"go-permit/internal/features/audit"

	"go.uber.org/zap"
)

// Notifier is the outbound collaborator that tells the next approver (or
// the requester, once terminal) about a permit event. Implemented by the
// notification feature; wired through an adapter in main to avoid a cycle.
type Notifier interface {
	NotifySubmitted(ctx context.Context, p *Permit)
	NotifyDecision(ctx context.Context, p *Permit, next *Approver)
}

// CreatePermitInput is the submit-form payload
type CreatePermitInput struct {
	Type      PermitType             `json:"type"`
	Title     string                 `json:"title"`
	Approvers []Approver             `json:"approvers"`
	Data      map[string]interface{} `json:"data"`
}

// DecideInput carries one approver decision
type DecideInput struct {
	Decision Decision `json:"decision"`
	Comments string   `json:"comments"`
}

type PermitService interface {
	CreatePermit(ctx context.Context, input CreatePermitInput, requester Requester, actorID string) (*Permit, error)
	Decide(ctx context.Context, permitID, actorEmail string, decision Decision, comments string) (*Permit, error)
	GetPermit(ctx context.Context, id string) (*Permit, error)
	ListPermits(ctx context.Context, filter ListFilter) ([]Permit, error)
	PendingForApprover(ctx context.Context, email string) ([]Permit, error)
	Stats(ctx context.Context) (Stats, error)
}

type PermitServiceImpl struct {
	Repo         PermitRepository
	Factory      *PermitFactory
	AuditService audit.AuditService
	Notifier     Notifier
	Logger       *zap.Logger
}

func NewPermitService(repo PermitRepository, factory *PermitFactory, auditService audit.AuditService, notifier Notifier, logger *zap.Logger) PermitService {
	return &PermitServiceImpl{
		Repo:         repo,
		Factory:      factory,
		AuditService: auditService,
		Notifier:     notifier,
		Logger:       logger,
	}
}

func (s *PermitServiceImpl) CreatePermit(ctx context.Context, input CreatePermitInput, requester Requester, actorID string) (*Permit, error) {
	p, err := s.Factory.NewPermit(ctx, input.Type, input.Title, requester, input.Approvers, input.Data)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Insert(ctx, p); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogAction(ctx, common_models.AuditActionCreate, p.ID, actorID, map[string]common_models.Change{
		"status": {Old: nil, New: p.Status},
	})

	s.Notifier.NotifySubmitted(ctx, p)

	s.Logger.Info("permit created",
		zap.String("permit_id", p.ID),
		zap.String("type", string(p.Type)),
		zap.Int("approvers", len(p.Approvers)))

	return p, nil
}

func (s *PermitServiceImpl) Decide(ctx context.Context, permitID, actorEmail string, decision Decision, comments string) (*Permit, error) {
	p, err := s.Repo.GetByID(ctx, permitID)
	if err != nil {
		return nil, err
	}

	expectedVersion := p.Version
	decidedIndex := p.CurrentApproverIndex
	oldStatus := p.Status

	next, err := RecordDecision(p, actorEmail, decision, comments, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateDecision(ctx, p, expectedVersion, decidedIndex); err != nil {
		return nil, err
	}

	action := common_models.AuditActionApprove
	if decision == DecisionReject {
		action = common_models.AuditActionReject
	}
	_ = s.AuditService.LogAction(ctx, action, p.ID, actorEmail, map[string]common_models.Change{
		"status": {Old: oldStatus, New: p.Status},
		"step":   {Old: decidedIndex, New: p.CurrentApproverIndex},
	})

	s.Notifier.NotifyDecision(ctx, p, next)

	s.Logger.Info("permit decision recorded",
		zap.String("permit_id", p.ID),
		zap.String("actor", actorEmail),
		zap.String("decision", string(decision)),
		zap.String("status", string(p.Status)))

	return p, nil
}

func (s *PermitServiceImpl) GetPermit(ctx context.Context, id string) (*Permit, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *PermitServiceImpl) ListPermits(ctx context.Context, filter ListFilter) ([]Permit, error) {
	return s.Repo.List(ctx, filter)
}

func (s *PermitServiceImpl) PendingForApprover(ctx context.Context, email string) ([]Permit, error) {
	// Narrow server-side to non-terminal permits, then project
	pending, err := s.Repo.List(ctx, ListFilter{Status: PermitStatusPending})
	if err != nil {
		return nil, err
	}
	inProgress, err := s.Repo.List(ctx, ListFilter{Status: PermitStatusInProgress})
	if err != nil {
		return nil, err
	}
	return PendingForApprover(append(pending, inProgress...), email), nil
}

func (s *PermitServiceImpl) Stats(ctx context.Context) (Stats, error) {
	permits, err := s.Repo.List(ctx, ListFilter{})
	if err != nil {
		return Stats{}, err
	}
	return StatsByStatus(permits), nil
}
