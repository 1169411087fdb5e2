package permit

import (
	"context"
	"fmt"
	"testing"

	common_models "go-permit/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockPermitRepo keeps one permit in memory and enforces the same
// version CAS contract as the Mongo implementation.
type mockPermitRepo struct {
	stored *Permit
	// when set, GetByID serves this snapshot instead of stored - lets tests
	// hand two callers the same stale view to simulate a race
	frozenRead *Permit
}

func (m *mockPermitRepo) Insert(_ context.Context, p *Permit) error {
	if m.stored != nil && m.stored.ID == p.ID {
		return ErrDuplicateID
	}
	m.stored = clonePermit(p)
	return nil
}

func (m *mockPermitRepo) GetByID(_ context.Context, id string) (*Permit, error) {
	src := m.stored
	if m.frozenRead != nil {
		src = m.frozenRead
	}
	if src == nil || src.ID != id {
		return nil, ErrNotFound
	}
	return clonePermit(src), nil
}

func (m *mockPermitRepo) List(_ context.Context, filter ListFilter) ([]Permit, error) {
	if m.stored == nil {
		return nil, nil
	}
	if filter.Status != "" && m.stored.Status != filter.Status {
		return nil, nil
	}
	return []Permit{*clonePermit(m.stored)}, nil
}

func (m *mockPermitRepo) UpdateDecision(_ context.Context, p *Permit, expectedVersion int64, decidedIndex int) error {
	if m.stored == nil || m.stored.ID != p.ID {
		return ErrNotFound
	}
	if m.stored.Version != expectedVersion ||
		m.stored.Approvers[decidedIndex].Status != ApproverStatusPending {
		return ErrConflict
	}
	updated := clonePermit(p)
	updated.Version = expectedVersion + 1
	m.stored = updated
	p.Version = updated.Version
	return nil
}

func (m *mockPermitRepo) EnsureIndexes(context.Context) error { return nil }

type mockAudit struct {
	actions []common_models.AuditAction
}

func (m *mockAudit) LogAction(_ context.Context, action common_models.AuditAction, _, _ string, _ map[string]common_models.Change) error {
	m.actions = append(m.actions, action)
	return nil
}

func (m *mockAudit) ListByPermit(context.Context, string, int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

type mockNotifier struct {
	submitted []string
	decisions []string // "<permitID>:<next email or ->"
}

func (m *mockNotifier) NotifySubmitted(_ context.Context, p *Permit) {
	m.submitted = append(m.submitted, p.ID)
}

func (m *mockNotifier) NotifyDecision(_ context.Context, p *Permit, next *Approver) {
	nextEmail := "-"
	if next != nil {
		nextEmail = next.Email
	}
	m.decisions = append(m.decisions, fmt.Sprintf("%s:%s", p.ID, nextEmail))
}

func newTestService(repo *mockPermitRepo) (*PermitServiceImpl, *mockAudit, *mockNotifier) {
	auditSvc := &mockAudit{}
	notifier := &mockNotifier{}
	svc := &PermitServiceImpl{
		Repo:         repo,
		Factory:      testFactory(),
		AuditService: auditSvc,
		Notifier:     notifier,
		Logger:       zap.NewNop(),
	}
	return svc, auditSvc, notifier
}

func TestServiceCreatePermit(t *testing.T) {
	repo := &mockPermitRepo{}
	svc, auditSvc, notifier := newTestService(repo)

	p, err := svc.CreatePermit(context.Background(), CreatePermitInput{
		Type:      PermitTypeGeneral,
		Title:     "Scaffold assembly",
		Approvers: testRoster(),
	}, Requester{Name: "Kim", Department: "Maintenance", Email: "kim@x.com"}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "GP-20260831-001", p.ID)
	assert.Equal(t, PermitStatusPending, p.Status)
	require.NotNil(t, repo.stored)
	assert.Equal(t, p.ID, repo.stored.ID)
	assert.Equal(t, []common_models.AuditAction{common_models.AuditActionCreate}, auditSvc.actions)
	assert.Equal(t, []string{p.ID}, notifier.submitted)
}

func TestServiceDecideChain(t *testing.T) {
	repo := &mockPermitRepo{}
	svc, auditSvc, notifier := newTestService(repo)

	p, err := svc.CreatePermit(context.Background(), CreatePermitInput{
		Type:      PermitTypeGeneral,
		Title:     "Scaffold assembly",
		Approvers: testRoster(),
	}, Requester{Name: "Kim", Department: "Maintenance", Email: "kim@x.com"}, "user-1")
	require.NoError(t, err)

	updated, err := svc.Decide(context.Background(), p.ID, "lee@x.com", DecisionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, PermitStatusInProgress, updated.Status)
	assert.Equal(t, 1, updated.CurrentApproverIndex)
	assert.Equal(t, int64(2), repo.stored.Version)
	assert.Equal(t, []string{p.ID + ":park@x.com"}, notifier.decisions)

	updated, err = svc.Decide(context.Background(), p.ID, "park@x.com", DecisionApprove, "all clear")
	require.NoError(t, err)
	assert.Equal(t, PermitStatusApproved, updated.Status)
	assert.Equal(t, int64(3), repo.stored.Version)
	assert.Equal(t, p.ID+":-", notifier.decisions[1])

	assert.Equal(t, []common_models.AuditAction{
		common_models.AuditActionCreate,
		common_models.AuditActionApprove,
		common_models.AuditActionApprove,
	}, auditSvc.actions)
}

func TestServiceDecideNotFound(t *testing.T) {
	svc, _, _ := newTestService(&mockPermitRepo{})

	_, err := svc.Decide(context.Background(), "GP-20260831-404", "lee@x.com", DecisionApprove, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceDecideStaleViewGetsConflict(t *testing.T) {
	repo := &mockPermitRepo{}
	svc, _, notifier := newTestService(repo)

	p, err := svc.CreatePermit(context.Background(), CreatePermitInput{
		Type:      PermitTypeGeneral,
		Title:     "Scaffold assembly",
		Approvers: testRoster(),
	}, Requester{Name: "Kim", Department: "Maintenance", Email: "kim@x.com"}, "user-1")
	require.NoError(t, err)

	// Freeze reads at the pre-decision snapshot so a second caller acts on a
	// stale view, the way two racing requests would.
	repo.frozenRead = clonePermit(repo.stored)

	_, err = svc.Decide(context.Background(), p.ID, "lee@x.com", DecisionApprove, "")
	require.NoError(t, err)

	// Same stale view, opposite decision: must lose with a conflict, and the
	// stored permit keeps the winner's state.
	_, err = svc.Decide(context.Background(), p.ID, "lee@x.com", DecisionReject, "changed my mind")
	assert.ErrorIs(t, err, ErrConflict)

	assert.Equal(t, PermitStatusInProgress, repo.stored.Status)
	assert.Equal(t, ApproverStatusApproved, repo.stored.Approvers[0].Status)
	assert.Equal(t, int64(2), repo.stored.Version, "exactly one write applied")
	assert.Len(t, notifier.decisions, 1, "loser must not notify")
}

func TestServicePendingForApprover(t *testing.T) {
	repo := &mockPermitRepo{}
	svc, _, _ := newTestService(repo)

	p, err := svc.CreatePermit(context.Background(), CreatePermitInput{
		Type:      PermitTypeGeneral,
		Title:     "Scaffold assembly",
		Approvers: testRoster(),
	}, Requester{Name: "Kim", Department: "Maintenance", Email: "kim@x.com"}, "user-1")
	require.NoError(t, err)

	pending, err := svc.PendingForApprover(context.Background(), "lee@x.com")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, p.ID, pending[0].ID)

	// park is second in the chain, nothing waits on them yet
	pending, err = svc.PendingForApprover(context.Background(), "park@x.com")
	require.NoError(t, err)
	assert.Empty(t, pending)
}
