package permit

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPermit(emails ...string) *Permit {
	approvers := make([]Approver, 0, len(emails))
	for _, e := range emails {
		approvers = append(approvers, Approver{
			Name:   "Approver " + e,
			Email:  e,
			Role:   "approver",
			Status: ApproverStatusPending,
		})
	}
	return &Permit{
		ID:        "GP-20260831-001",
		Type:      PermitTypeGeneral,
		Title:     "Scaffold assembly, block C",
		Requester: Requester{Name: "Kim", Department: "Maintenance", Email: "kim@x.com"},
		Status:    PermitStatusPending,
		Approvers: approvers,
		Version:   1,
		CreatedAt: time.Now(),
	}
}

func TestSubmitForApproval(t *testing.T) {
	p := testPermit("a@x.com", "b@x.com")
	p.Status = PermitStatusDraft
	p.Approvers[1].Status = ApproverStatusApproved // stale junk must be reset

	require.NoError(t, SubmitForApproval(p))

	assert.Equal(t, PermitStatusPending, p.Status)
	assert.Equal(t, 0, p.CurrentApproverIndex)
	for _, a := range p.Approvers {
		assert.Equal(t, ApproverStatusPending, a.Status)
		assert.Nil(t, a.ApprovedAt)
	}
}

func TestSubmitForApprovalEmptyRoster(t *testing.T) {
	p := &Permit{ID: "GP-20260831-002"}
	assert.ErrorIs(t, SubmitForApproval(p), ErrInvalidRoster)
}

func TestMonotonicAdvancement(t *testing.T) {
	p := testPermit("a@x.com", "b@x.com", "c@x.com")
	now := time.Now()

	next, err := RecordDecision(p, "a@x.com", DecisionApprove, "", now)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "b@x.com", next.Email)
	assert.Equal(t, 1, p.CurrentApproverIndex)
	assert.Equal(t, PermitStatusInProgress, p.Status)
	assert.Equal(t, ApproverStatusApproved, p.Approvers[0].Status)
	require.NotNil(t, p.Approvers[0].ApprovedAt)

	next, err = RecordDecision(p, "b@x.com", DecisionApprove, "checked on site", now)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "c@x.com", next.Email)
	assert.Equal(t, 2, p.CurrentApproverIndex)
	assert.Equal(t, PermitStatusInProgress, p.Status)

	next, err = RecordDecision(p, "c@x.com", DecisionApprove, "", now)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, PermitStatusApproved, p.Status)
	assert.Equal(t, 2, p.CurrentApproverIndex, "index stays on the last actor once terminal")
}

func TestSingleApproverSkipsInProgress(t *testing.T) {
	p := testPermit("solo@x.com")

	next, err := RecordDecision(p, "solo@x.com", DecisionApprove, "", time.Now())
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, PermitStatusApproved, p.Status)
}

func TestRejectionIsTerminal(t *testing.T) {
	p := testPermit("a@x.com", "b@x.com")
	now := time.Now()

	_, err := RecordDecision(p, "a@x.com", DecisionApprove, "", now)
	require.NoError(t, err)

	next, err := RecordDecision(p, "b@x.com", DecisionReject, "missing PPE", now)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, PermitStatusRejected, p.Status)
	assert.Equal(t, ApproverStatusRejected, p.Approvers[1].Status)
	assert.Equal(t, "missing PPE", p.Approvers[1].Comments)
	assert.Equal(t, 1, p.CurrentApproverIndex, "index stays on the rejecting approver")

	// any further action fails, regardless of actor
	_, err = RecordDecision(p, "b@x.com", DecisionApprove, "", now)
	assert.ErrorIs(t, err, ErrPermitFinalized)
	_, err = RecordDecision(p, "a@x.com", DecisionApprove, "", now)
	assert.ErrorIs(t, err, ErrPermitFinalized)
}

func TestRejectRequiresReason(t *testing.T) {
	p := testPermit("a@x.com")
	before := clonePermit(p)

	_, err := RecordDecision(p, "a@x.com", DecisionReject, "", time.Now())
	assert.ErrorIs(t, err, ErrMissingReason)
	assert.True(t, reflect.DeepEqual(before, p), "failed decision must not mutate the permit")
}

func TestActorGating(t *testing.T) {
	tests := []struct {
		name  string
		actor string
	}{
		{"later approver acting early", "b@x.com"},
		{"stranger", "mallory@x.com"},
		{"requester", "kim@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPermit("a@x.com", "b@x.com")
			before := clonePermit(p)

			_, err := RecordDecision(p, tt.actor, DecisionApprove, "", time.Now())
			assert.ErrorIs(t, err, ErrNotCurrentApprover)
			assert.True(t, reflect.DeepEqual(before, p), "failed decision must not mutate the permit")
		})
	}
}

func TestNoSkipAhead(t *testing.T) {
	p := testPermit("a@x.com", "b@x.com", "c@x.com")

	// c cannot act while a and b are pending
	_, err := RecordDecision(p, "c@x.com", DecisionApprove, "", time.Now())
	assert.ErrorIs(t, err, ErrNotCurrentApprover)

	_, err = RecordDecision(p, "a@x.com", DecisionApprove, "", time.Now())
	require.NoError(t, err)

	// a cannot act again once the pointer moved on
	_, err = RecordDecision(p, "a@x.com", DecisionApprove, "", time.Now())
	assert.ErrorIs(t, err, ErrNotCurrentApprover)

	// invariant: nobody past the pointer has a decision
	for i := p.CurrentApproverIndex; i < len(p.Approvers); i++ {
		assert.Equal(t, ApproverStatusPending, p.Approvers[i].Status)
	}
}

func TestAlreadyDecidedGuard(t *testing.T) {
	p := testPermit("a@x.com", "b@x.com")
	// corrupt state: pointer still on a decided step
	p.Approvers[0].Status = ApproverStatusApproved

	_, err := RecordDecision(p, "a@x.com", DecisionApprove, "", time.Now())
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

// Literal scenario from the acceptance checklist
func TestTwoApproverScenario(t *testing.T) {
	p := testPermit("a@x.com", "b@x.com")
	now := time.Now()

	assert.Equal(t, PermitStatusPending, p.Status)
	assert.Equal(t, 0, p.CurrentApproverIndex)

	_, err := RecordDecision(p, "a@x.com", DecisionApprove, "", now)
	require.NoError(t, err)
	assert.Equal(t, ApproverStatusApproved, p.Approvers[0].Status)
	assert.Equal(t, 1, p.CurrentApproverIndex)
	assert.Equal(t, PermitStatusInProgress, p.Status)

	_, err = RecordDecision(p, "a@x.com", DecisionApprove, "", now)
	assert.ErrorIs(t, err, ErrNotCurrentApprover)

	_, err = RecordDecision(p, "b@x.com", DecisionReject, "missing PPE", now)
	require.NoError(t, err)
	assert.Equal(t, ApproverStatusRejected, p.Approvers[1].Status)
	assert.Equal(t, PermitStatusRejected, p.Status)

	_, err = RecordDecision(p, "b@x.com", DecisionApprove, "", now)
	assert.ErrorIs(t, err, ErrPermitFinalized)
}

func clonePermit(p *Permit) *Permit {
	cp := *p
	cp.Approvers = append([]Approver(nil), p.Approvers...)
	return &cp
}
