package permit

import (
	"time"
)

// The workflow functions are the only code allowed to set Permit.Status,
// Permit.CurrentApproverIndex or Approver.Status. Read layers must never
// re-derive status from the approver array.

// SubmitForApproval moves a freshly built permit into the approval chain:
// status pending, pointer at the first approver, every step pending.
func SubmitForApproval(p *Permit) error {
	if len(p.Approvers) == 0 {
		return ErrInvalidRoster
	}
	for i := range p.Approvers {
		p.Approvers[i].Status = ApproverStatusPending
		p.Approvers[i].ApprovedAt = nil
		p.Approvers[i].Comments = ""
	}
	p.Status = PermitStatusPending
	p.CurrentApproverIndex = 0
	return nil
}

// RecordDecision applies one approver decision to the permit in memory and
// returns the approver now responsible (nil once terminal). The permit is
// left untouched on any error. Persisting the mutation atomically is the
// caller's job.
func RecordDecision(p *Permit, actorEmail string, decision Decision, comments string, now time.Time) (*Approver, error) {
	if p.Status.Terminal() {
		return nil, ErrPermitFinalized
	}
	if p.Status != PermitStatusPending && p.Status != PermitStatusInProgress {
		// draft permits have no chain to act on
		return nil, ErrPermitFinalized
	}
	if p.CurrentApproverIndex < 0 || p.CurrentApproverIndex >= len(p.Approvers) {
		return nil, ErrAlreadyDecided
	}

	current := &p.Approvers[p.CurrentApproverIndex]
	if current.Email != actorEmail {
		return nil, ErrNotCurrentApprover
	}
	if current.Status != ApproverStatusPending {
		// unreachable while the index invariant holds, kept as a guard
		return nil, ErrAlreadyDecided
	}
	if decision == DecisionReject && comments == "" {
		return nil, ErrMissingReason
	}

	decidedAt := now
	current.ApprovedAt = &decidedAt
	current.Comments = comments
	p.UpdatedAt = now

	if decision == DecisionReject {
		current.Status = ApproverStatusRejected
		// index stays on the rejecting approver for audit display
		p.Status = PermitStatusRejected
		return nil, nil
	}

	current.Status = ApproverStatusApproved
	if p.CurrentApproverIndex == len(p.Approvers)-1 {
		p.Status = PermitStatusApproved
		return nil, nil
	}

	p.CurrentApproverIndex++
	p.Status = PermitStatusInProgress
	return &p.Approvers[p.CurrentApproverIndex], nil
}
