package permit

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// PermitFactory builds new permit aggregates with a collision-free
// human-readable ID and hands them to the workflow for submission.
type PermitFactory struct {
	Counters CounterRepository
	Now      func() time.Time
}

func NewPermitFactory(counters CounterRepository) *PermitFactory {
	return &PermitFactory{
		Counters: counters,
		Now:      time.Now,
	}
}

// NewPermit validates the input, assigns an ID like GP-20260831-001 and
// returns the permit already submitted for approval (status pending).
func (f *PermitFactory) NewPermit(ctx context.Context, permitType PermitType, title string, requester Requester, roster []Approver, data map[string]interface{}) (*Permit, error) {
	if !permitType.Valid() {
		return nil, fmt.Errorf("%w: unknown permit type %q", ErrValidation, permitType)
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(requester.Name) == "" {
		return nil, fmt.Errorf("%w: requester name is required", ErrValidation)
	}
	if strings.TrimSpace(requester.Department) == "" {
		return nil, fmt.Errorf("%w: requester department is required", ErrValidation)
	}
	if len(roster) == 0 {
		return nil, ErrInvalidRoster
	}
	for i, a := range roster {
		if strings.TrimSpace(a.Email) == "" {
			return nil, fmt.Errorf("%w: approver %d has no email", ErrValidation, i)
		}
	}

	now := f.Now()
	key := fmt.Sprintf("%s-%s", permitType.Prefix(), now.Format("20060102"))
	seq, err := f.Counters.Next(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate permit sequence: %w", err)
	}

	p := &Permit{
		ID:        fmt.Sprintf("%s-%03d", key, seq),
		Type:      permitType,
		Title:     title,
		Requester: requester,
		Approvers: append([]Approver(nil), roster...),
		Data:      data,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := SubmitForApproval(p); err != nil {
		return nil, err
	}
	return p, nil
}
