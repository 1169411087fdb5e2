package permit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func projectionFixture() []Permit {
	return []Permit{
		{
			ID: "GP-20260831-001", Type: PermitTypeGeneral, Title: "Scaffold assembly",
			Requester: Requester{Name: "Kim", Department: "Maintenance"},
			Status:    PermitStatusPending, CurrentApproverIndex: 0,
			Approvers: []Approver{
				{Email: "lee@x.com", Status: ApproverStatusPending},
				{Email: "park@x.com", Status: ApproverStatusPending},
			},
		},
		{
			ID: "FW-20260831-001", Type: PermitTypeFire, Title: "Welding on deck",
			Requester: Requester{Name: "Choi", Department: "Production"},
			Status:    PermitStatusInProgress, CurrentApproverIndex: 1,
			Approvers: []Approver{
				{Email: "lee@x.com", Status: ApproverStatusApproved},
				{Email: "park@x.com", Status: ApproverStatusPending},
			},
		},
		{
			ID: "GP-20260831-002", Type: PermitTypeGeneral, Title: "Pump teardown",
			Requester: Requester{Name: "Jung", Department: "Maintenance"},
			Status:    PermitStatusApproved, CurrentApproverIndex: 1,
			Approvers: []Approver{
				{Email: "lee@x.com", Status: ApproverStatusApproved},
				{Email: "park@x.com", Status: ApproverStatusApproved},
			},
		},
		{
			ID: "SP-20260831-001", Type: PermitTypeSupplementary, Title: "Night shift extension",
			Requester: Requester{Name: "Kim", Department: "Maintenance"},
			Status:    PermitStatusRejected, CurrentApproverIndex: 0,
			Approvers: []Approver{
				{Email: "lee@x.com", Status: ApproverStatusRejected},
			},
		},
	}
}

func TestStatsByStatus(t *testing.T) {
	stats := StatsByStatus(projectionFixture())

	assert.Equal(t, Stats{
		Total:      4,
		Pending:    1,
		InProgress: 1,
		Approved:   1,
		Rejected:   1,
	}, stats)
}

func TestStatsByStatusEmpty(t *testing.T) {
	assert.Equal(t, Stats{}, StatsByStatus(nil))
}

func TestPendingForApprover(t *testing.T) {
	permits := projectionFixture()

	lee := PendingForApprover(permits, "lee@x.com")
	assert.Len(t, lee, 1)
	assert.Equal(t, "GP-20260831-001", lee[0].ID)

	park := PendingForApprover(permits, "park@x.com")
	assert.Len(t, park, 1)
	assert.Equal(t, "FW-20260831-001", park[0].ID)

	// terminal permits never show up, even for their past approvers
	assert.Empty(t, PendingForApprover(permits, "nobody@x.com"))
}

func TestFilters(t *testing.T) {
	permits := projectionFixture()

	assert.Len(t, FilterByDepartment(permits, "maintenance"), 3)
	assert.Len(t, FilterByDepartment(permits, "Production"), 1)
	assert.Len(t, FilterByDepartment(permits, ""), 4)

	assert.Len(t, FilterByType(permits, PermitTypeFire), 1)
	assert.Len(t, FilterByType(permits, ""), 4)

	assert.Len(t, FilterBySearchTerm(permits, "weld"), 1)
	assert.Len(t, FilterBySearchTerm(permits, "KIM"), 2)
	assert.Len(t, FilterBySearchTerm(permits, "no-match"), 0)
}
