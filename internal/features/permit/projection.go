package permit

import "strings"

// Read projections over the permit collection. Pure functions, recomputed
// on every call; status is read, never re-derived from the approver array.

// Stats are counts grouped by lifecycle status
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Approved   int `json:"approved"`
	Rejected   int `json:"rejected"`
}

// StatsByStatus counts permits per status
func StatsByStatus(permits []Permit) Stats {
	stats := Stats{Total: len(permits)}
	for _, p := range permits {
		switch p.Status {
		case PermitStatusPending:
			stats.Pending++
		case PermitStatusInProgress:
			stats.InProgress++
		case PermitStatusApproved:
			stats.Approved++
		case PermitStatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

// PendingForApprover filters to permits currently waiting on the given
// approver's decision.
func PendingForApprover(permits []Permit, email string) []Permit {
	var out []Permit
	for _, p := range permits {
		if p.Status != PermitStatusPending && p.Status != PermitStatusInProgress {
			continue
		}
		current := p.CurrentApprover()
		if current == nil {
			continue
		}
		if current.Email == email && current.Status == ApproverStatusPending {
			out = append(out, p)
		}
	}
	return out
}

// FilterByDepartment keeps permits whose requester department matches
// (case-insensitive substring).
func FilterByDepartment(permits []Permit, department string) []Permit {
	if department == "" {
		return permits
	}
	var out []Permit
	for _, p := range permits {
		if containsFold(p.Requester.Department, department) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByType keeps permits of the given type
func FilterByType(permits []Permit, permitType PermitType) []Permit {
	if permitType == "" {
		return permits
	}
	var out []Permit
	for _, p := range permits {
		if p.Type == permitType {
			out = append(out, p)
		}
	}
	return out
}

// FilterBySearchTerm keeps permits whose title, requester name or
// department contains the term (case-insensitive).
func FilterBySearchTerm(permits []Permit, term string) []Permit {
	if term == "" {
		return permits
	}
	var out []Permit
	for _, p := range permits {
		if containsFold(p.Title, term) ||
			containsFold(p.Requester.Name, term) ||
			containsFold(p.Requester.Department, term) {
			out = append(out, p)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
