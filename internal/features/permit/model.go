package permit

import (
	"time"
)

// PermitType identifies the permit form family
type PermitType string

const (
	PermitTypeGeneral       PermitType = "general"
	PermitTypeFire          PermitType = "fire"
	PermitTypeSupplementary PermitType = "supplementary"
)

// Prefix returns the ID prefix for the type (GP-..., FW-..., SP-...)
func (t PermitType) Prefix() string {
	switch t {
	case PermitTypeFire:
		return "FW"
	case PermitTypeSupplementary:
		return "SP"
	default:
		return "GP"
	}
}

// Valid reports whether t is one of the known permit types
func (t PermitType) Valid() bool {
	switch t {
	case PermitTypeGeneral, PermitTypeFire, PermitTypeSupplementary:
		return true
	}
	return false
}

// PermitStatus is the aggregate lifecycle status, maintained only by the workflow
type PermitStatus string

const (
	PermitStatusDraft      PermitStatus = "draft"
	PermitStatusPending    PermitStatus = "pending"
	PermitStatusInProgress PermitStatus = "in-progress"
	PermitStatusApproved   PermitStatus = "approved"
	PermitStatusRejected   PermitStatus = "rejected"
)

// Terminal reports whether no further transitions are possible
func (s PermitStatus) Terminal() bool {
	return s == PermitStatusApproved || s == PermitStatusRejected
}

// ApproverStatus is the per-step decision status
type ApproverStatus string

const (
	ApproverStatusPending  ApproverStatus = "pending"
	ApproverStatusApproved ApproverStatus = "approved"
	ApproverStatusRejected ApproverStatus = "rejected"
)

// Decision is the action an approver takes on their step
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Requester is a snapshot of the submitter at creation time
type Requester struct {
	Name       string `bson:"name" json:"name"`
	Department string `bson:"department" json:"department"`
	Email      string `bson:"email" json:"email"`
}

// Approver is one ordered participant in a permit's approval chain.
// It has no identity outside its permit; order encodes approval sequence.
type Approver struct {
	Name       string         `bson:"name" json:"name"`
	Email      string         `bson:"email" json:"email"`
	Role       string         `bson:"role" json:"role"`
	Status     ApproverStatus `bson:"status" json:"status"`
	ApprovedAt *time.Time     `bson:"approved_at,omitempty" json:"approved_at,omitempty"`
	Comments   string         `bson:"comments,omitempty" json:"comments,omitempty"`
}

// Permit is the aggregate root. The human-readable permit ID doubles as the
// Mongo document _id, so uniqueness is enforced by the primary index.
type Permit struct {
	ID                   string                 `bson:"_id" json:"id"`
	Type                 PermitType             `bson:"type" json:"type"`
	Title                string                 `bson:"title" json:"title"`
	Requester            Requester              `bson:"requester" json:"requester"`
	Status               PermitStatus           `bson:"status" json:"status"`
	CurrentApproverIndex int                    `bson:"current_approver_index" json:"current_approver_index"`
	Approvers            []Approver             `bson:"approvers" json:"approvers"`
	Data                 map[string]interface{} `bson:"data,omitempty" json:"data,omitempty"` // opaque form payload, never interpreted here
	Version              int64                  `bson:"version" json:"version"`
	CreatedAt            time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time              `bson:"updated_at" json:"updated_at"`
}

// CurrentApprover returns the approver whose decision is awaited,
// or nil once the permit is terminal.
func (p *Permit) CurrentApprover() *Approver {
	if p.Status.Terminal() {
		return nil
	}
	if p.CurrentApproverIndex < 0 || p.CurrentApproverIndex >= len(p.Approvers) {
		return nil
	}
	return &p.Approvers[p.CurrentApproverIndex]
}
