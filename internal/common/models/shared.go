package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

type AuditAction string

const (
	AuditActionCreate   AuditAction = "CREATE"
	AuditActionApprove  AuditAction = "APPROVE"
	AuditActionReject   AuditAction = "REJECT"
	AuditActionLogin    AuditAction = "LOGIN"
	AuditActionExport   AuditAction = "EXPORT"
	AuditActionReminder AuditAction = "REMINDER"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    AuditAction        `bson:"action" json:"action"`
	PermitID  string             `bson:"permit_id" json:"permit_id"`                 // Human-readable permit ID (e.g. GP-20260831-001)
	ActorID   string             `bson:"actor_id" json:"actor_id"`                   // User ID or email who performed the action
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"` // For decisions: field -> {old, new}
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Log is the record shape written by the async zap DB sink
type Log struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Message      string             `bson:"message" json:"message"`
	IpAddress    string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	Caller       string             `bson:"caller,omitempty" json:"caller,omitempty"`
	LogLevelId   int                `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time          `bson:"created_on_utc" json:"created_on_utc"`
}
