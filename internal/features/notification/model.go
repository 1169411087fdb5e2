package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTypeSubmitted NotificationType = "submitted"
	NotificationTypeApproved  NotificationType = "approved"
	NotificationTypeRejected  NotificationType = "rejected"
	NotificationTypeTurn      NotificationType = "your-turn"
	NotificationTypeReminder  NotificationType = "reminder"
)

// Notification is an in-app message for one recipient, keyed by email so it
// works for roster members who have not logged in yet
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Recipient string             `bson:"recipient" json:"recipient"` // email
	PermitID  string             `bson:"permit_id" json:"permit_id"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Type      NotificationType   `bson:"type" json:"type"`
	IsRead    bool               `bson:"is_read" json:"is_read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ReadAt    *time.Time         `bson:"read_at,omitempty" json:"read_at,omitempty"`
}
