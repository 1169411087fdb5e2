package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a directory entry: a requester or an approver-roster candidate
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Department string             `bson:"department" json:"department"`
	Role       string             `bson:"role" json:"role"` // e.g. work supervisor, site verifier, permit approver, safety manager, admin
	Password   string             `bson:"password" json:"-"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
