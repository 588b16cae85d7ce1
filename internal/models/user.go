package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Name      *string            `bson:"name" json:"name" validate:"required,max=100"`
	Email     *string            `bson:"email" json:"email" validate:"required,email"`
	Password  *string            `bson:"password,omitempty" json:"password,omitempty" validate:"required,min=6"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CurrentUser is the authenticated identity carried on the request context.
type CurrentUser struct {
	ID    primitive.ObjectID
	Name  string
	Email string
	Role  string
}

func (u CurrentUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type ctxKey string

// ContextUser keys the CurrentUser value injected by the auth middleware.
const ContextUser ctxKey = "currentUser"
