package users

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Status is the activation state of a user.
type Status string

// Status values. A user is always in exactly one of them.
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User represents a registered user
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	Name         string        `bson:"name" json:"name" example:"Jane Doe"`
	Email        string        `bson:"email" json:"email" example:"jane@example.com"`
	PasswordHash string        `bson:"password" json:"-"`
	Address      string        `bson:"address" json:"address" example:"221B Baker Street, London"`
	Latitude     float64       `bson:"latitude" json:"latitude" example:"51.5237"`
	Longitude    float64       `bson:"longitude" json:"longitude" example:"-0.1585"`
	Status       Status        `bson:"status" json:"status" example:"active"`
	RegisterAt   time.Time     `bson:"register_at" json:"register_at" example:"2025-06-01T23:00:26.005Z"`
}

// Contact is the slice of a user exposed by the weekday listing.
type Contact struct {
	Name  string `bson:"name" json:"name" example:"Jane Doe"`
	Email string `bson:"email" json:"email" example:"jane@example.com"`
}

// WeekdayGroup holds the users registered on one day of the week.
type WeekdayGroup struct {
	Weekday time.Weekday
	Users   []Contact
}

// Registration is a validated, normalized registration payload.
type Registration struct {
	Name      string
	Email     string
	Password  string
	Address   string
	Latitude  float64
	Longitude float64
}

// RegisterResponse is the public view of a freshly created user plus its token.
type RegisterResponse struct {
	ID         string    `json:"id" example:"683cdb8aa96ad71e8e075bd1"`
	Name       string    `json:"name" example:"Jane Doe"`
	Email      string    `json:"email" example:"jane@example.com"`
	Address    string    `json:"address" example:"221B Baker Street, London"`
	Latitude   float64   `json:"latitude" example:"51.5237"`
	Longitude  float64   `json:"longitude" example:"-0.1585"`
	Status     Status    `json:"status" example:"active"`
	RegisterAt time.Time `json:"register_at" example:"2025-06-01T23:00:26.005Z"`
	Token      string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

func newRegisterResponse(u *User, token string) *RegisterResponse {
	return &RegisterResponse{
		ID:         u.ID.Hex(),
		Name:       u.Name,
		Email:      u.Email,
		Address:    u.Address,
		Latitude:   u.Latitude,
		Longitude:  u.Longitude,
		Status:     u.Status,
		RegisterAt: u.RegisterAt,
		Token:      token,
	}
}
