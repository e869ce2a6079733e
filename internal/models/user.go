package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username          string             `bson:"username" json:"username" validate:"required,min=3,max=50"`
	PasswordHash      string             `bson:"password_hash" json:"-"`
	Role              string             `bson:"role" json:"role" validate:"required,oneof=admin rider"`
	Email             string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone             string             `bson:"phone,omitempty" json:"phone,omitempty"`
	EmergencyContacts []string           `bson:"emergency_contacts,omitempty" json:"emergencyContacts,omitempty"`
	AssignedBikes     []string           `bson:"assigned_bikes,omitempty" json:"assignedBikes,omitempty"`
	IsActive          bool               `bson:"is_active" json:"isActive"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
}

// AuthUser is the user payload embedded in auth responses.
type AuthUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

const (
	RoleAdmin = "admin"
	RoleRider = "rider"
)
