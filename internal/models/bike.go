package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Bike struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BikeID             string             `bson:"bike_id" json:"bikeId" validate:"required"`
	BikeName           string             `bson:"bike_name,omitempty" json:"bikeName,omitempty"`
	BikeModel          string             `bson:"bike_model,omitempty" json:"bikeModel,omitempty"`
	RegistrationNumber string             `bson:"registration_number,omitempty" json:"registrationNumber,omitempty"`
	OwnerID            string             `bson:"owner_id,omitempty" json:"ownerId,omitempty"`
	HelmetID           string             `bson:"helmet_id,omitempty" json:"helmetId,omitempty"`
	PairedAt           *time.Time         `bson:"paired_at,omitempty" json:"pairedAt,omitempty"`
	IgnitionBlocked    bool               `bson:"ignition_blocked" json:"ignitionBlocked"`
	LastControlUpdate  *time.Time         `bson:"last_control_update,omitempty" json:"lastControlUpdate,omitempty"`
	LastStatus         *StatusSnapshot    `bson:"last_status,omitempty" json:"lastStatus,omitempty"`
	LastSeen           *time.Time         `bson:"last_seen,omitempty" json:"lastSeen,omitempty"`
	IsActive           bool               `bson:"is_active" json:"isActive"`
	CreatedAt          time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updatedAt"`
}

// StatusSnapshot is the last accepted hardware report, overwritten
// wholesale on every report. No history is kept here; alerts are the
// durable evidence of violations.
type StatusSnapshot struct {
	HelmetWorn      bool      `bson:"helmet_worn" json:"helmetWorn"`
	AlcoholDetected bool      `bson:"alcohol_detected" json:"alcoholDetected"`
	Battery         int       `bson:"battery" json:"battery"`
	IgnitionStatus  string    `bson:"ignition_status" json:"ignitionStatus"`
	LastSeen        time.Time `bson:"last_seen" json:"lastSeen"`
	IsActive        bool      `bson:"is_active" json:"isActive"`
}

// BikeOwner is the resolved owner reference attached to bike reads.
// Bikes hold the owner id as a plain string; a dangling reference
// resolves to a nil owner, never an error.
type BikeOwner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// BikeWithOwner decorates a bike with its lazily resolved owner.
type BikeWithOwner struct {
	Bike
	Owner *BikeOwner `json:"owner,omitempty"`
}

// Ignition status values reported by the hardware.
const (
	IgnitionOn        = "on"
	IgnitionOff       = "off"
	IgnitionBlocked   = "blocked"
	IgnitionAttempted = "attempted"
)
