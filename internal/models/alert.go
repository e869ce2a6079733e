package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Alert struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BikeID     string             `bson:"bike_id" json:"bikeId" validate:"required"`
	Type       string             `bson:"type" json:"type" validate:"required,oneof=alcoholAttempt helmetAttempt"`
	Severity   string             `bson:"severity" json:"severity" validate:"required,oneof=low medium high"`
	Message    string             `bson:"message" json:"message" validate:"required"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Resolved   bool               `bson:"resolved" json:"resolved"`
	ResolvedAt *time.Time         `bson:"resolved_at,omitempty" json:"resolvedAt,omitempty"`
	ResolvedBy string             `bson:"resolved_by,omitempty" json:"resolvedBy,omitempty"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

const (
	AlertTypeAlcohol = "alcoholAttempt"
	AlertTypeHelmet  = "helmetAttempt"
)

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)
