package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ride is a completed trip, frozen at trip end by an external
// trip-completion process. This service only reads and counts rides
// for the analytics endpoints.
type Ride struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BikeID          string             `bson:"bike_id" json:"bikeId"`
	Timestamp       time.Time          `bson:"timestamp" json:"timestamp"`
	HelmetWorn      bool               `bson:"helmet_worn" json:"helmetWorn"`
	AlcoholDetected bool               `bson:"alcohol_detected" json:"alcoholDetected"`
}
