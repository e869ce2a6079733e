package repository

import (
	"context"
	"time"

	"smarthelmet-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RideRepository struct {
	collection *mongo.Collection
}

func NewRideRepository(db *mongo.Database) *RideRepository {
	return &RideRepository{
		collection: db.Collection("rides"),
	}
}

// Create exists for the external trip-completion writer and for
// seeding; this service itself only reads rides.
func (r *RideRepository) Create(ride *models.Ride) (*models.Ride, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, ride)
	if err != nil {
		return nil, err
	}

	ride.ID = result.InsertedID.(primitive.ObjectID)
	return ride, nil
}

func (r *RideRepository) Count(bikeID string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if bikeID != "" {
		filter["bike_id"] = bikeID
	}

	return r.collection.CountDocuments(ctx, filter)
}

// CountSuccessful counts rides completed with the helmet worn and no
// alcohol detected.
func (r *RideRepository) CountSuccessful(bikeID string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"helmet_worn": true, "alcohol_detected": false}
	if bikeID != "" {
		filter["bike_id"] = bikeID
	}

	return r.collection.CountDocuments(ctx, filter)
}

func (r *RideRepository) CountForBikes(bikeIDs []string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{"bike_id": bson.M{"$in": bikeIDs}})
}

func (r *RideRepository) CountSuccessfulForBikes(bikeIDs []string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{
		"bike_id":          bson.M{"$in": bikeIDs},
		"helmet_worn":      true,
		"alcohol_detected": false,
	})
}

// FindSince returns rides newer than the cutoff, oldest first, for
// time-series charting.
func (r *RideRepository) FindSince(bikeID string, since time.Time) ([]*models.Ride, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"timestamp": bson.M{"$gte": since}}
	if bikeID != "" {
		filter["bike_id"] = bikeID
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rides []*models.Ride
	for cursor.Next(ctx) {
		var ride models.Ride
		if err := cursor.Decode(&ride); err != nil {
			return nil, err
		}
		rides = append(rides, &ride)
	}

	return rides, nil
}

func (r *RideRepository) FindInRange(bikeID string, start, end time.Time) ([]*models.Ride, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if bikeID != "" {
		filter["bike_id"] = bikeID
	}
	if !start.IsZero() && !end.IsZero() {
		filter["timestamp"] = bson.M{"$gte": start, "$lte": end}
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rides []*models.Ride
	for cursor.Next(ctx) {
		var ride models.Ride
		if err := cursor.Decode(&ride); err != nil {
			return nil, err
		}
		rides = append(rides, &ride)
	}

	return rides, nil
}

// CreateIndexes creates necessary indexes for the rides collection
func (r *RideRepository) CreateIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "bike_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
		{
			Keys: bson.D{
				{Key: "bike_id", Value: 1},
				{Key: "helmet_worn", Value: 1},
				{Key: "alcohol_detected", Value: 1},
			},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
