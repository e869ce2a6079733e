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

type BikeRepository struct {
	collection *mongo.Collection
}

func NewBikeRepository(db *mongo.Database) *BikeRepository {
	return &BikeRepository{
		collection: db.Collection("bikes"),
	}
}

func (r *BikeRepository) Create(bike *models.Bike) (*models.Bike, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, bike)
	if err != nil {
		return nil, err
	}

	bike.ID = result.InsertedID.(primitive.ObjectID)
	return bike, nil
}

// FindByBikeID looks a bike up by its business key, the device
// identifier reported by the hardware, not the store-generated id.
func (r *BikeRepository) FindByBikeID(bikeID string) (*models.Bike, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var bike models.Bike
	err := r.collection.FindOne(ctx, bson.M{"bike_id": bikeID}).Decode(&bike)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &bike, nil
}

func (r *BikeRepository) FindAll() ([]*models.Bike, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bikes []*models.Bike
	for cursor.Next(ctx) {
		var bike models.Bike
		if err := cursor.Decode(&bike); err != nil {
			return nil, err
		}
		bikes = append(bikes, &bike)
	}

	return bikes, nil
}

func (r *BikeRepository) FindByOwnerID(ownerID string) ([]*models.Bike, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bikes []*models.Bike
	for cursor.Next(ctx) {
		var bike models.Bike
		if err := cursor.Decode(&bike); err != nil {
			return nil, err
		}
		bikes = append(bikes, &bike)
	}

	return bikes, nil
}

// UpsertStatus overwrites the bike's cached last status wholesale and
// stamps last_seen. The upsert keeps unprovisioned devices reporting:
// a bike document is created on first contact.
func (r *BikeRepository) UpsertStatus(bikeID string, snapshot models.StatusSnapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"last_status": snapshot,
			"last_seen":   snapshot.LastSeen,
			"is_active":   true,
			"updated_at":  time.Now(),
		},
		"$setOnInsert": bson.M{
			"bike_id":          bikeID,
			"ignition_blocked": false,
			"created_at":       time.Now(),
		},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"bike_id": bikeID}, update, options.Update().SetUpsert(true))
	return err
}

// Update applies the caller-whitelisted fields and returns the updated
// document.
func (r *BikeRepository) Update(bikeID string, fields bson.M) (*models.Bike, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"bike_id": bikeID},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var bike models.Bike
	if err := result.Decode(&bike); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &bike, nil
}

// SetIgnitionBlocked persists the administrator override and stamps
// last_control_update.
func (r *BikeRepository) SetIgnitionBlocked(bikeID string, blocked bool) (*models.Bike, error) {
	return r.Update(bikeID, bson.M{
		"ignition_blocked":    blocked,
		"last_control_update": time.Now(),
	})
}

// PairHelmet records the helmet association and pairing time.
func (r *BikeRepository) PairHelmet(bikeID, helmetID string) (*models.Bike, error) {
	return r.Update(bikeID, bson.M{
		"helmet_id": helmetID,
		"paired_at": time.Now(),
	})
}

func (r *BikeRepository) Count() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *BikeRepository) CountActive() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{"is_active": true})
}

// CreateIndexes creates necessary indexes for the bikes collection
func (r *BikeRepository) CreateIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "bike_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "owner_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "is_active", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "last_seen", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
