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

type AlertRepository struct {
	collection *mongo.Collection
}

func NewAlertRepository(db *mongo.Database) *AlertRepository {
	return &AlertRepository{
		collection: db.Collection("alerts"),
	}
}

func (r *AlertRepository) Create(alert *models.Alert) (*models.Alert, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		return nil, err
	}

	alert.ID = result.InsertedID.(primitive.ObjectID)
	return alert, nil
}

func (r *AlertRepository) FindByID(id string) (*models.Alert, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var alert models.Alert
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&alert)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &alert, nil
}

// Find returns alerts newest first, optionally scoped to one bike,
// capped at limit.
func (r *AlertRepository) Find(bikeID string, limit int64) ([]*models.Alert, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if bikeID != "" {
		filter["bike_id"] = bikeID
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var alerts []*models.Alert
	for cursor.Next(ctx) {
		var alert models.Alert
		if err := cursor.Decode(&alert); err != nil {
			return nil, err
		}
		alerts = append(alerts, &alert)
	}

	return alerts, nil
}

func (r *AlertRepository) FindInRange(bikeID string, start, end time.Time) ([]*models.Alert, error) {
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

	var alerts []*models.Alert
	for cursor.Next(ctx) {
		var alert models.Alert
		if err := cursor.Decode(&alert); err != nil {
			return nil, err
		}
		alerts = append(alerts, &alert)
	}

	return alerts, nil
}

// Resolve marks the alert resolved and stamps resolution metadata. The
// update filters on resolved=false so metadata is written at most once;
// ErrNotFound means no document matched the id at all.
func (r *AlertRepository) Resolve(id, resolvedBy, notes string) (*models.Alert, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	update := bson.M{
		"$set": bson.M{
			"resolved":    true,
			"resolved_at": time.Now(),
			"resolved_by": resolvedBy,
			"notes":       notes,
		},
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID, "resolved": false},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var alert models.Alert
	if err := result.Decode(&alert); err != nil {
		if err == mongo.ErrNoDocuments {
			// Either absent or already resolved; let the caller decide.
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &alert, nil
}

func (r *AlertRepository) CountByType(bikeID, alertType string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"type": alertType}
	if bikeID != "" {
		filter["bike_id"] = bikeID
	}

	return r.collection.CountDocuments(ctx, filter)
}

func (r *AlertRepository) CountByTypeForBikes(bikeIDs []string, alertType string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{
		"bike_id": bson.M{"$in": bikeIDs},
		"type":    alertType,
	})
}

func (r *AlertRepository) CountUnresolved(bikeID string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"resolved": false}
	if bikeID != "" {
		filter["bike_id"] = bikeID
	}

	return r.collection.CountDocuments(ctx, filter)
}

// CreateIndexes creates necessary indexes for the alerts collection
func (r *AlertRepository) CreateIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "bike_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "type", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "resolved", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
		{
			Keys: bson.D{
				{Key: "bike_id", Value: 1},
				{Key: "resolved", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "bike_id", Value: 1},
				{Key: "type", Value: 1},
			},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
