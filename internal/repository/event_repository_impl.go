package repository

import (
	"context"
	"time"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBEventRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewEventRepository(db *mongo.Database) EventRepository {
	return &MongoDBEventRepositoryImpl{db: db}
}

func (r *MongoDBEventRepositoryImpl) AddEvent(ctx context.Context, data domain.OrderEvent) (err error) {
	_, err = r.db.Collection(eventsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddEvent").Msg("")
	}

	return
}

func (r *MongoDBEventRepositoryImpl) GetPendingEvents(ctx context.Context, limit int64) (data []domain.OrderEvent, err error) {
	filter := bson.D{{Key: "delivered", Value: false}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).SetLimit(limit)

	cursor, err := r.db.Collection(eventsCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetPendingEvents").Msg("")
		return
	}

	data = []domain.OrderEvent{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetPendingEvents").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBEventRepositoryImpl) MarkEventDelivered(ctx context.Context, id primitive.ObjectID, at time.Time) (err error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "delivered", Value: true},
		{Key: "deliveredAt", Value: at},
	}}}

	_, err = r.db.Collection(eventsCollection).UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "MarkEventDelivered").Msg("")
	}

	return
}

func (r *MongoDBEventRepositoryImpl) IncrementEventAttempts(ctx context.Context, id primitive.ObjectID) (err error) {
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "attempts", Value: 1}}}}

	_, err = r.db.Collection(eventsCollection).UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "IncrementEventAttempts").Msg("")
	}

	return
}

func (r *MongoDBEventRepositoryImpl) DeleteDeliveredEventsBefore(ctx context.Context, before time.Time) (count int64, err error) {
	filter := bson.D{
		{Key: "delivered", Value: true},
		{Key: "deliveredAt", Value: bson.D{{Key: "$lt", Value: before}}},
	}

	result, err := r.db.Collection(eventsCollection).DeleteMany(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteDeliveredEventsBefore").Msg("")
		return
	}

	return result.DeletedCount, nil
}
