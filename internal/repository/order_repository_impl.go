package repository

import (
	"context"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBOrderRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewOrderRepository(db *mongo.Database) OrderRepository {
	return &MongoDBOrderRepositoryImpl{db: db}
}

func (r *MongoDBOrderRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(ordersCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrder").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBOrderRepositoryImpl) GetOrderByID(ctx context.Context, id primitive.ObjectID) (order domain.Order, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	err = r.db.Collection(ordersCollection).FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return order, errs.ErrOrderNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrderByID").Msg("")
		return order, err
	}

	return order, nil
}

func (r *MongoDBOrderRepositoryImpl) GetOrdersByUser(ctx context.Context, userID primitive.ObjectID) (data []domain.Order, err error) {
	filter := bson.D{{Key: "user", Value: userID}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	return r.find(ctx, "GetOrdersByUser", filter, opts)
}

func (r *MongoDBOrderRepositoryImpl) GetOrders(ctx context.Context) (data []domain.Order, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	return r.find(ctx, "GetOrders", bson.D{}, opts)
}

func (r *MongoDBOrderRepositoryImpl) find(ctx context.Context, component string, filter bson.D, opts *options.FindOptions) (data []domain.Order, err error) {
	cursor, err := r.db.Collection(ordersCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	data = []domain.Order{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	return data, nil
}

// BuildStatusChange matches the order only while it is still in change.From,
// so a concurrent transition makes the update miss.
func BuildStatusChange(change domain.OrderStatusChange) (filter bson.D, update bson.D) {
	filter = bson.D{
		{Key: "_id", Value: change.OrderID},
		{Key: "orderStatus", Value: change.From},
	}

	set := bson.D{{Key: "orderStatus", Value: change.To}}
	if change.DeliveredAt != nil {
		set = append(set, bson.E{Key: "deliveredAt", Value: *change.DeliveredAt})
	}
	if change.CancelledAt != nil {
		set = append(set, bson.E{Key: "cancelledAt", Value: *change.CancelledAt})
	}

	update = bson.D{
		{Key: "$set", Value: set},
		{Key: "$push", Value: bson.D{{Key: "timeline", Value: change.Entry}}},
	}

	return filter, update
}

func (r *MongoDBOrderRepositoryImpl) UpdateOrderStatus(ctx context.Context, change domain.OrderStatusChange) (err error) {
	filter, update := BuildStatusChange(change)

	result, err := r.db.Collection(ordersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateOrderStatus").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		log.Ctx(ctx).Warn().Str("component", "UpdateOrderStatus").Str("order_id", change.OrderID.Hex()).
			Str("expected_status", string(change.From)).Msg("order status changed concurrently")
		return errs.ErrConflict
	}

	return nil
}

func (r *MongoDBOrderRepositoryImpl) DeleteOrder(ctx context.Context, id primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	result, err := r.db.Collection(ordersCollection).DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteOrder").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrOrderNotFound
	}

	return nil
}
