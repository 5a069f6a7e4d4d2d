package repository

import (
	"context"
	"time"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBUserRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewUserRepository(db *mongo.Database) UserRepository {
	return &MongoDBUserRepositoryImpl{db: db}
}

func (r *MongoDBUserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(usersCollection).InsertOne(ctx, data)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return id, errs.ErrEmailAlreadyUsed
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "AddUser").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBUserRepositoryImpl) GetUserByID(ctx context.Context, id primitive.ObjectID) (user domain.User, err error) {
	return r.findOne(ctx, "GetUserByID", bson.D{{Key: "_id", Value: id}})
}

func (r *MongoDBUserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (user domain.User, err error) {
	return r.findOne(ctx, "GetUserByEmail", bson.D{{Key: "email", Value: email}})
}

func (r *MongoDBUserRepositoryImpl) GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (user domain.User, err error) {
	filter := bson.D{
		{Key: "resetPasswordToken", Value: tokenHash},
		{Key: "resetPasswordExpire", Value: bson.D{{Key: "$gt", Value: now}}},
	}

	user, err = r.findOne(ctx, "GetUserByResetToken", filter)
	if err == errs.ErrUserNotFound {
		return user, errs.ErrExpiredToken
	}

	return
}

func (r *MongoDBUserRepositoryImpl) findOne(ctx context.Context, component string, filter bson.D) (user domain.User, err error) {
	err = r.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return user, errs.ErrUserNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return user, err
	}

	return user, nil
}

func (r *MongoDBUserRepositoryImpl) GetUsers(ctx context.Context) (data []domain.User, err error) {
	return r.find(ctx, "GetUsers", bson.D{})
}

func (r *MongoDBUserRepositoryImpl) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.User, err error) {
	return r.find(ctx, "GetUsersByIDs", bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
}

func (r *MongoDBUserRepositoryImpl) find(ctx context.Context, component string, filter bson.D) (data []domain.User, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.db.Collection(usersCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	data = []domain.User{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBUserRepositoryImpl) UpdateProfile(ctx context.Context, data domain.User) (err error) {
	set := bson.D{
		{Key: "name", Value: data.Name},
		{Key: "email", Value: data.Email},
		{Key: "avatar", Value: data.Avatar},
	}
	if data.ShippingInfo != nil {
		set = append(set, bson.E{Key: "shippingInfo", Value: data.ShippingInfo})
	}

	return r.updateOne(ctx, "UpdateProfile", data.ID, bson.D{{Key: "$set", Value: set}})
}

// UpdatePassword also invalidates any outstanding reset token.
func (r *MongoDBUserRepositoryImpl) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) (err error) {
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "password", Value: hashedPassword}}},
		{Key: "$unset", Value: bson.D{{Key: "resetPasswordToken", Value: ""}, {Key: "resetPasswordExpire", Value: ""}}},
	}

	return r.updateOne(ctx, "UpdatePassword", id, update)
}

func (r *MongoDBUserRepositoryImpl) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) (err error) {
	return r.updateOne(ctx, "UpdateRole", id, bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: role}}}})
}

func (r *MongoDBUserRepositoryImpl) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expire time.Time) (err error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "resetPasswordToken", Value: tokenHash},
		{Key: "resetPasswordExpire", Value: expire},
	}}}

	return r.updateOne(ctx, "SetResetToken", id, update)
}

func (r *MongoDBUserRepositoryImpl) ClearExpiredResetTokens(ctx context.Context, now time.Time) (count int64, err error) {
	filter := bson.D{{Key: "resetPasswordExpire", Value: bson.D{{Key: "$lte", Value: now}}}}
	update := bson.D{{Key: "$unset", Value: bson.D{{Key: "resetPasswordToken", Value: ""}, {Key: "resetPasswordExpire", Value: ""}}}}

	result, err := r.db.Collection(usersCollection).UpdateMany(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ClearExpiredResetTokens").Msg("")
		return
	}

	return result.ModifiedCount, nil
}

func (r *MongoDBUserRepositoryImpl) AddToCart(ctx context.Context, userID, productID primitive.ObjectID) (err error) {
	update := bson.D{{Key: "$addToSet", Value: bson.D{{Key: "cart", Value: domain.CartItem{ProductID: productID}}}}}

	return r.updateOne(ctx, "AddToCart", userID, update)
}

func (r *MongoDBUserRepositoryImpl) RemoveFromCart(ctx context.Context, userID, productID primitive.ObjectID) (err error) {
	update := bson.D{{Key: "$pull", Value: bson.D{{Key: "cart", Value: bson.D{{Key: "productId", Value: productID}}}}}}

	return r.updateOne(ctx, "RemoveFromCart", userID, update)
}

func (r *MongoDBUserRepositoryImpl) AddToWishlist(ctx context.Context, userID, productID primitive.ObjectID) (err error) {
	update := bson.D{{Key: "$addToSet", Value: bson.D{{Key: "wishlist", Value: productID}}}}

	return r.updateOne(ctx, "AddToWishlist", userID, update)
}

func (r *MongoDBUserRepositoryImpl) RemoveFromWishlist(ctx context.Context, userID, productID primitive.ObjectID) (err error) {
	update := bson.D{{Key: "$pull", Value: bson.D{{Key: "wishlist", Value: productID}}}}

	return r.updateOne(ctx, "RemoveFromWishlist", userID, update)
}

func (r *MongoDBUserRepositoryImpl) DeleteUser(ctx context.Context, id primitive.ObjectID) (err error) {
	result, err := r.db.Collection(usersCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteUser").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrUserNotFound
	}

	return nil
}

func (r *MongoDBUserRepositoryImpl) updateOne(ctx context.Context, component string, id primitive.ObjectID, update bson.D) (err error) {
	result, err := r.db.Collection(usersCollection).UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.ErrEmailAlreadyUsed
		}

		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrUserNotFound
	}

	return nil
}
