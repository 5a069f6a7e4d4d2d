package repository

import (
	"context"
	"regexp"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	pkgdto "github.com/Indrajitpadhiyar/Bagify/pkg/dto"
	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewProductRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

// BuildProductFilter translates catalog search parameters into a query.
func BuildProductFilter(param pkgdto.Filter) bson.M {
	filter := bson.M{}

	if param.Keyword != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(param.Keyword), "$options": "i"}
	}

	if param.Category != "" {
		filter["category"] = param.Category
	}

	price := bson.M{}
	if param.MinPrice != nil {
		price["$gte"] = *param.MinPrice
	}
	if param.MaxPrice != nil {
		price["$lte"] = *param.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if param.MinRating != nil {
		filter["ratings"] = bson.M{"$gte": *param.MinRating}
	}

	return filter
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(productsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), err
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, param pkgdto.Filter) (data []domain.Product, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	if param.Limit != 0 && param.Page != 0 {
		opts = opts.SetSkip((int64(param.Page) - 1) * int64(param.Limit)).SetLimit(int64(param.Limit))
	}

	cursor, err := r.db.Collection(productsCollection).Find(ctx, BuildProductFilter(param), opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	data = []domain.Product{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) CountProducts(ctx context.Context, param pkgdto.Filter) (count int64, err error) {
	count, err = r.db.Collection(productsCollection).CountDocuments(ctx, BuildProductFilter(param))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountProducts").Msg("")
	}

	return
}

func (r *MongoDBProductRepositoryImpl) GetAllProducts(ctx context.Context) (data []domain.Product, err error) {
	return r.find(ctx, "GetAllProducts", bson.M{})
}

func (r *MongoDBProductRepositoryImpl) GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Product, err error) {
	return r.find(ctx, "GetProductsByIDs", bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MongoDBProductRepositoryImpl) find(ctx context.Context, component string, filter bson.M) (data []domain.Product, err error) {
	cursor, err := r.db.Collection(productsCollection).Find(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	data = []domain.Product{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id primitive.ObjectID) (product domain.Product, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	err = r.db.Collection(productsCollection).FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return product, errs.ErrProductNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return product, err
	}
	return product, nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "description", Value: data.Description},
		{Key: "price", Value: data.Price},
		{Key: "category", Value: data.Category},
		{Key: "stock", Value: data.Stock},
		{Key: "images", Value: data.Images},
	}}}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProductReviews(ctx context.Context, data domain.Product) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "reviews", Value: data.Reviews},
		{Key: "ratings", Value: data.Ratings},
		{Key: "numOfReviews", Value: data.NumOfReviews},
	}}}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProductReviews").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	result, err := r.db.Collection(productsCollection).DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrProductNotFound
	}

	return
}

// BuildStockReservation matches the product only while it still holds
// quantity units, so two buyers can never both take the last one.
func BuildStockReservation(id primitive.ObjectID, quantity int) (filter bson.D, update bson.D) {
	filter = bson.D{
		{Key: "_id", Value: id},
		{Key: "stock", Value: bson.D{{Key: "$gte", Value: quantity}}},
	}
	update = bson.D{{Key: "$inc", Value: bson.D{{Key: "stock", Value: -quantity}}}}

	return filter, update
}

func (r *MongoDBProductRepositoryImpl) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (ok bool, err error) {
	filter, update := BuildStockReservation(id, quantity)

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DecrementStock").Msg("")
		return false, err
	}

	return result.MatchedCount == 1, nil
}

func (r *MongoDBProductRepositoryImpl) IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (ok bool, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "stock", Value: quantity}}}}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "IncrementStock").Msg("")
		return false, err
	}

	return result.MatchedCount == 1, nil
}
