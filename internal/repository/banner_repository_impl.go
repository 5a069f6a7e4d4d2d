package repository

import (
	"context"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBBannerRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewBannerRepository(db *mongo.Database) BannerRepository {
	return &MongoDBBannerRepositoryImpl{db: db}
}

func (r *MongoDBBannerRepositoryImpl) GetOrCreateBanner(ctx context.Context, def domain.Banner) (banner domain.Banner, err error) {
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "bannerTitle", Value: def.BannerTitle},
		{Key: "bannerSubtitle", Value: def.BannerSubtitle},
		{Key: "bannerLink", Value: def.BannerLink},
		{Key: "isActive", Value: def.IsActive},
	}}}

	return r.findOneAndUpdate(ctx, "GetOrCreateBanner", update)
}

func (r *MongoDBBannerRepositoryImpl) UpsertBanner(ctx context.Context, data domain.Banner) (banner domain.Banner, err error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "bannerTitle", Value: data.BannerTitle},
		{Key: "bannerSubtitle", Value: data.BannerSubtitle},
		{Key: "bannerLink", Value: data.BannerLink},
		{Key: "isActive", Value: data.IsActive},
	}}}

	return r.findOneAndUpdate(ctx, "UpsertBanner", update)
}

func (r *MongoDBBannerRepositoryImpl) findOneAndUpdate(ctx context.Context, component string, update bson.D) (banner domain.Banner, err error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	err = r.db.Collection(configsCollection).FindOneAndUpdate(ctx, bson.D{}, update, opts).Decode(&banner)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	return banner, nil
}
