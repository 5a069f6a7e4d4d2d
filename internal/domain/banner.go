package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type Banner struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BannerTitle    string             `bson:"bannerTitle" json:"bannerTitle"`
	BannerSubtitle string             `bson:"bannerSubtitle" json:"bannerSubtitle"`
	BannerLink     string             `bson:"bannerLink" json:"bannerLink"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
}

func DefaultBanner() Banner {
	return Banner{
		BannerTitle:    "Summer Sale is Live!",
		BannerSubtitle: "Grab These Before They're Gone!",
		BannerLink:     "/products",
		IsActive:       true,
	}
}
