package repository

import (
	"testing"

	pkgdto "github.com/Indrajitpadhiyar/Bagify/pkg/dto"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildProductFilter(t *testing.T) {
	minPrice, maxPrice, minRating := 100.0, 2500.0, 4.0

	type TestCase struct {
		Name     string
		Filter   pkgdto.Filter
		Expected bson.M
	}

	testCases := []TestCase{
		{
			Name:     "empty filter matches everything",
			Filter:   pkgdto.Filter{Page: 2, Limit: 8},
			Expected: bson.M{},
		},
		{
			Name:   "keyword is escaped and case insensitive",
			Filter: pkgdto.Filter{Keyword: "tote (xl)"},
			Expected: bson.M{
				"name": bson.M{"$regex": `tote \(xl\)`, "$options": "i"},
			},
		},
		{
			Name: "category, price range and rating",
			Filter: pkgdto.Filter{
				Category:  "Backpack",
				MinPrice:  &minPrice,
				MaxPrice:  &maxPrice,
				MinRating: &minRating,
			},
			Expected: bson.M{
				"category": "Backpack",
				"price":    bson.M{"$gte": 100.0, "$lte": 2500.0},
				"ratings":  bson.M{"$gte": 4.0},
			},
		},
		{
			Name:     "upper price bound only",
			Filter:   pkgdto.Filter{MaxPrice: &maxPrice},
			Expected: bson.M{"price": bson.M{"$lte": 2500.0}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, BuildProductFilter(tc.Filter))
		})
	}
}

func TestBuildStockReservation(t *testing.T) {
	id := primitive.NewObjectID()

	filter, update := BuildStockReservation(id, 3)

	assert.Equal(t, bson.D{
		{Key: "_id", Value: id},
		{Key: "stock", Value: bson.D{{Key: "$gte", Value: 3}}},
	}, filter)
	assert.Equal(t, bson.D{{Key: "$inc", Value: bson.D{{Key: "stock", Value: -3}}}}, update)
}
