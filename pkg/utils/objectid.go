package utils

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID converts a path or body id, reporting malformed ids as
// notFound so that they surface the same way as unknown ones.
func ParseObjectID(id string, notFound error) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", notFound, id)
	}

	return objectID, nil
}
