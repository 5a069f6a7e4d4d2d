package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	productsCollection = "products"
	usersCollection    = "users"
	ordersCollection   = "orders"
	configsCollection  = "configs"
	eventsCollection   = "order_events"
)

type MongoDBTransactionManager struct {
	db *mongo.Database
}

func CreateNewTransactionManager(db *mongo.Database) TransactionManager {
	return &MongoDBTransactionManager{db: db}
}

func (r *MongoDBTransactionManager) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("")
		return err
	}

	// Defers ending the session after the transaction is committed or ended
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessionCtx mongo.SessionContext) (interface{}, error) {
		err := fn(sessionCtx)
		if err != nil {
			log.Ctx(ctx).Debug().Err(err).Str("component", "HandleTrx").Msg("transaction aborted")
		}
		return nil, err
	})

	return err
}
