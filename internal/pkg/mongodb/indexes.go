package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"roundtable/internal/model"
)

// EnsureIndexes 应用启动时为所有集合创建索引
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	models := []Model{
		&model.Conversation{},
		&model.Response{},
	}
	return EnsureAllIndexes(ctx, db, models...)
}
