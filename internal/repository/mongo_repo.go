package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"roundtable/internal/model"
	"roundtable/internal/pkg/mongodb"
)

// MongoConversationRepo 基于 MongoDB 的对话仓库
type MongoConversationRepo struct {
	db            *mongo.Database
	conversations *mongo.Collection
	responses     *mongo.Collection
}

// NewMongoConversationRepo 创建 MongoDB 对话仓库
func NewMongoConversationRepo(db *mongo.Database) *MongoConversationRepo {
	var (
		c model.Conversation
		r model.Response
	)
	return &MongoConversationRepo{
		db:            db,
		conversations: db.Collection(c.Collection()),
		responses:     db.Collection(r.Collection()),
	}
}

// CreateConversation 创建对话
func (r *MongoConversationRepo) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now().UTC()
	}
	if _, err := r.conversations.InsertOne(ctx, conv); err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}

// GetConversation 查询对话及全部回复
func (r *MongoConversationRepo) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.conversations.FindOne(ctx, bson.M{"id": id}).Decode(&conv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find conversation: %w", err)
	}

	// _id 为自动生成的 ObjectID，按其排序即写入顺序
	opts := options.Find().SetSort(bson.D{{Key: "round", Value: 1}, {Key: "_id", Value: 1}})
	responses, err := r.findResponses(ctx, bson.M{"conversation_id": id}, opts)
	if err != nil {
		return nil, err
	}
	conv.Responses = responses
	return &conv, nil
}

// ListConversations 按创建时间倒序
func (r *MongoConversationRepo) ListConversations(ctx context.Context, limit int) ([]*model.ConversationSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"id": 1, "created_at": 1, "raw_input": 1, "topic_type": 1})

	cur, err := r.conversations.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find conversations: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*model.ConversationSummary, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode conversations: %w", err)
	}
	return out, nil
}

// DeleteConversation 先删回复再删对话
func (r *MongoConversationRepo) DeleteConversation(ctx context.Context, id string) error {
	if _, err := r.responses.DeleteMany(ctx, bson.M{"conversation_id": id}); err != nil {
		return fmt.Errorf("delete responses: %w", err)
	}
	res, err := r.conversations.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateResponse 写入回复，唯一索引保证同一组合只有一条
func (r *MongoConversationRepo) CreateResponse(ctx context.Context, resp *model.Response) error {
	if _, err := r.responses.InsertOne(ctx, resp); err != nil {
		if mongodb.IsDuplicateKey(err) {
			return ErrResponseExists
		}
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

// FindResponse 查询单条回复
func (r *MongoConversationRepo) FindResponse(ctx context.Context, conversationID string, round int, modelKey string) (*model.Response, error) {
	var resp model.Response
	filter := bson.M{"conversation_id": conversationID, "round": round, "model": modelKey}
	if err := r.responses.FindOne(ctx, filter).Decode(&resp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find response: %w", err)
	}
	return &resp, nil
}

// ListResponses 查询某一轮的全部回复
func (r *MongoConversationRepo) ListResponses(ctx context.Context, conversationID string, round int) ([]*model.Response, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return r.findResponses(ctx, bson.M{"conversation_id": conversationID, "round": round}, opts)
}

// Ping 就绪检查
func (r *MongoConversationRepo) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}

func (r *MongoConversationRepo) findResponses(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Response, error) {
	cur, err := r.responses.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find responses: %w", err)
	}
	defer cur.Close(ctx)

	var out []*model.Response
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}
	return out, nil
}
