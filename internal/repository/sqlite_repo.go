package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"roundtable/internal/model"
	"roundtable/internal/pkg/sqlite"
)

// SQLiteConversationRepo 基于 SQLite 的对话仓库
type SQLiteConversationRepo struct {
	db *sql.DB
}

// NewSQLiteConversationRepo 创建 SQLite 对话仓库，db 需已通过 sqlite.Open 建表
func NewSQLiteConversationRepo(db *sql.DB) *SQLiteConversationRepo {
	return &SQLiteConversationRepo{db: db}
}

// CreateConversation 创建对话
func (r *SQLiteConversationRepo) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now().UTC()
	}
	models, err := json.Marshal(conv.Models)
	if err != nil {
		return fmt.Errorf("marshal models: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO conversations (id, created_at, raw_input, augmented_prompt, topic_type, framework, models)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		conv.ID, conv.CreatedAt, conv.RawInput, conv.AugmentedPrompt, conv.TopicType, conv.Framework, string(models))
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}

// GetConversation 查询对话及全部回复
func (r *SQLiteConversationRepo) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	var (
		conv   model.Conversation
		models string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, created_at, raw_input, augmented_prompt, topic_type, framework, models
		 FROM conversations WHERE id = ?`, id).
		Scan(&conv.ID, &conv.CreatedAt, &conv.RawInput, &conv.AugmentedPrompt, &conv.TopicType, &conv.Framework, &models)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query conversation: %w", err)
	}
	if err := json.Unmarshal([]byte(models), &conv.Models); err != nil {
		return nil, fmt.Errorf("unmarshal models: %w", err)
	}

	conv.Responses, err = r.queryResponses(ctx,
		`SELECT id, conversation_id, round, model, content, sources
		 FROM responses WHERE conversation_id = ? ORDER BY round, rowid`, id)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversations 按创建时间倒序
func (r *SQLiteConversationRepo) ListConversations(ctx context.Context, limit int) ([]*model.ConversationSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at, raw_input, topic_type
		 FROM conversations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	out := make([]*model.ConversationSummary, 0, limit)
	for rows.Next() {
		var s model.ConversationSummary
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.RawInput, &s.TopicType); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// DeleteConversation 删除对话，回复由外键级联删除
func (r *SQLiteConversationRepo) DeleteConversation(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM responses WHERE conversation_id = ?`, id); err != nil {
		return fmt.Errorf("delete responses: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// CreateResponse 写入回复
func (r *SQLiteConversationRepo) CreateResponse(ctx context.Context, resp *model.Response) error {
	var sources sql.NullString
	if len(resp.Sources) > 0 {
		data, err := json.Marshal(resp.Sources)
		if err != nil {
			return fmt.Errorf("marshal sources: %w", err)
		}
		sources = sql.NullString{String: string(data), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO responses (id, conversation_id, round, model, content, sources)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		resp.ID, resp.ConversationID, resp.Round, resp.Model, resp.Content, sources)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return ErrResponseExists
		}
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

// FindResponse 查询单条回复
func (r *SQLiteConversationRepo) FindResponse(ctx context.Context, conversationID string, round int, modelKey string) (*model.Response, error) {
	list, err := r.queryResponses(ctx,
		`SELECT id, conversation_id, round, model, content, sources
		 FROM responses WHERE conversation_id = ? AND round = ? AND model = ?`,
		conversationID, round, modelKey)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list[0], nil
}

// ListResponses 查询某一轮的全部回复
func (r *SQLiteConversationRepo) ListResponses(ctx context.Context, conversationID string, round int) ([]*model.Response, error) {
	return r.queryResponses(ctx,
		`SELECT id, conversation_id, round, model, content, sources
		 FROM responses WHERE conversation_id = ? AND round = ? ORDER BY rowid`,
		conversationID, round)
}

// Ping 就绪检查
func (r *SQLiteConversationRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteConversationRepo) queryResponses(ctx context.Context, query string, args ...any) ([]*model.Response, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []*model.Response
	for rows.Next() {
		var (
			resp    model.Response
			sources sql.NullString
		)
		if err := rows.Scan(&resp.ID, &resp.ConversationID, &resp.Round, &resp.Model, &resp.Content, &sources); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		if sources.Valid && sources.String != "" {
			if err := json.Unmarshal([]byte(sources.String), &resp.Sources); err != nil {
				return nil, fmt.Errorf("unmarshal sources: %w", err)
			}
		}
		out = append(out, &resp)
	}
	return out, rows.Err()
}
