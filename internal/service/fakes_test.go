package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"roundtable/internal/ai"
	"roundtable/internal/model"
	"roundtable/internal/pkg/sqlite"
	"roundtable/internal/repository"
)

type fakeProvider struct {
	mu       sync.Mutex
	reply    string
	tokens   []string
	sources  []model.Source
	err      error
	calls    int
	requests []*ai.Request
}

func (p *fakeProvider) record(req *ai.Request) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.requests = append(p.requests, req)
	return p.err
}

func (p *fakeProvider) Generate(ctx context.Context, req *ai.Request) (*ai.Result, error) {
	if err := p.record(req); err != nil {
		return nil, err
	}
	return &ai.Result{Content: p.reply, Sources: p.sources}, nil
}

func (p *fakeProvider) Stream(ctx context.Context, req *ai.Request, onToken ai.TokenFunc) (*ai.Result, error) {
	if err := p.record(req); err != nil {
		return nil, err
	}
	for _, tok := range p.tokens {
		onToken(tok)
	}
	return &ai.Result{Content: p.reply, Sources: p.sources}, nil
}

func (p *fakeProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *fakeProvider) LastRequest() *ai.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.requests) == 0 {
		return nil
	}
	return p.requests[len(p.requests)-1]
}

type fixture struct {
	repo      *repository.SQLiteConversationRepo
	service   *ConversationService
	providers map[string]*fakeProvider
}

func newFixture(t *testing.T) *fixture {
	db, err := sqlite.Open(context.Background(), sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	providers := map[string]*fakeProvider{
		"claude": {reply: "Claude essay", tokens: []string{"Claude ", "essay"}, sources: []model.Source{
			{URL: "https://a.example", Title: "A"},
			{URL: "https://a.example", Title: "A dup"},
		}},
		"gpt4":   {reply: "GPT essay", tokens: []string{"GPT ", "essay"}},
		"gemini": {err: errors.New("quota exceeded")},
	}
	registry := ai.NewRegistry([]*ai.Participant{
		{ID: "claude", Name: "Claude", Provider: "anthropic", ModelID: "claude-sonnet-4-6", Backend: providers["claude"]},
		{ID: "gpt4", Name: "GPT-4", Provider: "openai", ModelID: "gpt-4o", Backend: providers["gpt4"]},
		{ID: "gemini", Name: "Gemini", Provider: "google", ModelID: "gemini-2.5-pro", Backend: providers["gemini"]},
	}, nil)

	repo := repository.NewSQLiteConversationRepo(db)
	return &fixture{
		repo:      repo,
		service:   NewConversationService(repo, registry),
		providers: providers,
	}
}

func (f *fixture) create(t *testing.T, models ...string) *model.Conversation {
	conv, err := f.service.Create(context.Background(), &model.CreateConversationRequest{
		RawInput:        "Will remote work last?",
		AugmentedPrompt: "Consider the durability of remote work.",
		TopicType:       "prediction",
		Framework:       "scenario analysis",
		Models:          models,
	})
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	return conv
}

// snapshotRepo 模拟读到写入前的对话详情缓存：GetConversation 不带任何回复
type snapshotRepo struct {
	*repository.SQLiteConversationRepo
}

func (r *snapshotRepo) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	conv, err := r.SQLiteConversationRepo.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	conv.Responses = nil
	return conv, nil
}
