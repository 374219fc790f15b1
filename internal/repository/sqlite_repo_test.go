package repository

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"roundtable/internal/model"
	"roundtable/internal/pkg/sqlite"
)

func newTestRepo(t *testing.T) *SQLiteConversationRepo {
	db, err := sqlite.Open(context.Background(), sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteConversationRepo(db)
}

func newConversation(id string, createdAt time.Time) *model.Conversation {
	return &model.Conversation{
		ID:              id,
		CreatedAt:       createdAt,
		RawInput:        "raw " + id,
		AugmentedPrompt: "augmented " + id,
		TopicType:       "opinion",
		Framework:       "steel man vs straw man",
		Models:          []string{"claude", "gpt4"},
	}
}

func TestSQLiteConversationRepo(t *testing.T) {
	Convey("SQLite 对话仓库", t, func() {
		ctx := context.Background()
		repo := newTestRepo(t)
		base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

		So(repo.CreateConversation(ctx, newConversation("c1", base)), ShouldBeNil)

		Convey("查询对话及模型列表", func() {
			conv, err := repo.GetConversation(ctx, "c1")
			So(err, ShouldBeNil)
			So(conv.RawInput, ShouldEqual, "raw c1")
			So(conv.Models, ShouldResemble, []string{"claude", "gpt4"})
			So(conv.CreatedAt.Equal(base), ShouldBeTrue)
			So(conv.Responses, ShouldBeEmpty)
		})

		Convey("不存在的对话返回 ErrNotFound", func() {
			_, err := repo.GetConversation(ctx, "missing")
			So(err, ShouldEqual, ErrNotFound)
		})

		Convey("同一轮同一模型只能有一条回复", func() {
			resp := &model.Response{ID: "r1", ConversationID: "c1", Round: 1, Model: "claude", Content: "first"}
			So(repo.CreateResponse(ctx, resp), ShouldBeNil)

			dup := &model.Response{ID: "r2", ConversationID: "c1", Round: 1, Model: "claude", Content: "second"}
			So(repo.CreateResponse(ctx, dup), ShouldEqual, ErrResponseExists)

			other := &model.Response{ID: "r3", ConversationID: "c1", Round: 2, Model: "claude", Content: "round two"}
			So(repo.CreateResponse(ctx, other), ShouldBeNil)

			found, err := repo.FindResponse(ctx, "c1", 1, "claude")
			So(err, ShouldBeNil)
			So(found.Content, ShouldEqual, "first")

			_, err = repo.FindResponse(ctx, "c1", 1, "gpt4")
			So(err, ShouldEqual, ErrNotFound)
		})

		Convey("来源以 JSON 保存，为空时为 NULL", func() {
			withSources := &model.Response{
				ID: "r1", ConversationID: "c1", Round: 1, Model: "gpt4", Content: "x",
				Sources: []model.Source{{URL: "https://a.example", Title: "A"}},
			}
			So(repo.CreateResponse(ctx, withSources), ShouldBeNil)
			So(repo.CreateResponse(ctx, &model.Response{ID: "r2", ConversationID: "c1", Round: 1, Model: "claude", Content: "y"}), ShouldBeNil)

			list, err := repo.ListResponses(ctx, "c1", 1)
			So(err, ShouldBeNil)
			So(len(list), ShouldEqual, 2)
			So(list[0].Model, ShouldEqual, "gpt4")
			So(list[0].Sources, ShouldResemble, []model.Source{{URL: "https://a.example", Title: "A"}})
			So(list[1].Sources, ShouldBeNil)

			var nulls int
			err = repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM responses WHERE sources IS NULL`).Scan(&nulls)
			So(err, ShouldBeNil)
			So(nulls, ShouldEqual, 1)
		})

		Convey("对话详情中的回复按轮次排序", func() {
			So(repo.CreateResponse(ctx, &model.Response{ID: "a", ConversationID: "c1", Round: 2, Model: "claude", Content: "r2"}), ShouldBeNil)
			So(repo.CreateResponse(ctx, &model.Response{ID: "b", ConversationID: "c1", Round: 1, Model: "gpt4", Content: "r1"}), ShouldBeNil)

			conv, err := repo.GetConversation(ctx, "c1")
			So(err, ShouldBeNil)
			So(len(conv.Responses), ShouldEqual, 2)
			So(conv.Responses[0].Round, ShouldEqual, 1)
			So(conv.Responses[1].Round, ShouldEqual, 2)
		})

		Convey("列表按创建时间倒序并受 limit 限制", func() {
			for i := 1; i <= 3; i++ {
				c := newConversation("n"+string(rune('0'+i)), base.Add(time.Duration(i)*time.Hour))
				So(repo.CreateConversation(ctx, c), ShouldBeNil)
			}

			list, err := repo.ListConversations(ctx, 2)
			So(err, ShouldBeNil)
			So(len(list), ShouldEqual, 2)
			So(list[0].ID, ShouldEqual, "n3")
			So(list[1].ID, ShouldEqual, "n2")

			all, err := repo.ListConversations(ctx, 0)
			So(err, ShouldBeNil)
			So(len(all), ShouldEqual, 4)
			So(all[3].ID, ShouldEqual, "c1")
		})

		Convey("删除对话同时删除回复", func() {
			So(repo.CreateResponse(ctx, &model.Response{ID: "r1", ConversationID: "c1", Round: 1, Model: "claude", Content: "x"}), ShouldBeNil)
			So(repo.DeleteConversation(ctx, "c1"), ShouldBeNil)

			_, err := repo.GetConversation(ctx, "c1")
			So(err, ShouldEqual, ErrNotFound)
			list, err := repo.ListResponses(ctx, "c1", 1)
			So(err, ShouldBeNil)
			So(list, ShouldBeEmpty)

			So(repo.DeleteConversation(ctx, "c1"), ShouldEqual, ErrNotFound)
		})
	})
}
