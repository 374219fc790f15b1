package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"roundtable/internal/model"
)

func TestConversationService_Create(t *testing.T) {
	Convey("创建对话", t, func() {
		f := newFixture(t)
		ctx := context.Background()

		Convey("缺省类型与框架", func() {
			conv, err := f.service.Create(ctx, &model.CreateConversationRequest{
				AugmentedPrompt: "  prompt  ",
				Models:          []string{"claude", "gpt4", "claude"},
			})
			So(err, ShouldBeNil)
			So(conv.ID, ShouldNotBeEmpty)
			So(conv.AugmentedPrompt, ShouldEqual, "prompt")
			So(conv.TopicType, ShouldEqual, "open_question")
			So(conv.Framework, ShouldEqual, "multiple_angles")
			So(conv.Models, ShouldResemble, []string{"claude", "gpt4"})

			stored, err := f.service.Get(ctx, conv.ID)
			So(err, ShouldBeNil)
			So(stored.Models, ShouldResemble, []string{"claude", "gpt4"})
		})

		Convey("未知模型被拒绝", func() {
			_, err := f.service.Create(ctx, &model.CreateConversationRequest{
				AugmentedPrompt: "prompt",
				Models:          []string{"claude", "llama"},
			})
			So(errors.Is(err, ErrUnknownModel), ShouldBeTrue)
		})

		Convey("缺少提示词或模型被拒绝", func() {
			_, err := f.service.Create(ctx, &model.CreateConversationRequest{Models: []string{"claude"}})
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

			_, err = f.service.Create(ctx, &model.CreateConversationRequest{AugmentedPrompt: "prompt"})
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		})
	})
}

func TestConversationService_BroadcastRound(t *testing.T) {
	Convey("整轮广播", t, func() {
		f := newFixture(t)
		ctx := context.Background()
		conv := f.create(t, "claude", "gpt4", "gemini")

		resp, err := f.service.BroadcastRound(ctx, conv.ID, 1, true)
		So(err, ShouldBeNil)
		So(len(resp.Results), ShouldEqual, 3)

		Convey("单个模型失败不影响其他模型", func() {
			byModel := map[string]*model.RoundResult{}
			for _, r := range resp.Results {
				byModel[r.Model] = r
			}
			So(byModel["claude"].Content, ShouldEqual, "Claude essay")
			So(byModel["claude"].Error, ShouldBeEmpty)
			So(byModel["gpt4"].Content, ShouldEqual, "GPT essay")
			So(byModel["gemini"].Error, ShouldContainSubstring, "quota exceeded")
			So(byModel["gemini"].ModelName, ShouldEqual, "Gemini")

			saved, err := f.repo.ListResponses(ctx, conv.ID, 1)
			So(err, ShouldBeNil)
			So(len(saved), ShouldEqual, 2)
		})

		Convey("结果顺序与对话模型顺序一致，来源已去重", func() {
			So(resp.Results[0].Model, ShouldEqual, "claude")
			So(resp.Results[2].Model, ShouldEqual, "gemini")
			So(len(resp.Results[0].Sources), ShouldEqual, 1)
			So(resp.Results[1].Sources, ShouldNotBeNil)
		})

		Convey("第一轮带系统提示词和搜索词", func() {
			req := f.providers["gpt4"].LastRequest()
			So(req.System, ShouldContainSubstring, "600–800 words")
			So(req.SearchQuery, ShouldEqual, "Will remote work last?")
			So(req.Prompt, ShouldEqual, "Consider the durability of remote work.")
		})

		Convey("第二轮提示词排除自身并包含其他模型", func() {
			_, err := f.service.BroadcastRound(ctx, conv.ID, 2, true)
			So(err, ShouldBeNil)

			req := f.providers["gpt4"].LastRequest()
			So(req.SearchQuery, ShouldBeEmpty)
			So(req.System, ShouldContainSubstring, "300–500 words")
			So(req.Prompt, ShouldContainSubstring, "Your initial response was:\nGPT essay")
			So(req.Prompt, ShouldContainSubstring, "### Claude\nClaude essay")
			So(req.Prompt, ShouldNotContainSubstring, "### GPT-4")
			So(strings.Count(req.Prompt, "### "), ShouldEqual, 1)
		})

		Convey("已有回复的模型不会重复调用", func() {
			_, err := f.service.BroadcastRound(ctx, conv.ID, 1, true)
			So(err, ShouldBeNil)
			So(f.providers["claude"].Calls(), ShouldEqual, 1)
			So(f.providers["gemini"].Calls(), ShouldEqual, 2)
		})
	})

	Convey("轮次与对话校验", t, func() {
		f := newFixture(t)
		ctx := context.Background()

		_, err := f.service.BroadcastRound(ctx, "missing", 1, true)
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)

		conv := f.create(t, "claude")
		_, err = f.service.BroadcastRound(ctx, conv.ID, 3, true)
		So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
	})
}

func TestConversationService_Respond(t *testing.T) {
	Convey("单个模型作答", t, func() {
		f := newFixture(t)
		ctx := context.Background()
		conv := f.create(t, "claude", "gpt4")

		Convey("重复请求返回已保存的回复", func() {
			first, err := f.service.Respond(ctx, conv.ID, "claude", 1, true)
			So(err, ShouldBeNil)
			So(first.Content, ShouldEqual, "Claude essay")
			So(first.Provider, ShouldEqual, "anthropic")
			So(first.ModelID, ShouldEqual, "claude-sonnet-4-6")

			second, err := f.service.Respond(ctx, conv.ID, "claude", 1, true)
			So(err, ShouldBeNil)
			So(second.Content, ShouldEqual, "Claude essay")
			So(f.providers["claude"].Calls(), ShouldEqual, 1)
		})

		Convey("关闭 essay 模式时不发送系统提示词", func() {
			_, err := f.service.Respond(ctx, conv.ID, "gpt4", 1, false)
			So(err, ShouldBeNil)
			So(f.providers["gpt4"].LastRequest().System, ShouldBeEmpty)
		})

		Convey("没有第一轮回复时第二轮使用占位文本", func() {
			_, err := f.service.Respond(ctx, conv.ID, "gpt4", 2, true)
			So(err, ShouldBeNil)
			So(f.providers["gpt4"].LastRequest().Prompt, ShouldContainSubstring, "(no initial response)")
		})

		Convey("模型失败体现在结果中", func() {
			res, err := f.service.Respond(ctx, conv.ID, "gemini", 1, true)
			So(err, ShouldBeNil)
			So(res.Error, ShouldNotBeEmpty)
		})

		Convey("参数校验", func() {
			_, err := f.service.Respond(ctx, conv.ID, "claude", 0, true)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

			_, err = f.service.Respond(ctx, conv.ID, "llama", 1, true)
			So(errors.Is(err, ErrUnknownModel), ShouldBeTrue)

			_, err = f.service.Respond(ctx, "missing", "claude", 1, true)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)

			_, err = f.service.Respond(ctx, "", "claude", 1, true)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

			_, err = f.service.BroadcastRound(ctx, "  ", 1, true)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		})
	})

	Convey("对话快照过期时第二轮仍能看到第一轮回复", t, func() {
		f := newFixture(t)
		ctx := context.Background()
		conv := f.create(t, "claude", "gpt4")

		svc := NewConversationService(&snapshotRepo{SQLiteConversationRepo: f.repo}, f.service.registry)

		_, err := svc.Respond(ctx, conv.ID, "claude", 1, true)
		So(err, ShouldBeNil)
		_, err = svc.Respond(ctx, conv.ID, "gpt4", 1, true)
		So(err, ShouldBeNil)

		_, err = svc.Respond(ctx, conv.ID, "claude", 2, true)
		So(err, ShouldBeNil)
		prompt := f.providers["claude"].LastRequest().Prompt
		So(prompt, ShouldContainSubstring, "### GPT-4\nGPT essay")
		So(prompt, ShouldContainSubstring, "Your initial response was:\nClaude essay")
	})
}

func TestConversationService_StreamRound(t *testing.T) {
	Convey("流式执行两轮", t, func() {
		f := newFixture(t)
		ctx := context.Background()
		conv := f.create(t, "claude", "gpt4", "gemini")

		events, err := f.service.StreamRound(ctx, conv.ID, []int{2, 1}, true)
		So(err, ShouldBeNil)

		var all []model.StreamEvent
		for ev := range events {
			all = append(all, ev)
		}

		index := func(name string, round int) int {
			for i, ev := range all {
				if ev.Event == name && ev.Round == round {
					return i
				}
			}
			return -1
		}
		count := func(name string, round int) int {
			n := 0
			for _, ev := range all {
				if ev.Event == name && ev.Round == round {
					n++
				}
			}
			return n
		}

		So(all[0].Event, ShouldEqual, model.EventRoundStart)
		So(all[0].Round, ShouldEqual, 1)
		So(all[len(all)-1].Event, ShouldEqual, model.EventDone)
		So(all[len(all)-1].ConversationID, ShouldEqual, conv.ID)

		So(index(model.EventRoundComplete, 1), ShouldBeLessThan, index(model.EventRoundStart, 2))
		So(count(model.EventResponse, 1), ShouldEqual, 2)
		So(count(model.EventError, 1), ShouldEqual, 1)
		So(count(model.EventToken, 1), ShouldEqual, 4)
		So(count(model.EventResponse, 2), ShouldEqual, 2)

		// 第二轮能看到第一轮刚写入的回复
		So(f.providers["claude"].LastRequest().Prompt, ShouldContainSubstring, "### GPT-4\nGPT essay")
	})

	Convey("默认只跑第一轮", t, func() {
		f := newFixture(t)
		conv := f.create(t, "gpt4")

		events, err := f.service.StreamRound(context.Background(), conv.ID, nil, true)
		So(err, ShouldBeNil)
		var rounds []int
		for ev := range events {
			if ev.Event == model.EventRoundStart {
				rounds = append(rounds, ev.Round)
			}
		}
		So(rounds, ShouldResemble, []int{1})
	})

	Convey("非法轮次与不存在的对话", t, func() {
		f := newFixture(t)
		_, err := f.service.StreamRound(context.Background(), "missing", nil, true)
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)

		_, err = f.service.StreamRound(context.Background(), "missing", []int{1, 5}, true)
		So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
	})
}

func TestConversationService_Export(t *testing.T) {
	Convey("导出", t, func() {
		f := newFixture(t)
		ctx := context.Background()
		conv := f.create(t, "claude", "gpt4")
		_, err := f.service.BroadcastRound(ctx, conv.ID, 1, true)
		So(err, ShouldBeNil)

		md, err := f.service.Export(ctx, conv.ID, "")
		So(err, ShouldBeNil)
		So(md.Format, ShouldEqual, ExportMarkdown)
		So(md.Body, ShouldContainSubstring, "### Claude\n\nClaude essay")

		txt, err := f.service.Export(ctx, conv.ID, ExportText)
		So(err, ShouldBeNil)
		So(txt.Body, ShouldContainSubstring, "[GPT-4]\nGPT essay")

		thread, err := f.service.Export(ctx, conv.ID, ExportThread)
		So(err, ShouldBeNil)
		So(thread.Posts[0], ShouldStartWith, "Will remote work last?")
		So(thread.Posts, ShouldContain, "Claude:\nClaude essay")

		_, err = f.service.Export(ctx, conv.ID, "pdf")
		So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

		_, err = f.service.Export(ctx, "missing", ExportText)
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)
	})
}

func TestConversationService_ListDelete(t *testing.T) {
	Convey("列表与删除", t, func() {
		f := newFixture(t)
		ctx := context.Background()
		conv := f.create(t, "claude")

		list, err := f.service.List(ctx)
		So(err, ShouldBeNil)
		So(len(list), ShouldEqual, 1)
		So(list[0].ID, ShouldEqual, conv.ID)
		So(list[0].TopicType, ShouldEqual, "prediction")

		So(f.service.Delete(ctx, conv.ID), ShouldBeNil)
		So(errors.Is(f.service.Delete(ctx, conv.ID), ErrNotFound), ShouldBeTrue)
	})
}
