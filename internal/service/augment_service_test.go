package service

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAugmentService(t *testing.T) {
	Convey("单一分类增强", t, func() {
		p := &fakeProvider{reply: "```json\n{\"topic_type\":\"prediction\",\"framework\":\"scenario analysis\",\"augmented_prompt\":\"What happens next?\"}\n```"}
		svc := NewAugmentService(p, 0)

		res, err := svc.Augment(context.Background(), "  will it rain  ")
		So(err, ShouldBeNil)
		So(res.RawInput, ShouldEqual, "will it rain")
		So(res.TopicType, ShouldEqual, "prediction")
		So(res.Framework, ShouldEqual, "scenario analysis")
		So(res.AugmentedPrompt, ShouldEqual, "What happens next?")

		req := p.LastRequest()
		So(req.MaxTokens, ShouldEqual, singleAugmentMaxTokens)
		So(req.Prompt, ShouldContainSubstring, "User's raw input: \"will it rain\"")
	})

	Convey("五种类型同时增强", t, func() {
		p := &fakeProvider{reply: `{
			"recommended": "opinion",
			"augmentations": {
				"prediction": {"framework": "f1", "augmented_prompt": "p1"},
				"opinion": {"framework": "f2", "augmented_prompt": "p2"},
				"comparison": {"framework": "f3", "augmented_prompt": "p3"},
				"trend_analysis": {"framework": "f4", "augmented_prompt": "p4"},
				"open_question": {"framework": "f5", "augmented_prompt": "p5"}
			}
		}`}
		svc := NewAugmentService(p, 0)

		res, err := svc.AugmentAll(context.Background(), "remote work")
		So(err, ShouldBeNil)
		So(res.Recommended, ShouldEqual, "opinion")
		So(len(res.Augmentations), ShouldEqual, 5)
		So(res.Augmentations["comparison"].AugmentedPrompt, ShouldEqual, "p3")
		So(p.LastRequest().MaxTokens, ShouldEqual, multiAugmentMaxTokens)
	})

	Convey("单一分类增强使用配置的回复上限", t, func() {
		reply := `{"topic_type":"opinion","framework":"f","augmented_prompt":"p"}`
		p := &fakeProvider{reply: reply}
		svc := NewAugmentService(p, 800)

		_, err := svc.Augment(context.Background(), "topic")
		So(err, ShouldBeNil)
		So(p.LastRequest().MaxTokens, ShouldEqual, 800)

		p.reply = `{"recommended":"opinion","augmentations":{"prediction":{"framework":"f","augmented_prompt":"p"},"opinion":{"framework":"f","augmented_prompt":"p"},"comparison":{"framework":"f","augmented_prompt":"p"},"trend_analysis":{"framework":"f","augmented_prompt":"p"},"open_question":{"framework":"f","augmented_prompt":"p"}}}`
		_, err = svc.AugmentAll(context.Background(), "topic")
		So(err, ShouldBeNil)
		So(p.LastRequest().MaxTokens, ShouldEqual, 3200)
	})

	Convey("错误映射", t, func() {
		ctx := context.Background()

		Convey("空输入", func() {
			_, err := NewAugmentService(&fakeProvider{}, 0).Augment(ctx, "   ")
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		})

		Convey("未配置增强模型", func() {
			_, err := NewAugmentService(nil, 0).Augment(ctx, "topic")
			So(errors.Is(err, ErrUnavailable), ShouldBeTrue)
		})

		Convey("模型返回无法解析的内容", func() {
			_, err := NewAugmentService(&fakeProvider{reply: "sure, here you go"}, 0).Augment(ctx, "topic")
			So(errors.Is(err, ErrUpstream), ShouldBeTrue)

			_, err = NewAugmentService(&fakeProvider{reply: `{"topic_type":"poem","framework":"x","augmented_prompt":"y"}`}, 0).Augment(ctx, "topic")
			So(errors.Is(err, ErrUpstream), ShouldBeTrue)
		})

		Convey("模型调用失败只调用一次", func() {
			p := &fakeProvider{err: errors.New("boom")}
			_, err := NewAugmentService(p, 0).AugmentAll(ctx, "topic")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "boom")
			So(p.Calls(), ShouldEqual, 1)
		})
	})
}
