package roundtable

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseAugmenterResponse(t *testing.T) {
	Convey("ParseAugmenterResponse 解析单一分类结果", t, func() {
		for _, topic := range TopicTypes {
			raw := fmt.Sprintf(`{"topic_type": %q, "framework": "fw-%s", "augmented_prompt": "prompt for %s"}`, topic, topic, topic)

			Convey(fmt.Sprintf("%s 无代码块", topic), func() {
				res, err := ParseAugmenterResponse(raw)
				So(err, ShouldBeNil)
				So(res.TopicType, ShouldEqual, topic)
				So(res.Framework, ShouldEqual, "fw-"+string(topic))
				So(res.AugmentedPrompt, ShouldEqual, "prompt for "+string(topic))
			})

			Convey(fmt.Sprintf("%s 带 json 代码块", topic), func() {
				res, err := ParseAugmenterResponse("```json\n" + raw + "\n```")
				So(err, ShouldBeNil)
				So(res.TopicType, ShouldEqual, topic)
				So(res.AugmentedPrompt, ShouldEqual, "prompt for "+string(topic))
			})

			Convey(fmt.Sprintf("%s 带无语言代码块和空白", topic), func() {
				res, err := ParseAugmenterResponse("  \n```\n" + raw + "\n```  \n")
				So(err, ShouldBeNil)
				So(res.TopicType, ShouldEqual, topic)
			})
		}

		Convey("非法 JSON 返回错误", func() {
			_, err := ParseAugmenterResponse("not json at all")
			So(err, ShouldNotBeNil)
		})

		Convey("未知类型返回错误", func() {
			_, err := ParseAugmenterResponse(`{"topic_type": "rant", "framework": "x", "augmented_prompt": "y"}`)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "rant")
		})

		Convey("空提示词返回错误", func() {
			_, err := ParseAugmenterResponse(`{"topic_type": "opinion", "framework": "x", "augmented_prompt": "  "}`)
			So(err, ShouldNotBeNil)
		})
	})
}

func multiJSON(recommended string, skip TopicType) string {
	entries := ""
	for _, t := range TopicTypes {
		if t == skip {
			continue
		}
		if entries != "" {
			entries += ","
		}
		entries += fmt.Sprintf(`%q: {"framework": "fw-%s", "augmented_prompt": "p-%s"}`, t, t, t)
	}
	return fmt.Sprintf(`{"recommended": %q, "augmentations": {%s}}`, recommended, entries)
}

func TestParseMultiAugmenterResponse(t *testing.T) {
	Convey("ParseMultiAugmenterResponse 解析五种类型", t, func() {
		Convey("完整结果", func() {
			res, err := ParseMultiAugmenterResponse("```json\n" + multiJSON("comparison", "") + "\n```")
			So(err, ShouldBeNil)
			So(res.Recommended, ShouldEqual, TopicComparison)
			So(len(res.Augmentations), ShouldEqual, 5)
			for _, topic := range TopicTypes {
				So(res.Augmentations[topic].Framework, ShouldEqual, "fw-"+string(topic))
				So(res.Augmentations[topic].AugmentedPrompt, ShouldEqual, "p-"+string(topic))
			}
		})

		Convey("缺少某一类型返回错误", func() {
			_, err := ParseMultiAugmenterResponse(multiJSON("opinion", TopicTrendAnalysis))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "trend_analysis")
		})

		Convey("推荐类型未知返回错误", func() {
			_, err := ParseMultiAugmenterResponse(multiJSON("whatever", ""))
			So(err, ShouldNotBeNil)
		})

		Convey("非法 JSON 返回错误", func() {
			_, err := ParseMultiAugmenterResponse("```json\n{broken\n```")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestBuildAugmenterPrompt(t *testing.T) {
	Convey("增强提示词包含原始输入与全部类型", t, func() {
		single := BuildAugmenterPrompt("Will AI replace doctors?")
		multi := BuildMultiAugmenterPrompt("Will AI replace doctors?")
		for _, topic := range TopicTypes {
			So(single, ShouldContainSubstring, string(topic))
			So(multi, ShouldContainSubstring, string(topic))
		}
		So(single, ShouldEndWith, `"Will AI replace doctors?"`)
		So(multi, ShouldContainSubstring, `"recommended"`)
	})
}
