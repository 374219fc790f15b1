// Package roundtable 圆桌讨论的纯文本逻辑：话题增强解析、轮次提示词、导出格式、朗读文本清洗。
// 本包不做任何网络或存储操作。
package roundtable

// TopicType 话题类型
type TopicType string

const (
	TopicPrediction    TopicType = "prediction"
	TopicOpinion       TopicType = "opinion"
	TopicComparison    TopicType = "comparison"
	TopicTrendAnalysis TopicType = "trend_analysis"
	TopicOpenQuestion  TopicType = "open_question"
)

// TopicTypes 五种话题类型（顺序固定）
var TopicTypes = []TopicType{
	TopicPrediction,
	TopicOpinion,
	TopicComparison,
	TopicTrendAnalysis,
	TopicOpenQuestion,
}

// DefaultFrameworks 各话题类型对应的分析框架
var DefaultFrameworks = map[TopicType]string{
	TopicPrediction:    "scenario analysis, 1st/2nd order effects",
	TopicOpinion:       "steel man vs straw man",
	TopicComparison:    "strongest case for each side",
	TopicTrendAnalysis: "timeline framing, recent context",
	TopicOpenQuestion:  "multiple angles, trade-offs",
}

// 创建对话时未指定类型/框架的默认值
const (
	DefaultTopicType = TopicOpenQuestion
	DefaultFramework = "multiple_angles"
)

// IsValid 是否为已知话题类型
func (t TopicType) IsValid() bool {
	_, ok := DefaultFrameworks[t]
	return ok
}

// DisplayNames 模型标识到展示名称的映射
type DisplayNames map[string]string

// Name 返回展示名称，未知模型返回标识本身
func (d DisplayNames) Name(key string) string {
	if name, ok := d[key]; ok && name != "" {
		return name
	}
	return key
}
