package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig_Validate(t *testing.T) {
	Convey("Validate 检查端口、模式和模型列表", t, func() {
		cfg := &Config{
			Server: ServerConfig{Port: 8080, Mode: "release"},
			Models: DefaultModels(),
		}

		Convey("默认配置有效", func() {
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("非法端口", func() {
			cfg.Server.Port = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("非法模式", func() {
			cfg.Server.Mode = "prod"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("非法存储驱动", func() {
			cfg.Store.Driver = "postgres"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("重复的模型ID", func() {
			cfg.Models = append(cfg.Models, ModelConfig{ID: "claude", Provider: "anthropic", ModelID: "x"})
			So(cfg.Validate(), ShouldNotBeNil)
		})
	})
}

func TestConfig_ModelList(t *testing.T) {
	Convey("未配置模型时回退到默认四个模型", t, func() {
		cfg := &Config{}
		list := cfg.ModelList()
		So(len(list), ShouldEqual, 4)
		So(list[0].ID, ShouldEqual, "claude")

		cfg.Models = []ModelConfig{{ID: "solo", Provider: "openai", ModelID: "gpt-4o"}}
		So(len(cfg.ModelList()), ShouldEqual, 1)
	})
}
