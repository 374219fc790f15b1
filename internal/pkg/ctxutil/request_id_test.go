package ctxutil

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRequestID(t *testing.T) {
	Convey("请求 ID 随 context 传递", t, func() {
		_, ok := GetRequestID(context.Background())
		So(ok, ShouldBeFalse)

		ctx := WithRequestID(context.Background(), "req-1")
		id, ok := GetRequestID(ctx)
		So(ok, ShouldBeTrue)
		So(id, ShouldEqual, "req-1")

		// 脱离取消后仍可读取
		id, ok = GetRequestID(context.WithoutCancel(ctx))
		So(ok, ShouldBeTrue)
		So(id, ShouldEqual, "req-1")

		So(Logger(ctx), ShouldNotBeNil)
		So(Logger(context.Background()), ShouldNotBeNil)
	})
}
