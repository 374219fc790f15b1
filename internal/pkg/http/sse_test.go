package http

import (
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteSSE(t *testing.T) {
	Convey("WriteSSE 输出标准帧格式", t, func() {
		rec := httptest.NewRecorder()
		SetSSEHeaders(rec)

		err := WriteSSE(rec, "token", map[string]any{"model": "claude", "content": "Hi"})
		So(err, ShouldBeNil)
		err = WriteSSE(rec, "done", map[string]any{})
		So(err, ShouldBeNil)

		So(rec.Header().Get("Content-Type"), ShouldEqual, "text/event-stream")
		So(rec.Body.String(), ShouldEqual,
			"event: token\ndata: {\"content\":\"Hi\",\"model\":\"claude\"}\n\n"+
				"event: done\ndata: {}\n\n")
		So(rec.Flushed, ShouldBeTrue)
	})
}
