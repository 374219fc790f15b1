package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"roundtable/internal/model"
)

const messageJSON = `{
  "id": "msg_01",
  "type": "message",
  "role": "assistant",
  "model": "claude-sonnet-4-6",
  "content": [
    {"type": "server_tool_use", "id": "srvtoolu_01", "name": "web_search", "input": {"query": "rates"}},
    {"type": "text", "text": "Hello ", "citations": [
      {"type": "web_search_result_location", "url": "https://a", "title": "A", "cited_text": "a", "encrypted_index": "e1"}
    ]},
    {"type": "text", "text": "world", "citations": [
      {"type": "web_search_result_location", "url": "https://a", "title": "A again", "cited_text": "a", "encrypted_index": "e2"},
      {"type": "web_search_result_location", "url": "https://b", "title": "B", "cited_text": "b", "encrypted_index": "e3"}
    ]}
  ],
  "stop_reason": "end_turn",
  "stop_sequence": null,
  "usage": {"input_tokens": 10, "output_tokens": 2}
}`

var streamEvents = []string{
	`{"type":"message_start","message":{"id":"msg_02","type":"message","role":"assistant","model":"claude-sonnet-4-6","content":[],"stop_reason":null,"stop_sequence":null,"usage":{"input_tokens":10,"output_tokens":0}}}`,
	`{"type":"content_block_start","index":0,"content_block":{"type":"text","text":""}}`,
	`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Hello "}}`,
	`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"world"}}`,
	`{"type":"content_block_stop","index":0}`,
	`{"type":"message_delta","delta":{"stop_reason":"end_turn","stop_sequence":null},"usage":{"output_tokens":2}}`,
	`{"type":"message_stop"}`,
}

// messagesServer 模拟 Messages API，记录收到的请求体
type messagesServer struct {
	mu     sync.Mutex
	bodies []map[string]any
	reply  string
}

func (s *messagesServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
		http.NotFound(w, r)
		return
	}
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	s.mu.Lock()
	s.bodies = append(s.bodies, body)
	s.mu.Unlock()

	if stream, _ := body["stream"].(bool); stream {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		for _, data := range streamEvents {
			var ev struct {
				Type string `json:"type"`
			}
			_ = json.Unmarshal([]byte(data), &ev)
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, s.reply)
}

func (s *messagesServer) lastBody() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.bodies) == 0 {
		return nil
	}
	return s.bodies[len(s.bodies)-1]
}

func TestAnthropicProvider(t *testing.T) {
	Convey("AnthropicProvider", t, func() {
		ctx := context.Background()
		backend := &messagesServer{reply: messageJSON}
		srv := httptest.NewServer(backend)
		defer srv.Close()

		p, err := NewAnthropicProvider("test-key", srv.URL+"/", "claude-sonnet-4-6", 0)
		So(err, ShouldBeNil)

		Convey("启用搜索时附带 web_search 工具，引用来源按 URL 去重", func() {
			res, err := p.Generate(ctx, &Request{System: "be brief", Prompt: "q", SearchQuery: "rates"})
			So(err, ShouldBeNil)
			So(res.Content, ShouldEqual, "Hello world")
			So(res.Sources, ShouldResemble, []model.Source{
				{URL: "https://a", Title: "A"},
				{URL: "https://b", Title: "B"},
			})

			body := backend.lastBody()
			So(body["model"], ShouldEqual, "claude-sonnet-4-6")
			So(body["max_tokens"], ShouldEqual, float64(defaultAnthropicMaxTokens))

			tools, ok := body["tools"].([]any)
			So(ok, ShouldBeTrue)
			So(len(tools), ShouldEqual, 1)
			tool := tools[0].(map[string]any)
			So(tool["type"], ShouldEqual, "web_search_20250305")
			So(tool["max_uses"], ShouldEqual, float64(webSearchMaxUses))

			system := body["system"].([]any)
			So(system[0].(map[string]any)["text"], ShouldEqual, "be brief")
		})

		Convey("没有搜索词时不附带工具和系统提示词", func() {
			_, err := p.Generate(ctx, &Request{Prompt: "q", MaxTokens: 300})
			So(err, ShouldBeNil)

			body := backend.lastBody()
			So(body, ShouldNotContainKey, "tools")
			So(body, ShouldNotContainKey, "system")
			So(body["max_tokens"], ShouldEqual, float64(300))
		})

		Convey("Stream 逐段回调文本增量并拼接结果", func() {
			var tokens []string
			res, err := p.Stream(ctx, &Request{Prompt: "q"}, func(tok string) {
				tokens = append(tokens, tok)
			})
			So(err, ShouldBeNil)
			So(tokens, ShouldResemble, []string{"Hello ", "world"})
			So(res.Content, ShouldEqual, "Hello world")
			So(backend.lastBody()["stream"], ShouldEqual, true)
		})

		Convey("空回复视为错误", func() {
			backend.reply = `{"id":"msg_03","type":"message","role":"assistant","model":"claude-sonnet-4-6","content":[{"type":"text","text":"  "}],"stop_reason":"end_turn","stop_sequence":null,"usage":{"input_tokens":1,"output_tokens":0}}`
			_, err := p.Generate(ctx, &Request{Prompt: "q"})
			So(err, ShouldEqual, ErrEmptyResponse)
		})
	})

	Convey("缺少凭证或模型时创建失败", t, func() {
		_, err := NewAnthropicProvider("", "", "claude-sonnet-4-6", 0)
		So(err, ShouldNotBeNil)
		_, err = NewAnthropicProvider("key", "", "", 0)
		So(err, ShouldNotBeNil)
	})
}
