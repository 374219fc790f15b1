package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"roundtable/internal/pkg/roundtable"
)

const (
	DefaultBaseURL = "https://api.search.brave.com/res/v1/web/search"
	DefaultCount   = 5
)

// Config Brave 搜索配置
type Config struct {
	APIKey  string
	BaseURL string
	Count   int
}

// BraveClient Brave Web Search 客户端
// 搜索只是增强手段：未配置 key 或请求失败都返回空结果，不向上报错
type BraveClient struct {
	apiKey     string
	baseURL    string
	count      int
	httpClient *http.Client
}

// NewBraveClient 创建 Brave 搜索客户端
func NewBraveClient(cfg Config) *BraveClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	count := cfg.Count
	if count <= 0 {
		count = DefaultCount
	}
	return &BraveClient{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		count:   count,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Enabled 是否配置了 API key
func (c *BraveClient) Enabled() bool {
	return c != nil && c.apiKey != ""
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search 搜索网页，任何失败都返回 nil
func (c *BraveClient) Search(ctx context.Context, query string) []roundtable.SearchResult {
	if !c.Enabled() || strings.TrimSpace(query) == "" {
		return nil
	}

	results, err := c.search(ctx, query)
	if err != nil {
		log.Warn().Err(err).Msg("brave search failed")
		return nil
	}
	return results
}

func (c *BraveClient) search(ctx context.Context, query string) ([]roundtable.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(c.count))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var parsed braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]roundtable.SearchResult, 0, len(parsed.Web.Results))
	for _, r := range parsed.Web.Results {
		results = append(results, roundtable.SearchResult{
			Title:       r.Title,
			URL:         r.URL,
			Description: r.Description,
		})
	}
	return results, nil
}
