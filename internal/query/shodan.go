package query

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"shodan_gt_report/internal/model"
)

const defaultBaseURL = "https://api.shodan.io"

// APIError 表示 Shodan 返回的 API 级错误（区别于传输错误）
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("shodan API error: %s", e.Message)
	}
	return fmt.Sprintf("shodan API error: HTTP %d", e.StatusCode)
}

// SearchResponse 定义搜索接口的返回结构
type SearchResponse struct {
	Matches []model.HostMatch `json:"matches"`
	Total   int               `json:"total"`
}

// Client 是 Shodan REST API 客户端
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// Option 用于定制客户端
type Option func(*Client)

// WithBaseURL 覆盖API地址（测试用）
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient 覆盖底层HTTP客户端
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient 创建客户端
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// buildSearchParams 构造搜索请求参数
func buildSearchParams(apiKey, query string, page, pageSize int) url.Values {
	params := url.Values{}
	params.Set("key", apiKey)
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(pageSize))
	return params
}

// Search 执行一次分页搜索。
// 非200响应或带error字段的响应转成 *APIError 返回。
func (c *Client) Search(query string, page, pageSize int) (*SearchResponse, error) {
	params := buildSearchParams(c.apiKey, query, page, pageSize)
	reqURL := c.baseURL + "/shodan/host/search?" + params.Encode()

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read response failed: %w", err)
	}

	// 检查API错误：错误体格式不固定，用gjson取error字段
	if msg := gjson.GetBytes(respBody, "error"); msg.Exists() {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg.String()}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(respBody, &searchResp); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	return &searchResp, nil
}
