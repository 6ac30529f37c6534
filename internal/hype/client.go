// Package hype 为中奖者生成一句祝福语
//
// 通过 OpenAI 兼容的 Chat Completions 接口请求文本；没有凭据或请求失败时
// 返回本地兜底文案，调用方永远拿到一句可展示的话。
package hype

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// 默认接入 Gemini 的 OpenAI 兼容端点
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel   = "gemini-3-flash-preview"
	DefaultTimeout = 15 * time.Second
)

// Config 祝福语客户端配置
type Config struct {
	// APIKey 为空时不发起网络请求
	APIKey  string
	BaseURL string
	Model   string
	// Timeout 单次请求超时
	Timeout time.Duration
	// HTTPClient 可选，测试时注入
	HTTPClient *http.Client
}

// Client 祝福语客户端
type Client struct {
	cfg Config
	api *openai.Client // 无凭据时为 nil
}

// NewClient 创建客户端；未设置的字段使用默认值
func NewClient(cfg Config) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{cfg: cfg}
	if cfg.APIKey == "" {
		log.Printf("[HypeClient] No API key configured, using local messages")
		return c
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	api := openai.NewClient(opts...)
	c.api = &api
	return c
}

// Enabled 是否配置了凭据
func (c *Client) Enabled() bool {
	return c.api != nil
}

// Model 返回生效的模型名
func (c *Client) Model() string {
	return c.cfg.Model
}

// FetchHype 为 name 生成一句祝福语，永不失败
func (c *Client) FetchHype(ctx context.Context, name string) string {
	if c.api == nil {
		return NoKeyMessage(name)
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(Prompt(name)),
		},
	})
	if err != nil {
		log.Printf("[HypeClient] Warning: completion request failed: %v", err)
		return ErrorMessage(name)
	}

	text := ""
	if len(resp.Choices) > 0 {
		text = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	if text == "" {
		return EmptyMessage(name)
	}
	return text
}

// Prompt 构造发送给模型的提示词
func Prompt(name string) string {
	return fmt.Sprintf("Winner: %s. Write one super energetic, lucky sentence (max 10 words) to celebrate their win.", name)
}

// NoKeyMessage 未配置凭据时的文案
func NoKeyMessage(name string) string {
	return fmt.Sprintf("Hooray for %s! Enjoy your win!", name)
}

// EmptyMessage 模型返回空文本时的文案
func EmptyMessage(name string) string {
	return fmt.Sprintf("The spotlight is on you, %s!", name)
}

// ErrorMessage 请求失败时的文案
func ErrorMessage(name string) string {
	return fmt.Sprintf("Fortune favors the bold! Congratulations, %s!", name)
}
