package providers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tidwall/gjson"
)

const DefaultBaseURL = "https://api.openai.com/v1"

// ErrUnexpectedShape means a 2xx response had no string at
// choices[0].message.content.
var ErrUnexpectedShape = errors.New("openai response missing choices[0].message.content")

// OpenAIAdapter talks to the chat completions endpoint through the official
// SDK. Retries are disabled: each ChatCompletion is exactly one HTTP call.
type OpenAIAdapter struct {
	client openai.Client
}

type OpenAIOption func(*openaiConfig)

type openaiConfig struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func WithAPIKey(key string) OpenAIOption {
	return func(c *openaiConfig) { c.apiKey = key }
}

// WithBaseURL points the adapter at another OpenAI-compatible endpoint.
func WithBaseURL(url string) OpenAIOption {
	return func(c *openaiConfig) { c.baseURL = url }
}

// WithTimeout bounds a single outbound call.
func WithTimeout(d time.Duration) OpenAIOption {
	return func(c *openaiConfig) { c.timeout = d }
}

func WithHTTPClient(hc *http.Client) OpenAIOption {
	return func(c *openaiConfig) { c.httpClient = hc }
}

func NewOpenAIAdapter(opts ...OpenAIOption) (*OpenAIAdapter, error) {
	cfg := openaiConfig{baseURL: DefaultBaseURL}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.apiKey == "" {
		return nil, errors.New("openai adapter: api key is required")
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(cfg.apiKey),
		option.WithBaseURL(strings.TrimRight(cfg.baseURL, "/") + "/"),
		option.WithMaxRetries(0),
		option.WithMiddleware(captureRaw),
	}
	if cfg.timeout > 0 {
		clientOpts = append(clientOpts, option.WithRequestTimeout(cfg.timeout))
	}
	if cfg.httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(cfg.httpClient))
	}

	return &OpenAIAdapter{client: openai.NewClient(clientOpts...)}, nil
}

func (a *OpenAIAdapter) Key() string { return "openai" }

func (a *OpenAIAdapter) ChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
	raw := &rawResponse{}
	ctx = context.WithValue(ctx, rawResponseKey{}, raw)

	_, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    req.Model,
		Messages: toOpenAIMessages(req.Messages),
	})

	// The captured response wins over however the SDK chose to report it:
	// error statuses keep the provider's raw body, and a well-formed 2xx body
	// is accepted whatever Content-Type it was served with.
	if raw.status >= 300 {
		return "", &UpstreamError{Status: raw.status, Body: string(raw.body)}
	}
	if raw.status == 0 {
		if err == nil {
			err = errors.New("openai: no response captured")
		}
		return "", err
	}

	content := gjson.GetBytes(raw.body, "choices.0.message.content")
	if content.Type == gjson.String {
		return content.String(), nil
	}
	if err != nil {
		return "", err
	}
	return "", ErrUnexpectedShape
}

func toOpenAIMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, len(msgs))
	for i, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out[i] = openai.SystemMessage(m.Content)
		default:
			out[i] = openai.UserMessage(m.Content)
		}
	}
	return out
}

// --- raw response capture ---

type rawResponseKey struct{}

type rawResponse struct {
	status int
	body   []byte
}

// captureRaw is an SDK middleware that records the status and body of the
// response for the call that owns the context, then hands the SDK an
// identical body to decode.
func captureRaw(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	resp, err := next(req)
	if err != nil || resp == nil {
		return resp, err
	}
	raw, ok := req.Context().Value(rawResponseKey{}).(*rawResponse)
	if !ok {
		return resp, nil
	}

	b, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("read openai response: %w", readErr)
	}
	raw.status = resp.StatusCode
	raw.body = b
	resp.Body = io.NopCloser(bytes.NewReader(b))
	return resp, nil
}
