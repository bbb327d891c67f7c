package providers

import (
	"context"
	"strconv"
)

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type Message struct {
	Role    Role
	Content string
}

type ChatRequest struct {
	Model    string
	Messages []Message
}

// Provider performs one synchronous chat completion and returns the text of
// the first choice. A non-success upstream status is reported as
// *UpstreamError; every other failure is a plain error.
type Provider interface {
	Key() string
	ChatCompletion(ctx context.Context, req ChatRequest) (string, error)
}

// UpstreamError carries the provider's status code and raw response body.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return "upstream status " + strconv.Itoa(e.Status)
}
