package relay

import "net/http"

type Kind string

const (
	KindSuccess   Kind = "success"
	KindUpstream  Kind = "upstream_error"
	KindTransport Kind = "transport_error"
)

const (
	upstreamPrefix  = "OpenAI error: "
	transportPrefix = "Error: "
)

// Result is the outcome of one relay call. Exactly one variant applies,
// selected by Kind.
type Result struct {
	Kind Kind

	Content string // KindSuccess

	Status int    // KindUpstream
	Body   string // KindUpstream, raw provider body

	Message string // KindTransport
}

func Success(content string) Result { return Result{Kind: KindSuccess, Content: content} }

func UpstreamError(status int, body string) Result {
	return Result{Kind: KindUpstream, Status: status, Body: body}
}

func TransportError(msg string) Result { return Result{Kind: KindTransport, Message: msg} }

// StatusCode is the HTTP status the caller receives for r.
func (r Result) StatusCode() int {
	switch r.Kind {
	case KindSuccess:
		return http.StatusOK
	case KindUpstream:
		return r.Status
	default:
		return http.StatusInternalServerError
	}
}

// ResponseBody is the exact HTTP body the caller receives for r.
func (r Result) ResponseBody() string {
	switch r.Kind {
	case KindSuccess:
		return r.Content
	case KindUpstream:
		return upstreamPrefix + r.Body
	default:
		return transportPrefix + r.Message
	}
}
