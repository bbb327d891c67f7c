package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/yourorg/ui-prompt-relay/internal/middleware"
	"github.com/yourorg/ui-prompt-relay/internal/relay"
)

const maxRequestBody = 1 << 20

type generateRequest struct {
	// Pointer so a missing key and JSON null can be told apart from "".
	Prompt *string `json:"prompt"`
}

// Generate handles POST /api/generate. Bodies are written verbatim as
// text/plain; no JSON envelope and no trailing newline.
func Generate(rel *relay.Relay, upstreamTimeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
			writeText(w, http.StatusBadRequest, "Error: invalid request body: "+err.Error())
			return
		}
		if req.Prompt == nil {
			writeText(w, http.StatusBadRequest, "Error: prompt is required")
			return
		}

		// The provider call outlives a disconnected caller.
		ctx := context.WithoutCancel(r.Context())
		if upstreamTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, upstreamTimeout)
			defer cancel()
		}

		res := rel.Generate(ctx, middleware.RequestIDFrom(r.Context()), *req.Prompt)
		writeText(w, res.StatusCode(), res.ResponseBody())
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
