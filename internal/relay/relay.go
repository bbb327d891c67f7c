package relay

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourorg/ui-prompt-relay/internal/providers"
)

// Generation is what a Recorder receives after each call.
type Generation struct {
	RequestID  string
	Prompt     string
	Kind       Kind
	Status     int
	ContentLen int
	Duration   time.Duration
}

type Recorder interface {
	Record(ctx context.Context, g Generation) error
}

type Relay struct {
	log      zerolog.Logger
	provider providers.Provider
	rec      Recorder
}

// New returns a Relay. rec may be nil.
func New(log zerolog.Logger, p providers.Provider, rec Recorder) *Relay {
	return &Relay{log: log, provider: p, rec: rec}
}

// Generate sends prompt to the provider behind the fixed system message and
// classifies the outcome. It makes exactly one provider call.
func (r *Relay) Generate(ctx context.Context, requestID, prompt string) Result {
	r.log.Debug().Str("rid", requestID).Str("prompt", prompt).Msg("received prompt")

	start := time.Now()
	content, err := r.provider.ChatCompletion(ctx, BuildRequest(prompt))
	dur := time.Since(start)

	res := classify(content, err)

	ev := r.log.Info()
	if res.Kind != KindSuccess {
		ev = r.log.Warn()
	}
	ev.Str("rid", requestID).
		Str("provider", r.provider.Key()).
		Str("model", Model).
		Str("outcome", string(res.Kind)).
		Int("status", res.StatusCode()).
		Dur("dur", dur).
		Err(err).
		Msg("generate")

	if r.rec != nil {
		g := Generation{
			RequestID:  requestID,
			Prompt:     prompt,
			Kind:       res.Kind,
			Status:     res.StatusCode(),
			ContentLen: len(res.Content),
			Duration:   dur,
		}
		if err := r.rec.Record(context.WithoutCancel(ctx), g); err != nil {
			r.log.Warn().Err(err).Str("rid", requestID).Msg("record generation failed")
		}
	}
	return res
}

func classify(content string, err error) Result {
	if err == nil {
		return Success(content)
	}
	var upErr *providers.UpstreamError
	if errors.As(err, &upErr) {
		return UpstreamError(upErr.Status, upErr.Body)
	}
	return TransportError(err.Error())
}
