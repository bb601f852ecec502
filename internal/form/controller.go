// Package form runs the submit lifecycle of one form instance: draft in,
// one network mutation out, and a Status the presentation layer renders.
package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ariefcatur/go-catalog-client/internal/catalog"
	"github.com/ariefcatur/go-catalog-client/internal/gateway"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Flow is the per-form part of a submission: how to build the request and
// what a success means.
type Flow[R catalog.Record[R]] interface {
	Name() string
	Zero() R
	// Build validates the draft. A *catalog.ValidationError stops the
	// submission before it starts.
	Build(draft R) (gateway.Request, error)
	// Succeed interprets a 2xx reply and applies its side effects. It must
	// leave no side effect behind when it returns an error.
	Succeed(ctx context.Context, resp *gateway.Response) (string, error)
	FailureMessage() string
	// Destination is where to navigate after success, "" for nowhere.
	Destination() string
}

type Navigator interface {
	Navigate(dest string)
}

type NavigatorFunc func(dest string)

func (f NavigatorFunc) Navigate(dest string) { f(dest) }

type Deps struct {
	Gateway   gateway.Gateway
	Navigator Navigator
	Recorder  Recorder
	Logger    zerolog.Logger
	Observers []func(catalog.Status)

	// Timeout bounds every gateway call; zero means no bound.
	Timeout time.Duration
}

type Controller[R catalog.Record[R]] struct {
	mu     sync.Mutex
	status catalog.Status

	flow  Flow[R]
	draft *catalog.Draft[R]
	deps  Deps
	log   zerolog.Logger
	now   func() time.Time
}

func New[R catalog.Record[R]](flow Flow[R], deps Deps) *Controller[R] {
	if deps.Recorder == nil {
		deps.Recorder = NopRecorder{}
	}
	return &Controller[R]{
		status: catalog.Idle(),
		flow:   flow,
		draft:  catalog.NewDraft(flow.Zero),
		deps:   deps,
		log:    deps.Logger.With().Str("flow", flow.Name()).Logger(),
		now:    time.Now,
	}
}

func (c *Controller[R]) Draft() *catalog.Draft[R] { return c.draft }

func (c *Controller[R]) Status() catalog.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Input is the change handler: normalize the raw text, then store it.
func (c *Controller[R]) Input(field, raw string) (R, error) {
	v, err := catalog.Normalize(field, raw)
	if err != nil {
		return c.draft.Get(), err
	}
	return c.draft.Set(field, v)
}

// Submit runs one attempt to completion. The only error it returns is a
// *catalog.ValidationError, in which case nothing happened. Outcomes of the
// network call are reported through Status only. A call made while another
// submission is pending is ignored.
func (c *Controller[R]) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.status.IsPending() {
		c.mu.Unlock()
		c.log.Debug().Msg("submit ignored, already pending")
		return nil
	}
	req, err := c.flow.Build(c.draft.Get())
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.transitionLocked(catalog.Pending())
	c.mu.Unlock()
	c.notify(catalog.Pending())

	correlationID := uuid.NewString()
	start := c.now()

	callCtx := ctx
	if c.deps.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.deps.Timeout)
		defer cancel()
	}

	resp, err := c.deps.Gateway.Do(callCtx, req)
	var msg string
	if err == nil {
		msg, err = c.flow.Succeed(callCtx, resp)
	}

	var final catalog.Status
	if err != nil {
		final = catalog.Failed(c.flow.FailureMessage())
		kind, code := classify(err)
		// pesan ke user generik, detail asli hanya di log + event
		c.log.Error().Err(err).
			Str("correlation_id", correlationID).
			Str("error_kind", kind).
			Int("http_status", code).
			Msg("submission failed")
	} else {
		final = catalog.Succeeded(msg)
		c.draft.Reset()
		c.log.Info().Str("correlation_id", correlationID).Msg("submission succeeded")
	}

	c.mu.Lock()
	c.transitionLocked(final)
	c.mu.Unlock()
	c.notify(final)

	if final.Kind == catalog.StatusSucceeded && c.deps.Navigator != nil {
		if dest := c.flow.Destination(); dest != "" {
			c.deps.Navigator.Navigate(dest)
		}
	}

	c.record(ctx, correlationID, final, err, c.now().Sub(start))
	return nil
}

func (c *Controller[R]) transitionLocked(next catalog.Status) {
	if !catalog.CanTransition(c.status.Kind, next.Kind) {
		c.log.Warn().
			Str("from", string(c.status.Kind)).
			Str("to", string(next.Kind)).
			Msg("unexpected status transition")
	}
	c.status = next
}

func (c *Controller[R]) notify(s catalog.Status) {
	for _, fn := range c.deps.Observers {
		fn(s)
	}
}

func (c *Controller[R]) record(ctx context.Context, correlationID string, final catalog.Status, err error, took time.Duration) {
	p := catalog.SubmissionPayload{
		Flow:          c.flow.Name(),
		CorrelationID: correlationID,
		Status:        string(final.Kind),
		Message:       final.Message,
		DurationMS:    took.Milliseconds(),
	}
	if err != nil {
		p.ErrorKind, p.HTTPStatus = classify(err)
		p.ErrorDetail = err.Error()
	}
	c.deps.Recorder.Record(ctx, p)
}

// failure tags an error raised while applying a 2xx reply.
type failure struct {
	kind string
	err  error
}

func (f *failure) Error() string { return f.err.Error() }

func (f *failure) Unwrap() error { return f.err }

func malformed(err error) error { return &failure{kind: catalog.ErrorKindMalformed, err: err} }

func sessionFailure(err error) error { return &failure{kind: catalog.ErrorKindSession, err: err} }

func classify(err error) (kind string, httpStatus int) {
	var (
		f  *failure
		rj *gateway.RejectedError
	)
	switch {
	case errors.As(err, &f):
		return f.kind, 0
	case errors.As(err, &rj):
		return catalog.ErrorKindRejected, rj.StatusCode
	case errors.Is(err, context.DeadlineExceeded):
		return catalog.ErrorKindTimeout, 0
	default:
		return catalog.ErrorKindTransport, 0
	}
}
