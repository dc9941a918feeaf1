// Package interceptor logs inbound HTTP requests around the application handler.
//
// PreHandle writes one line describing the request (client IP, method, URI and
// query, each toggled by configuration) and, when duration logging is on,
// records the start time in the request context. PostHandle writes how long
// the handler took. Neither phase ever rejects or fails the request.
package interceptor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"request-logger/internal/logline"
	"request-logger/internal/settings"
)

// Sink receives finished log lines.
type Sink interface {
	Emit(line string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(line string)

func (f SinkFunc) Emit(line string) { f(line) }

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithCallback registers fn to run after the pre-handle line is written.
func WithCallback(fn func()) Option {
	return func(i *Interceptor) { i.callback = fn }
}

// WithClock replaces time.Now for duration measurement.
func WithClock(now func() time.Time) Option {
	return func(i *Interceptor) { i.now = now }
}

// WithLogger sets where internal failures are reported. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(i *Interceptor) { i.log = log }
}

// Interceptor writes request log lines around a handler using the active settings.
type Interceptor struct {
	store    *settings.Store
	sink     Sink
	callback func()
	now      func() time.Time
	log      *zap.Logger
}

// New returns an Interceptor that reads settings from store and writes lines to sink.
func New(store *settings.Store, sink Sink, opts ...Option) *Interceptor {
	i := &Interceptor{
		store: store,
		sink:  sink,
		now:   time.Now,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type startKey struct{}

// StartTime returns the time PreHandle recorded for the request carrying ctx.
func StartTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(startKey{}).(time.Time)
	return t, ok
}

// PreHandle writes the request line and returns r, with the start time attached
// when duration logging is enabled.
func (i *Interceptor) PreHandle(r *http.Request) *http.Request {
	snap := i.store.Current()
	if snap == nil {
		i.log.Error("request logging skipped", zap.Error(settings.ErrNotRegistered))
	} else {
		line, ok, err := logline.Build(logline.FromHTTP(r), snap)
		switch {
		case err != nil:
			i.log.Error("build request log line", zap.Error(err))
		case ok:
			i.emit(line)
		}

		if i.durationEnabled(snap) {
			r = r.WithContext(context.WithValue(r.Context(), startKey{}, i.now()))
		}
	}

	if i.callback != nil {
		i.callback()
	}
	return r
}

// PostHandle writes the time spent in handler. It does nothing when duration
// logging is off or PreHandle recorded no start time.
func (i *Interceptor) PostHandle(r *http.Request, handler string) {
	snap := i.store.Current()
	if snap == nil || !i.durationEnabled(snap) {
		return
	}
	start, ok := StartTime(r.Context())
	if !ok {
		return
	}

	elapsed := i.now().Sub(start)
	i.emit(fmt.Sprintf("Handler: %s took %dns", handler, elapsed.Nanoseconds()))
}

// AfterCompletion runs once the response is written.
func (i *Interceptor) AfterCompletion(_ *http.Request, _ error) {}

// Handler wraps next with the three phases. Mount it with chi's Router.Use.
func (i *Interceptor) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = i.PreHandle(r)
		next.ServeHTTP(w, r)
		i.PostHandle(r, handlerName(r))
		i.AfterCompletion(r, nil)
	})
}

func (i *Interceptor) durationEnabled(snap *settings.Snapshot) bool {
	enabled, err := snap.Bool(settings.KeyProcessingDurationEnabled)
	if err != nil {
		i.log.Error("read duration flag", zap.Error(err))
		return false
	}
	return enabled
}

func (i *Interceptor) emit(line string) {
	defer func() {
		if rec := recover(); rec != nil {
			i.log.Error("request log sink failed", zap.Any("panic", rec))
		}
	}()
	i.sink.Emit(line)
}

// handlerName identifies the matched route, falling back to the raw path when
// the request did not go through a chi router.
func handlerName(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return r.Method + " " + pattern
		}
	}
	return r.Method + " " + r.URL.Path
}
