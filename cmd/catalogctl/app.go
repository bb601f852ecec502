package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ariefcatur/go-catalog-client/internal/catalog"
	"github.com/ariefcatur/go-catalog-client/internal/config"
	"github.com/ariefcatur/go-catalog-client/internal/form"
	"github.com/ariefcatur/go-catalog-client/internal/gateway"
	kafkax "github.com/ariefcatur/go-catalog-client/internal/kafka"
	"github.com/ariefcatur/go-catalog-client/internal/logger"
	"github.com/ariefcatur/go-catalog-client/internal/redisx"
	"github.com/ariefcatur/go-catalog-client/internal/session"
	"github.com/rs/zerolog"
)

// app is everything a command needs, built once per invocation.
type app struct {
	cfg      config.Config
	log      zerolog.Logger
	auth     *session.Auth
	gw       gateway.Gateway
	recorder form.Recorder
	out      io.Writer
	closers  []func()
}

type overrides struct {
	apiURL         string
	logLevel       string
	sessionBackend string
	profile        string
}

func newApp(ctx context.Context, o overrides, out io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.apiURL != "" {
		cfg.APIBaseURL = o.apiURL
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.sessionBackend != "" {
		cfg.SessionBackend = o.sessionBackend
	}
	if o.profile != "" {
		cfg.SessionProfile = o.profile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: logger.New(cfg.LogLevel), out: out, recorder: form.NopRecorder{}}

	store, err := a.sessionStore()
	if err != nil {
		return nil, err
	}
	a.auth = session.NewAuth(store, a.log)

	gw, err := gateway.NewHTTPGateway(gateway.Options{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.RequestTimeout,
		CookieName: cfg.SessionCookieName,
		Creds:      a.auth,
		Logger:     a.log,
	})
	if err != nil {
		a.close()
		return nil, err
	}
	a.gw = gw

	if cfg.AuditEnabled {
		prod := kafkax.NewProducer(cfg.KafkaBrokers, catalog.TopicFormSubmission, 16, a.log)
		prod.Start(ctx)
		a.recorder = &form.EventRecorder{Producer: prod, Service: cfg.ServiceName}
		a.closers = append(a.closers, func() {
			prod.Close() // flush event sebelum proses selesai
			prod.WaitClosed()
		})
	}
	return a, nil
}

func (a *app) sessionStore() (session.Store, error) {
	switch a.cfg.SessionBackend {
	case config.SessionBackendMemory:
		return session.NewMemoryStore(), nil
	case config.SessionBackendRedis:
		rdb := redisx.New(a.cfg.RedisAddr)
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		return session.NewRedisStore(rdb, a.cfg.SessionProfile), nil
	case config.SessionBackendFile:
		path := a.cfg.SessionPath
		if path == "" {
			path = session.DefaultPath()
		}
		return session.NewFileStore(path), nil
	}
	return nil, fmt.Errorf("unknown session backend %q", a.cfg.SessionBackend)
}

func (a *app) deps(progress string) form.Deps {
	return form.Deps{
		Gateway:   a.gw,
		Navigator: form.NavigatorFunc(a.navigate),
		Recorder:  a.recorder,
		Logger:    a.log,
		Timeout:   a.cfg.RequestTimeout,
		Observers: []func(catalog.Status){a.printStatus(progress)},
	}
}

// printStatus is the single-line message area of the original form.
func (a *app) printStatus(progress string) func(catalog.Status) {
	return func(s catalog.Status) {
		switch s.Kind {
		case catalog.StatusPending:
			fmt.Fprintln(a.out, progress)
		case catalog.StatusSucceeded, catalog.StatusFailed:
			fmt.Fprintln(a.out, s.Message)
		}
	}
}

func (a *app) navigate(dest string) {
	a.log.Debug().Str("dest", dest).Msg("navigate")
	fmt.Fprintf(a.out, "Home: %s%s\n", a.cfg.APIBaseURL, dest)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// errReported means the failure message was already printed by printStatus.
var errReported = errors.New("submission failed")

// outcome turns the terminal status into the command's exit error.
func outcome(s catalog.Status) error {
	if s.Kind == catalog.StatusFailed {
		return errReported
	}
	return nil
}
