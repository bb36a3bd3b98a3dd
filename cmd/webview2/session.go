package main

import (
	"context"
	"runtime"

	"go.uber.org/zap"

	"github.com/wippyai/webview2/bridge"
	"github.com/wippyai/webview2/config"
	"github.com/wippyai/webview2/errors"
	"github.com/wippyai/webview2/headless"
	"github.com/wippyai/webview2/host"
	"github.com/wippyai/webview2/webview2"
)

// openLoader returns the host queue and loader for the configured runtime,
// plus a function releasing them. It must run on the thread that will pump.
func openLoader(cfg *config.Config) (host.Host, webview2.Loader, func(), error) {
	if cfg.Runtime == config.RuntimeNative {
		return openNative(cfg)
	}
	var opts []headless.Option
	if cfg.Language != "" {
		opts = append(opts, headless.WithLanguage(cfg.LanguageTag()))
	}
	thread := host.NewThread()
	rt, err := headless.New(thread, opts...)
	if err != nil {
		thread.Close()
		return nil, nil, nil, err
	}
	return thread, rt, func() {
		rt.Close()
		thread.Close()
	}, nil
}

// session owns a webview on a dedicated OS thread. Work reaches that thread
// through the pump's dispatcher.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	queue  host.Host
	loader webview2.Loader
	pump   *bridge.Pump
	env    *webview2.Environment
	ctrl   *webview2.Controller
	view   *webview2.WebView
	done   chan error
}

// openSession starts the session thread and waits until its webview exists.
func openSession(ctx context.Context, opts *options) (*session, error) {
	s := &session{cfg: opts.cfg, logger: opts.logger, done: make(chan error, 1)}
	ready := make(chan error, 1)
	go s.run(ctx, ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) run(ctx context.Context, ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	queue, loader, release, err := openLoader(s.cfg)
	if err != nil {
		ready <- err
		return
	}
	defer release()
	s.queue, s.loader = queue, loader

	if err := s.open(ctx); err != nil {
		s.closeViews()
		ready <- err
		return
	}
	ready <- nil

	err = s.pump.Run(context.WithoutCancel(ctx))
	s.closeViews()
	s.done <- err
}

func (s *session) open(ctx context.Context) error {
	s.pump = bridge.NewPump(s.queue)
	env, err := webview2.NewEnvironmentWithOptions(ctx, s.loader, s.pump,
		s.cfg.BrowserFolder, s.cfg.UserDataFolder, s.cfg.EnvironmentOptions())
	if err != nil {
		return err
	}
	s.env = env

	parent, err := s.queue.CreateWindow(func(host.HWND, uint32, uintptr, uintptr) uintptr { return 0 })
	if err != nil {
		return err
	}
	ctrl, err := env.CreateController(ctx, parent)
	if err != nil {
		return err
	}
	s.ctrl = ctrl

	view, err := ctrl.WebView()
	if err != nil {
		return err
	}
	s.view = view
	s.logger.Debug("session open", zap.String("runtime", s.cfg.Runtime))
	return nil
}

func (s *session) closeViews() {
	if s.view != nil {
		s.view.Close()
	}
	if s.ctrl != nil {
		s.ctrl.Close()
	}
	if s.env != nil {
		s.env.Close()
	}
}

// do runs fn on the session thread and returns its error.
func (s *session) do(ctx context.Context, fn func(ctx context.Context, view *webview2.WebView) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	errc := make(chan error, 1)
	err := s.pump.Dispatcher().Dispatch(func() {
		errc <- fn(ctx, s.view)
	})
	if err != nil {
		return err
	}
	select {
	case err := <-errc:
		return err
	case err := <-s.done:
		s.done <- err
		return errors.PumpTerminated("session task")
	}
}

// Close stops the session thread and waits for it.
func (s *session) Close() error {
	err := s.pump.Dispatcher().Dispatch(func() {
		s.queue.PostQuitMessage(0)
	})
	if err != nil {
		return err
	}
	return <-s.done
}

// evaluate runs script, collecting the web messages it posts while the
// session thread is busy with it.
func (s *session) evaluate(ctx context.Context, script string) (string, []webview2.WebMessage, error) {
	var (
		result   string
		messages []webview2.WebMessage
	)
	err := s.do(ctx, func(ctx context.Context, view *webview2.WebView) error {
		sub, err := view.AddWebMessageReceived(func(m webview2.WebMessage) {
			messages = append(messages, m)
		})
		if err != nil {
			return err
		}
		defer sub.Unregister()

		result, err = view.ExecuteScript(ctx, script)
		if err != nil {
			return err
		}
		// Messages the script posted are delivered before a second script completes.
		_, err = view.ExecuteScript(ctx, "undefined")
		return err
	})
	return result, messages, err
}
