package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/issuebuilder/internal/config"
	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/issuebuilder/internal/logfields"
	"git.home.luguber.info/inful/issuebuilder/internal/metrics"
	"git.home.luguber.info/inful/issuebuilder/internal/site"
)

// Options configure a preview session.
type Options struct {
	Port     int
	Output   string        // directory the site is built into and served from
	Rescan   time.Duration // periodic rebuild interval; zero disables
	Debounce time.Duration // defaults to DefaultDebounce
}

// Server builds the site into its output directory and serves it.
type Server struct {
	cfg      *config.Config
	opts     Options
	registry *prom.Registry
	recorder metrics.Recorder
	status   buildStatus
	buildMu  sync.Mutex
}

// NewServer returns a Server with a private Prometheus registry.
func NewServer(cfg *config.Config, opts Options) *Server {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	reg := metrics.NewRegistry()
	return &Server{
		cfg:      cfg,
		opts:     opts,
		registry: reg,
		recorder: metrics.NewPrometheusRecorder(reg),
	}
}

// Rebuild runs one full build into the output directory. Builds never overlap.
func (s *Server) Rebuild(ctx context.Context) error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	report, err := site.NewGenerator(s.cfg, s.opts.Output).SetRecorder(s.recorder).Generate(ctx)
	s.status.record(report, err)
	return err
}

// Handler serves the site, /healthz and /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(s.registry))
	mux.HandleFunc("/healthz", s.handleHealth)

	files := http.FileServer(http.Dir(s.opts.Output))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		snap := s.status.snapshot()
		if !snap.HasGoodBuild {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			msg := "Build in progress"
			if snap.LastError != "" {
				msg = "Build failed: " + snap.LastError
			}
			_, _ = fmt.Fprintf(w, "<!DOCTYPE html><title>issuebuilder</title><pre>%s</pre>", html.EscapeString(msg))
			return
		}
		files.ServeHTTP(w, r)
	})
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := s.status.snapshot()
	w.Header().Set("Content-Type", "application/json")
	if snap.Status == "error" && !snap.HasGoodBuild {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(snap)
}

// watchRoots lists the source directories whose changes trigger a rebuild.
func (s *Server) watchRoots() []string {
	p := s.cfg.Paths
	return []string{p.Issues, p.Templates, p.Content, p.Assets}
}

// Run performs the initial build, then serves and rebuilds until ctx is
// canceled. A failing initial build is reported over HTTP, not returned.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Rebuild(ctx); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	watcher, err := newWatcher(s.watchRoots())
	if err != nil {
		return ferrors.RuntimeError("start file watcher").WithCause(err).Build()
	}
	defer func() { _ = watcher.Close() }()

	rebuildReq, trigger := newDebouncer(s.opts.Debounce)

	var scheduler gocron.Scheduler
	if s.opts.Rescan > 0 {
		scheduler, err = s.startRescan(trigger)
		if err != nil {
			return err
		}
		defer func() { _ = scheduler.Shutdown() }()
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", fmt.Sprint(s.opts.Port)),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	slog.Info("Preview server listening", logfields.URL(fmt.Sprintf("http://localhost:%d", s.opts.Port)))

	workerDone := s.startRebuildWorker(ctx, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Shutting down preview server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("HTTP server shutdown error", logfields.Error(err))
			}
			<-workerDone
			return nil
		case err := <-serveErr:
			return ferrors.RuntimeError("preview server stopped").WithCause(err).
				WithContext("port", s.opts.Port).Build()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if handleFileEvent(watcher, ev) {
				trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// startRescan schedules a periodic rebuild request, catching changes that
// file events miss (network filesystems, editors replacing directories).
func (s *Server) startRescan(trigger func()) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, ferrors.RuntimeError("create rescan scheduler").WithCause(err).Build()
	}
	if _, err := scheduler.NewJob(
		gocron.DurationJob(s.opts.Rescan),
		gocron.NewTask(trigger),
		gocron.WithName("preview-rescan"),
	); err != nil {
		_ = scheduler.Shutdown()
		return nil, ferrors.RuntimeError("create rescan job").WithCause(err).Build()
	}
	scheduler.Start()
	slog.Info("Periodic rescan enabled", slog.Duration("interval", s.opts.Rescan))
	return scheduler, nil
}

// startRebuildWorker runs rebuilds from rebuildReq one at a time. A request
// arriving during a build is coalesced into one follow-up build.
func (s *Server) startRebuildWorker(ctx context.Context, rebuildReq <-chan struct{}) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				slog.Info("Change detected; rebuilding site")
				if err := s.Rebuild(ctx); err != nil {
					slog.Warn("Rebuild failed", logfields.Error(err))
				}
			}
		}
	}()
	return done
}
