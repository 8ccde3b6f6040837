package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"mandelbrot/mandelbrot"
	"mandelbrot/viewport"
)

// Server is the interactive viewer: it serves a page showing the current frame
// and a websocket endpoint that takes viewport commands and answers each with a
// freshly rendered png. Every websocket connection is its own session with its
// own controller.
type Server struct {
	address  string
	bounds   mandelbrot.Bounds
	cancel   context.CancelFunc
	ctx      context.Context
	listener net.Listener
	logger   bslogger.Logger
	mutex    sync.Mutex
	renderer viewport.Renderer
	server   *http.Server
	sessions sync.WaitGroup
	settings viewport.Settings
	stopped  bool
}

func NewServer(renderer viewport.Renderer, bounds mandelbrot.Bounds, settings viewport.Settings, address string) (*Server, error) {
	if err := bounds.Verify(); err != nil {
		return nil, err
	}
	if err := settings.Verify(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		address:  address,
		cancel:   cancel,
		ctx:      ctx,
		bounds:   bounds,
		logger:   bslogger.NewLogger("Viewer", bslogger.Normal, nil),
		renderer: renderer,
		settings: settings,
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleSocket)
	return mux
}

// Addr is the address the viewer listens on once Run has returned.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

func (s *Server) Run() error {
	var err error
	s.listener, err = net.Listen("tcp", s.address)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Listening at address %s", s.address))
		return err
	}

	go func() {
		if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(fmt.Sprintf("Serving at address %s - %s", s.Addr(), err))
		}
	}()

	s.logger.Info(fmt.Sprintf("Running viewer at address %s", s.Addr()))
	return nil
}

// Stop shuts the http server down and waits for open sessions to end.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info(fmt.Sprintf("Shutting down viewer at address %s", s.Addr()))
	s.mutex.Lock()
	s.stopped = true
	s.mutex.Unlock()

	err := s.server.Shutdown(ctx)
	s.cancel()
	s.sessions.Wait()
	return err
}

// beginSession registers a new session unless the viewer is stopping. Every
// successful call must be paired with s.sessions.Done.
func (s *Server) beginSession() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.stopped {
		return false
	}
	s.sessions.Add(1)
	return true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}
