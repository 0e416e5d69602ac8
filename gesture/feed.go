package gesture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/status"
)

// FeedOptions configures the landmark ingestion endpoint
type FeedOptions struct {
	Addr           string
	AllowedOrigins []string
	MaxBody        int64
}

// FeedServer accepts landmark frames over HTTP and exposes them as a Source
// Frames are latest-wins: an unread frame is replaced by a newer one
type FeedServer struct {
	opts   FeedOptions
	box    *Mailbox
	reg    *status.Registry
	logger *log.Logger

	frames   chan Frame
	sendMu   sync.Mutex
	done     chan struct{}
	once     sync.Once
	accepted *atomic.Int64
	rejected *atomic.Int64
	handler  http.Handler
}

// NewFeedServer builds the router; box is read for /v1/sample and may be nil
func NewFeedServer(opts FeedOptions, box *Mailbox, reg *status.Registry, logger *log.Logger) *FeedServer {
	if opts.Addr == "" {
		opts.Addr = parameter.FeedAddr
	}
	if opts.MaxBody <= 0 {
		opts.MaxBody = parameter.FeedMaxBody
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &FeedServer{
		opts:     opts,
		box:      box,
		reg:      reg,
		logger:   logger.WithPrefix("feed"),
		frames:   make(chan Frame, 1),
		done:     make(chan struct{}),
		accepted: reg.Ints.Get(status.KeyFeedFrames),
		rejected: reg.Ints.Get(status.KeyFeedRejected),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/landmarks", s.handleLandmarks)
		r.Get("/sample", s.handleSample)
		r.Get("/status", s.handleStatus)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	})
	s.handler = c.Handler(r)
	return s
}

// Handler returns the CORS-wrapped router
func (s *FeedServer) Handler() http.Handler {
	return s.handler
}

// Frames implements Source
func (s *FeedServer) Frames() <-chan Frame {
	return s.frames
}

// Close implements Source; later POSTs are refused with 503
func (s *FeedServer) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

// Serve listens on the configured address until ctx ends
func (s *FeedServer) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("feed listen %s: %w", s.opts.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx ends, then shuts down gracefully
func (s *FeedServer) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("landmark feed listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("feed shutdown: %w", err)
		}
		<-errCh
		return nil
	}
}

func (s *FeedServer) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *FeedServer) handleLandmarks(w http.ResponseWriter, r *http.Request) {
	if s.closed() {
		http.Error(w, ErrClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	var f Frame
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.opts.MaxBody))
	if err := dec.Decode(&f); err != nil {
		s.rejected.Add(1)
		s.logger.Debug("rejected landmark payload", "err", err)
		http.Error(w, fmt.Sprintf("%v: %v", ErrBadFrame, err), http.StatusBadRequest)
		return
	}
	if err := f.Validate(); err != nil {
		s.rejected.Add(1)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.At = time.Now()

	// Handlers run concurrently; offer assumes a single sender
	s.sendMu.Lock()
	offer(s.frames, f)
	s.sendMu.Unlock()
	s.accepted.Add(1)

	w.WriteHeader(http.StatusAccepted)
}

type sampleResponse struct {
	Present   bool    `json:"present"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Intensity float64 `json:"intensity"`
	Gesture   string  `json:"gesture"`
}

func (s *FeedServer) handleSample(w http.ResponseWriter, r *http.Request) {
	var resp sampleResponse
	if s.box != nil {
		m, ok := s.box.Latest()
		resp = sampleResponse{Present: ok, X: m.X, Y: m.Y, Intensity: m.Intensity, Gesture: m.Gesture.String()}
	} else {
		resp.Gesture = "NONE"
	}
	writeJSON(w, resp)
}

func (s *FeedServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.reg.Snapshot())
}

func (s *FeedServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok\n"))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
