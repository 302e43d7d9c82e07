package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/scrolldeck/parameter"
	"github.com/lixenwraith/scrolldeck/scene"
	"github.com/lixenwraith/scrolldeck/session"
)

const (
	writeWait  = 5 * time.Second
	pingPeriod = 30 * time.Second
)

// Controller is the session surface the server drives
type Controller interface {
	State() session.State
	Deck() *scene.Deck
	JumpTo(index int) bool
	JumpToAnchor(fragment string) (int, bool)
	Stats() map[string]int64
}

// Config configures the HTTP boundary
type Config struct {
	Addr string
	// AllowAll permits any CORS origin, otherwise only localhost
	AllowAll bool
	Logger   *slog.Logger
}

// Server exposes session state and direct jumps over HTTP and websocket
type Server struct {
	cfg    Config
	ctl    Controller
	hub    *Hub
	log    *slog.Logger
	router chi.Router

	upgrader   websocket.Upgrader
	httpServer *http.Server
}

// NewServer creates a server over ctl streaming snapshots from hub
func NewServer(ctl Controller, hub *Hub, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = parameter.ServerAddr
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		cfg: cfg,
		ctl: ctl,
		hub: hub,
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// buildRouter creates and configures the chi router with all routes
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/state", s.handleState)
	r.Get("/scenes", s.handleScenes)
	r.Get("/stats", s.handleStats)
	r.Post("/jump/{index}", s.handleJump)
	r.Post("/anchor/{fragment}", s.handleAnchor)
	r.Get("/ws", s.handleWebSocket)

	return r
}

// Handler returns the router
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on the configured address until Shutdown
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("broadcast server listening", "addr", ln.Addr().String())
	err := s.httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server and drops stream subscribers
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.httpServer.Shutdown(ctx)
}

type sceneInfo struct {
	ID       string `json:"id"`
	Ordinal  int    `json:"ordinal"`
	Embedded bool   `json:"embedded"`
	Title    string `json:"title,omitempty"`
}

type scenesResponse struct {
	Scenes []sceneInfo       `json:"scenes"`
	Links  map[string]string `json:"links,omitempty"`
}

type jumpResponse struct {
	Accepted bool          `json:"accepted"`
	Target   int           `json:"target"`
	State    session.State `json:"state"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctl.State())
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	deck := s.ctl.Deck()
	descs := deck.Registry.All()
	resp := scenesResponse{
		Scenes: make([]sceneInfo, 0, len(descs)),
		Links:  deck.Links.Fragments(),
	}
	for _, d := range descs {
		resp.Scenes = append(resp.Scenes, sceneInfo{
			ID:       d.ID,
			Ordinal:  d.Ordinal,
			Embedded: d.OwnsInternalScroll,
			Title:    d.Title,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctl.Stats())
}

func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	ok := s.ctl.JumpTo(index)
	writeJSON(w, http.StatusOK, jumpResponse{Accepted: ok, Target: index, State: s.ctl.State()})
}

func (s *Server) handleAnchor(w http.ResponseWriter, r *http.Request) {
	fragment := chi.URLParam(r, "fragment")
	index, ok := s.ctl.JumpToAnchor(fragment)
	writeJSON(w, http.StatusOK, jumpResponse{Accepted: ok, Target: index, State: s.ctl.State()})
}

// handleWebSocket streams every snapshot as JSON, starting with the current one
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	id, updates := s.hub.Subscribe()
	defer s.hub.Unsubscribe(id)
	log := s.log.With("subscriber", id)
	log.Debug("stream subscriber joined")

	// Reader detects the client going away, inbound messages are ignored
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Debug("websocket read", "error", err)
				}
				return
			}
		}
	}()

	if err := s.send(conn, s.ctl.State()); err != nil {
		return
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case st, ok := <-updates:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(writeWait))
				return
			}
			if err := s.send(conn, st); err != nil {
				log.Debug("websocket write", "error", err)
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-gone:
			log.Debug("stream subscriber left")
			return
		}
	}
}

func (s *Server) send(conn *websocket.Conn, st session.State) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(st)
}

// requestLog logs each request at debug level
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
