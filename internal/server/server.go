package server

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"

	"github.com/gravitas-015/hexplane/internal/config"
	"github.com/gravitas-015/hexplane/internal/render"
	"github.com/gravitas-015/hexplane/pkg/hexcolor"
)

// Server serves the rendered grid and the hit-testing WebSocket endpoint
type Server struct {
	config    *config.Config
	scheme    *hexcolor.Scheme
	upgrader  websocket.Upgrader
	httpSrv   *http.Server
	validator *TokenValidator // nil when auth is disabled
	cache     *TileCache      // nil when Redis is not configured
	redis     *redis.Client

	// Connection tracking
	connections map[*Connection]bool
	connMu      sync.RWMutex

	// Shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	log.Println("Initializing server...")

	ctx, cancel := context.WithCancel(context.Background())

	scheme := hexcolor.DefaultScheme()
	if cfg.Render.Scheme != "" {
		loaded, err := hexcolor.LoadScheme(cfg.Render.Scheme)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to load colorscheme: %w", err)
		}
		scheme = loaded
	}

	srv := &Server{
		config:      cfg,
		scheme:      scheme,
		connections: make(map[*Connection]bool),
		ctx:         ctx,
		cancel:      cancel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Local visualization tool; any origin may connect.
				return true
			},
		},
	}

	if cfg.Auth.TokenSecret != "" {
		srv.validator = NewTokenValidator(cfg.Auth.TokenSecret)
		log.Println("Token auth enabled on /ws")
	}

	if cfg.Redis.Address != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		srv.redis = client
		srv.cache = NewTileCache(client, cfg.Redis.CachePrefix,
			time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second)
		log.Println("Connected to Redis, tile cache enabled")
	}

	log.Println("Server initialized successfully")
	return srv, nil
}

// Start begins listening for connections
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/grid.svg", s.handleGrid)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Grid endpoint: http://%s/grid.svg", addr)
	log.Printf("Hit-test endpoint: ws://%s/ws", addr)
	log.Printf("Health endpoint: http://%s/health", addr)

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	log.Println("Shutting down server...")

	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}

	s.connMu.Lock()
	for conn := range s.connections {
		conn.Close()
	}
	s.connMu.Unlock()

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("Redis close error: %v", err)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}

// handleGrid renders the requested viewport of the grid as SVG
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	rc := s.config.Render
	iMin := queryInt64(r, "i_min", rc.IMin)
	iMax := queryInt64(r, "i_max", rc.IMax)
	jMin := queryInt64(r, "j_min", rc.JMin)
	jMax := queryInt64(r, "j_max", rc.JMax)
	size := queryFloat(r, "size", rc.Size)
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = rc.Mode
	}

	key := fmt.Sprintf("%d:%d:%d:%d:%g:%s", iMin, iMax, jMin, jMax, size, mode)
	if body, ok := s.cache.Get(r.Context(), key); ok {
		writeSVG(w, body)
		return
	}

	renderer := render.New(render.Options{Size: size, Mode: mode, Scheme: s.scheme})
	var buf bytes.Buffer
	if err := renderer.Render(&buf, render.RectRegion(iMin, iMax, jMin, jMax)); err != nil {
		log.Printf("Grid render failed: %v", err)
		http.Error(w, fmt.Sprintf("render failed: %v", err), http.StatusBadRequest)
		return
	}

	s.cache.Set(r.Context(), key, buf.Bytes())
	writeSVG(w, buf.Bytes())
}

// handleWebSocket handles hit-testing connection requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	log.Printf("New WebSocket connection request from %s", r.RemoteAddr)

	if s.validator != nil {
		tokenString := extractToken(r)
		if tokenString == "" {
			log.Printf("Missing token from %s", r.RemoteAddr)
			http.Error(w, "Missing authentication token", http.StatusUnauthorized)
			return
		}
		if err := s.validator.ValidateToken(tokenString); err != nil {
			log.Printf("Invalid token from %s: %v", r.RemoteAddr, err)
			http.Error(w, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
			return
		}
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn := NewConnection(ws, s)

	s.connMu.Lock()
	s.connections[conn] = true
	s.connMu.Unlock()

	log.Printf("WebSocket connection established: %s", r.RemoteAddr)

	// Handle connection (blocking)
	conn.Handle()

	s.connMu.Lock()
	delete(s.connections, conn)
	s.connMu.Unlock()

	log.Printf("WebSocket connection closed: %s", r.RemoteAddr)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func writeSVG(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func queryInt64(r *http.Request, name string, def int64) int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func queryFloat(r *http.Request, name string, def float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
