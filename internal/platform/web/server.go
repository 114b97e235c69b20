// Package web serves 2048 as an embeddable widget: a single HTML page that
// plays over a WebSocket, with each browser keeping its own best score.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/platform"
	"github.com/vovakirdan/t2048/internal/storage"
)

//go:embed static/index.html
var staticFS embed.FS

var pageTemplate = template.Must(template.ParseFS(staticFS, "static/index.html"))

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The widget is meant to be framed by other sites.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// cookieMaxAge keeps the client id for a year.
const cookieMaxAge = 365 * 24 * 60 * 60

// Server hosts the widget page and its play channel.
type Server struct {
	cfg    config.WebConfig
	store  *storage.Store // nil when scores are not persisted
	logger *log.Logger
	router *mux.Router
	http   *http.Server
}

// NewServer creates a widget server. The store is owned by the caller.
func NewServer(cfg config.WebConfig, store *storage.Store, logger *log.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		store:  store,
		logger: logger,
		router: mux.NewRouter(),
	}
	s.setupRoutes()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/embed", s.handleEmbed).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type pageData struct {
	Title       string
	Description string
	URL         string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.clientID(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{
		Title:       s.cfg.Title,
		Description: s.cfg.Description,
		URL:         s.publicURL(r),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("cannot render page", "error", err)
	}
}

// handleEmbed returns the snippet a host page pastes to frame the widget.
func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w,
		`<iframe src="%s/" title="%s" width="360" height="480" style="border:0" loading="lazy"></iframe>`+"\n",
		template.HTMLEscapeString(s.publicURL(r)),
		template.HTMLEscapeString(s.cfg.Title),
	)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	header := http.Header{}
	id, fresh := s.readClientID(r)
	if fresh {
		header.Add("Set-Cookie", s.cookie(r, id).String())
	}

	conn, err := upgrader.Upgrade(w, r, header)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	s.logger.Info("widget connected", "client", id, "remote", r.RemoteAddr)
	sess := platform.NewSession(s.store, "web:"+id, s.logger, nil)
	c := newClient(conn, NewPlayer(sess), s.logger, id)

	go c.writePump()
	go c.readPump()
}

// clientID returns the browser's id, setting the cookie on first visit.
func (s *Server) clientID(w http.ResponseWriter, r *http.Request) string {
	id, fresh := s.readClientID(r)
	if fresh {
		http.SetCookie(w, s.cookie(r, id))
	}
	return id
}

// readClientID returns the id from the request cookie, or a new one.
func (s *Server) readClientID(r *http.Request) (id string, fresh bool) {
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		if parsed, err := uuid.Parse(c.Value); err == nil {
			return parsed.String(), false
		}
	}
	return uuid.NewString(), true
}

// cookie builds the id cookie. Framed pages only receive third-party
// cookies with SameSite=None, which browsers accept over TLS only.
func (s *Server) cookie(r *http.Request, id string) *http.Cookie {
	c := &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if isTLS(r) {
		c.SameSite = http.SameSiteNoneMode
		c.Secure = true
	}
	return c
}

func isTLS(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

// publicURL is the configured base URL, or one derived from the request.
func (s *Server) publicURL(r *http.Request) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimRight(s.cfg.PublicURL, "/")
	}
	scheme := "http"
	if isTLS(r) {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting web server", "address", s.cfg.Addr)

	errc := make(chan error, 1)
	go func() {
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web server")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck // headers already sent
}
