// Package server serves a small web form that exports a Tumblr blog as a
// downloadable Ghost import file.
package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/takak2166/tumblr2ghost/internal/logger"
	"github.com/takak2166/tumblr2ghost/internal/models"
	"github.com/takak2166/tumblr2ghost/internal/tumblr"
)

//go:embed templates/*.html
var templateFS embed.FS

// Exporter produces and encodes the export for a blog
type Exporter interface {
	Run(ctx context.Context, blog string) (*models.GhostExport, error)
	WriteJSON(w io.Writer, doc *models.GhostExport) error
}

// Server handles the export form
type Server struct {
	exporter Exporter
	tmpl     *template.Template
	router   *chi.Mux
}

type formData struct {
	Error     string
	TumblrURL string
}

// New creates a Server with its routes registered
func New(exporter Exporter) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		exporter: exporter,
		tmpl:     tmpl,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleIndex)
	s.router.Post("/", s.handleExport)
	s.router.Get("/healthz", s.handleHealth)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, formData{})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	input := r.FormValue("tumblr_url")
	blog := tumblr.NormalizeBlog(input)
	if blog == "" {
		s.render(w, http.StatusBadRequest, formData{Error: "Please enter a Tumblr blog URL.", TumblrURL: input})
		return
	}

	doc, err := s.exporter.Run(r.Context(), blog)
	if err != nil {
		var invalid *tumblr.InvalidSourceError
		if errors.As(err, &invalid) {
			s.render(w, http.StatusBadRequest, formData{Error: invalid.Error(), TumblrURL: input})
			return
		}
		logger.Error("Export failed", err, map[string]interface{}{
			"blog":       blog,
			"request_id": middleware.GetReqID(r.Context()),
		})
		s.render(w, http.StatusBadGateway, formData{Error: "Tumblr could not be reached, please try again later.", TumblrURL: input})
		return
	}

	var buf bytes.Buffer
	if err := s.exporter.WriteJSON(&buf, doc); err != nil {
		logger.Error("Failed to encode export", err, map[string]interface{}{"blog": blog})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", attachment(blog+"-ghost.json"))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// attachment builds a Content-Disposition value, quoting or encoding the
// filename when it is not a plain token.
func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}

func (s *Server) render(w http.ResponseWriter, status int, data formData) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		logger.Error("Failed to render template", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Info("Request handled", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		})
	})
}
