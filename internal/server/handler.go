package server

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed ui/index.html
var uiFS embed.FS

type handlers struct {
	rootURL       string
	registry      Registry
	indexTemplate *template.Template
	logger        Logger
}

func newHandler(rootURL string, registry Registry,
	metricsHandler http.Handler, logger Logger) http.Handler {
	indexTemplate := template.Must(template.ParseFS(uiFS, "ui/index.html"))

	rootURL = strings.TrimSuffix(rootURL, "/")
	handlers := &handlers{
		rootURL:       rootURL,
		registry:      registry,
		indexTemplate: indexTemplate,
		logger:        logger,
	}

	router := chi.NewRouter()
	router.Use(middleware.CleanPath, handlers.logRequests)

	router.Get(rootURL+"/", handlers.mount)
	if rootURL != "" {
		// CleanPath strips the trailing slash of the root path
		router.Get(rootURL, handlers.mount)
	}
	router.Get(rootURL+"/widgets/{id}", handlers.page)
	router.Post(rootURL+"/widgets/{id}/sections/{section}", handlers.toggle)
	router.Get(rootURL+"/api/v1/widgets/{id}", handlers.json)
	router.Handle(rootURL+"/metrics", metricsHandler)

	return router
}

func (h *handlers) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(wrapped, r)
		h.logger.Debug(r.Method + " " + r.URL.Path + " " +
			strconv.Itoa(wrapped.Status()))
	})
}

func (h *handlers) widgetURL(id string) string {
	return h.rootURL + "/widgets/" + id
}
