// Package health serves and queries the health status of the program.
package health

import (
	"net/http"

	"github.com/qdm12/goservices/httpserver"
)

// NewServer creates the health server answering 200 on GET /
// if healthcheck returns no error, and 500 otherwise.
func NewServer(address string, logger Logger, healthcheck func() error) (
	server *httpserver.Server, err error) {
	name := "health"
	return httpserver.New(httpserver.Settings{
		Handler: &handler{healthcheck: healthcheck},
		Name:    &name,
		Address: &address,
		Logger:  logger,
	})
}

type handler struct {
	healthcheck func() error
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet || r.URL.Path != "/" {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	err := h.healthcheck()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
