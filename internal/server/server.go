// Package server serves the widget web pages, the JSON API
// and the Prometheus metrics.
package server

import (
	"net/http"

	"github.com/qdm12/goservices/httpserver"
)

func New(address, rootURL string, registry Registry,
	metricsHandler http.Handler, logger Logger) (
	server *httpserver.Server, err error) {
	name := "http"
	return httpserver.New(httpserver.Settings{
		Handler: newHandler(rootURL, registry, metricsHandler, logger),
		Name:    &name,
		Address: &address,
		Logger:  logger,
	})
}
