package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/qdm12/netscope/internal/models"
	"github.com/qdm12/netscope/internal/render"
	"github.com/qdm12/netscope/internal/sections"
	"github.com/qdm12/netscope/internal/widget"
)

// mount creates a new widget on each full page load and
// redirects to it, so that refreshes and toggles of the page
// do not fetch again.
func (h *handlers) mount(w http.ResponseWriter, r *http.Request) {
	widget := h.registry.Mount(r.Context())
	http.Redirect(w, r, h.widgetURL(widget.ID()), http.StatusSeeOther)
}

type indexData struct {
	Page      models.Page
	WidgetURL string
}

func (h *handlers) page(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	widget, ok := h.registry.Get(id)
	if !ok {
		http.Redirect(w, r, h.rootURL+"/", http.StatusSeeOther)
		return
	}

	// Prevent caching to ensure the loading state is left
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	data := indexData{
		Page:      render.Page(widget.State(), widget.Sections()),
		WidgetURL: h.widgetURL(id),
	}

	err := h.indexTemplate.ExecuteTemplate(w, "index.html", data)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "failed generating webpage: "+err.Error())
	}
}

func (h *handlers) toggle(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := sections.Parse(chi.URLParam(r, "section"))
	if !ok {
		httpError(w, http.StatusNotFound, "unknown section")
		return
	}

	id := chi.URLParam(r, "id")
	target, ok := h.registry.Get(id)
	if !ok {
		http.Redirect(w, r, h.rootURL+"/", http.StatusSeeOther)
		return
	}

	// panels are only shown once ready
	if target.State().Kind == widget.KindReady {
		target.Toggle(sectionID)
	}

	http.Redirect(w, r, h.widgetURL(id), http.StatusSeeOther)
}

func (h *handlers) json(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	widget, ok := h.registry.Get(id)
	if !ok {
		httpError(w, http.StatusNotFound, "widget not found")
		return
	}

	state := widget.State()
	data := models.JSONWidget{
		ID:       id,
		State:    state.Kind.String(),
		Message:  state.Message,
		Sections: make(map[string]bool),
	}
	if state.Record != nil {
		record := models.JSONRecord(*state.Record)
		data.Record = &record
	}
	for sectionID, open := range widget.Sections() {
		data.Sections[string(sectionID)] = open
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "failed encoding JSON: "+err.Error())
		return
	}
}
