// Package render converts the view state of a widget and its
// panels flags into a page model.
package render

import (
	"strconv"
	"strings"

	"github.com/qdm12/netscope/internal/models"
	"github.com/qdm12/netscope/internal/sections"
	"github.com/qdm12/netscope/internal/widget"
	"github.com/qdm12/netscope/pkg/ipinfo"
)

const (
	Title         = "NETSCOPE"
	Author        = "fedetomassini"
	AuthorURL     = "https://www.linkedin.com/in/fedetomassini/"
	NoInformation = "No IP information available"
)

// Page returns the page model for the given state and panels flags.
// A panel identifier missing from open is treated as collapsed.
func Page(state widget.ViewState, open map[sections.ID]bool) (page models.Page) {
	page.State = state.Kind.String()

	switch state.Kind {
	case widget.KindLoading:
		page.Loading = true
		return page
	case widget.KindError:
		page.Message = state.Message
		return page
	case widget.KindReady:
	}

	if state.Record == nil {
		page.Message = NoInformation
		return page
	}

	page.Title = Title
	page.Author = Author
	page.AuthorURL = AuthorURL

	ids := sections.IDs()
	page.Panels = make([]models.Panel, len(ids))
	for i, id := range ids {
		panel := models.Panel{
			ID:    string(id),
			Title: panelTitle(id),
			Open:  open[id],
		}
		if panel.Open {
			panel.Fields = panelFields(id, state.Record)
		}
		page.Panels[i] = panel
	}

	return page
}

func panelTitle(id sections.ID) string {
	s := string(id)
	return strings.ToUpper(s[:1]) + s[1:] + " Information"
}

func panelFields(id sections.ID, record *ipinfo.Record) (fields []models.Field) {
	switch id {
	case sections.Location:
		return []models.Field{
			{Label: "City", Value: record.City},
			{Label: "Region", Value: record.Region},
			{Label: "Country", Value: record.CountryName},
			{Label: "Postal Code", Value: record.Postal},
			{Label: "Latitude", Value: formatCoordinate(record.Latitude)},
			{Label: "Longitude", Value: formatCoordinate(record.Longitude)},
		}
	case sections.Network:
		return []models.Field{
			{Label: "IPv4 Address", Value: record.IP},
			{Label: "ASN", Value: record.ASN},
			{Label: "Organization", Value: record.Org},
		}
	case sections.Other:
		return []models.Field{
			{Label: "Timezone", Value: FormatTimezone(record.Timezone)},
		}
	default:
		return nil
	}
}

func formatCoordinate(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatTimezone replaces every slash with " - " and then
// every underscore with a space, such that
// "America/Argentina/Buenos_Aires" becomes
// "America - Argentina - Buenos Aires".
func FormatTimezone(timezone string) string {
	s := strings.ReplaceAll(timezone, "/", " - ")
	return strings.ReplaceAll(s, "_", " ")
}
