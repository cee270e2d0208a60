package render

import (
	"testing"

	"github.com/qdm12/netscope/internal/models"
	"github.com/qdm12/netscope/internal/sections"
	"github.com/qdm12/netscope/internal/widget"
	"github.com/qdm12/netscope/pkg/ipinfo"
	"github.com/stretchr/testify/assert"
)

func allOpen() map[sections.ID]bool {
	return map[sections.ID]bool{
		sections.Location: true,
		sections.Network:  true,
		sections.Other:    true,
	}
}

func Test_Page(t *testing.T) {
	t.Parallel()

	london := &ipinfo.Record{
		IP:          "81.2.69.142",
		City:        "London",
		Region:      "England",
		CountryName: "United Kingdom",
		Postal:      "EC1A",
		Latitude:    51.5074,
		Longitude:   -0.1278,
		ASN:         "AS20712",
		Org:         "Andrews & Arnold Ltd",
		Timezone:    "Europe/London",
	}

	londonPanels := []models.Panel{
		{
			ID:    "location",
			Title: "Location Information",
			Open:  true,
			Fields: []models.Field{
				{Label: "City", Value: "London"},
				{Label: "Region", Value: "England"},
				{Label: "Country", Value: "United Kingdom"},
				{Label: "Postal Code", Value: "EC1A"},
				{Label: "Latitude", Value: "51.5074"},
				{Label: "Longitude", Value: "-0.1278"},
			},
		},
		{
			ID:    "network",
			Title: "Network Information",
			Open:  true,
			Fields: []models.Field{
				{Label: "IPv4 Address", Value: "81.2.69.142"},
				{Label: "ASN", Value: "AS20712"},
				{Label: "Organization", Value: "Andrews & Arnold Ltd"},
			},
		},
		{
			ID:    "other",
			Title: "Other Information",
			Open:  true,
			Fields: []models.Field{
				{Label: "Timezone", Value: "Europe - London"},
			},
		},
	}

	testCases := map[string]struct {
		state widget.ViewState
		open  map[sections.ID]bool
		page  models.Page
	}{
		"loading": {
			state: widget.Loading(),
			open:  allOpen(),
			page:  models.Page{State: "loading", Loading: true},
		},
		"error": {
			state: widget.Failed(widget.FailureMessage),
			open:  allOpen(),
			page: models.Page{
				State:   "error",
				Message: "You have reached the limit of requests :(",
			},
		},
		"ready without record": {
			state: widget.Ready(nil),
			open:  allOpen(),
			page: models.Page{
				State:   "ready",
				Message: "No IP information available",
			},
		},
		"ready all open": {
			state: widget.Ready(london),
			open:  allOpen(),
			page: models.Page{
				Title:     "NETSCOPE",
				Author:    "fedetomassini",
				AuthorURL: "https://www.linkedin.com/in/fedetomassini/",
				State:     "ready",
				Panels:    londonPanels,
			},
		},
		"ready network collapsed": {
			state: widget.Ready(london),
			open: map[sections.ID]bool{
				sections.Location: true,
				sections.Network:  false,
				sections.Other:    true,
			},
			page: models.Page{
				Title:     "NETSCOPE",
				Author:    "fedetomassini",
				AuthorURL: "https://www.linkedin.com/in/fedetomassini/",
				State:     "ready",
				Panels: []models.Panel{
					londonPanels[0],
					{ID: "network", Title: "Network Information"},
					londonPanels[2],
				},
			},
		},
		"ready nil flags": {
			state: widget.Ready(london),
			page: models.Page{
				Title:     "NETSCOPE",
				Author:    "fedetomassini",
				AuthorURL: "https://www.linkedin.com/in/fedetomassini/",
				State:     "ready",
				Panels: []models.Panel{
					{ID: "location", Title: "Location Information"},
					{ID: "network", Title: "Network Information"},
					{ID: "other", Title: "Other Information"},
				},
			},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			page := Page(testCase.state, testCase.open)

			assert.Equal(t, testCase.page, page)
		})
	}
}

func Test_Page_coordinates(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		latitude  float64
		longitude float64
		values    [2]string
	}{
		"buenos aires": {
			latitude:  -34.6037,
			longitude: -58.3816,
			values:    [2]string{"-34.6037", "-58.3816"},
		},
		"integers": {
			latitude:  0,
			longitude: 10,
			values:    [2]string{"0", "10"},
		},
		"many decimals": {
			latitude:  40.712775821,
			longitude: -74.005973,
			values:    [2]string{"40.712775821", "-74.005973"},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			record := &ipinfo.Record{
				Latitude:  testCase.latitude,
				Longitude: testCase.longitude,
			}

			page := Page(widget.Ready(record), allOpen())

			fields := page.Panels[0].Fields
			assert.Equal(t, models.Field{Label: "Latitude", Value: testCase.values[0]}, fields[4])
			assert.Equal(t, models.Field{Label: "Longitude", Value: testCase.values[1]}, fields[5])
		})
	}
}

func Test_FormatTimezone(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		timezone string
		expected string
	}{
		"empty": {},
		"UTC": {
			timezone: "UTC",
			expected: "UTC",
		},
		"Europe/London": {
			timezone: "Europe/London",
			expected: "Europe - London",
		},
		"America/Argentina/Buenos_Aires": {
			timezone: "America/Argentina/Buenos_Aires",
			expected: "America - Argentina - Buenos Aires",
		},
		"America/Port_of_Spain": {
			timezone: "America/Port_of_Spain",
			expected: "America - Port of Spain",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, FormatTimezone(testCase.timezone))
		})
	}
}
