package models

// JSONWidget is the JSON API representation of a widget.
type JSONWidget struct {
	ID       string          `json:"id"`
	State    string          `json:"state"`
	Message  string          `json:"message,omitempty"`
	Record   *JSONRecord     `json:"record,omitempty"`
	Sections map[string]bool `json:"sections"`
}

// JSONRecord contains the IP information of a ready widget.
type JSONRecord struct {
	IP          string  `json:"ip"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	CountryName string  `json:"country_name"`
	Postal      string  `json:"postal"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ASN         string  `json:"asn"`
	Org         string  `json:"org"`
	Timezone    string  `json:"timezone"`
}
