package ipinfo

// Record is the network information returned by the IP data API.
// Fields not listed here are ignored when decoding.
type Record struct {
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
