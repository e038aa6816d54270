package model

// IP version strings used in IPIntelligence.Version.
const (
	IPVersion4 = "ipv4"
	IPVersion6 = "ipv6"
)

// IPIntelligence is the merged view of an IP address across all
// intelligence sources that responded. It is built incrementally by the
// intel merger: sources are consulted in priority order and each fills in
// only the fields that earlier sources left empty.
type IPIntelligence struct {
	// IP is the address this record describes.
	IP string `json:"ip"`

	// Version is "ipv4" or "ipv6", auto-detected from the address.
	Version string `json:"version"`

	// Location holds geolocation fields. All optional.
	Location GeoLocation `json:"location"`

	// Network holds ASN and organization fields. All optional.
	Network NetworkInfo `json:"network"`

	// Privacy holds the privacy-evasion indicator flags.
	// A false flag means "not reported" as well as "reported false";
	// sources that cannot assess an indicator simply leave it unset.
	Privacy PrivacyFlags `json:"privacy"`

	// Reputation is the derived trust estimate for this address.
	// It is computed once all sources have settled.
	Reputation Reputation `json:"reputation"`

	// Sources lists the identifiers of the sources that contributed.
	Sources []string `json:"sources"`

	// Confidence in [0,1] reflects how many and which sources responded.
	// Each successful source adds its fixed increment; the sum is clamped
	// to 1.
	Confidence float64 `json:"confidence"`
}

// GeoLocation holds the geolocation portion of an intelligence record.
type GeoLocation struct {
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"countryCode,omitempty"`
	City        string  `json:"city,omitempty"`
	Region      string  `json:"region,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	Timezone    string  `json:"timezone,omitempty"`
}

// NetworkInfo holds the network portion of an intelligence record.
type NetworkInfo struct {
	ASN          string `json:"asn,omitempty"`
	ASNName      string `json:"asnName,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// PrivacyFlags holds the privacy-evasion indicators reported for an IP.
// Each indicator independently lowers the reputation score when set.
type PrivacyFlags struct {
	VPN        bool `json:"isVPN"`
	Proxy      bool `json:"isProxy"`
	Tor        bool `json:"isTor"`
	Datacenter bool `json:"isDatacenter"`
	Relay      bool `json:"isRelay"`
	Crawler    bool `json:"isCrawler"`
}

// Reputation is a [0,100] trust estimate for an IP address.
type Reputation struct {
	// Score is the reputation score in [0,100]; higher is more trusted.
	Score int `json:"score"`

	// Blacklisted indicates membership on a known threat list.
	Blacklisted bool `json:"isBlacklisted"`

	// Categories lists threat-list categories, if any.
	Categories []string `json:"categories,omitempty"`
}
