package model

// DNS leak types used in DNSLeakResult.LeakType.
const (
	DNSLeakNone    = "none"
	DNSLeakPartial = "partial"
	DNSLeakFull    = "full"
)

// DNSLeakResult is the outcome of a DNS leak test, supplied by the DNS
// detection collaborator. The scoring engine only derives a sub-score from
// it; it never runs DNS probes itself.
type DNSLeakResult struct {
	// IsLeak indicates whether any resolver outside the expected path
	// answered the test queries.
	IsLeak bool `json:"isLeak"`

	// LeakType is "none", "partial", or "full".
	LeakType string `json:"leakType"`

	// Servers lists the resolvers observed during the test.
	Servers []DNSServer `json:"servers,omitempty"`

	// DOHEnabled indicates DNS-over-HTTPS was in use.
	DOHEnabled bool `json:"dohEnabled"`

	// DOTEnabled indicates DNS-over-TLS was in use.
	DOTEnabled bool `json:"dotEnabled"`
}

// DNSServer describes one resolver observed in a DNS leak test.
type DNSServer struct {
	IP      string `json:"ip"`
	Country string `json:"country,omitempty"`
	ISP     string `json:"isp,omitempty"`

	// IsISP indicates the resolver belongs to the user's access provider,
	// which is the strongest signal of a leak past a VPN tunnel.
	IsISP bool `json:"isISP"`
}

// NAT types used in WebRTCLeakResult.NATType, in increasing order of
// address concealment. "relay" means all traffic goes through a TURN
// relay, which hides the real address entirely.
const (
	NATUnknown = "unknown"
	NATHost    = "host"
	NATSrflx   = "srflx"
	NATPrflx   = "prflx"
	NATRelay   = "relay"
)

// WebRTCLeakResult is the outcome of a WebRTC ICE candidate leak test,
// supplied by the WebRTC detection collaborator.
type WebRTCLeakResult struct {
	// IsLeak indicates whether any address leaked through ICE gathering.
	IsLeak bool `json:"isLeak"`

	// LocalIPs lists leaked private/LAN addresses.
	LocalIPs []string `json:"localIPs,omitempty"`

	// PublicIPs lists leaked public addresses. A public address leak is
	// the most severe WebRTC outcome because it bypasses VPN tunnels.
	PublicIPs []string `json:"publicIPs,omitempty"`

	// NATType is the dominant ICE candidate type observed.
	NATType string `json:"natType"`

	// MDNSLeak indicates mDNS hostname candidates were exposed.
	MDNSLeak bool `json:"mdnsLeak"`

	// IPv6Leak indicates IPv6 candidates were exposed.
	IPv6Leak bool `json:"ipv6Leak"`

	// RiskLevel is the detector's own classification of this result.
	RiskLevel RiskLevel `json:"riskLevel,omitempty"`

	// Risks contains the detector's human-readable risk descriptions.
	Risks []string `json:"risks,omitempty"`

	// Recommendations contains the detector's mitigation advice.
	Recommendations []string `json:"recommendations,omitempty"`
}
