package intel

import "github.com/privascan/privascan/internal/model"

// Reputation penalties. Each privacy-evasion indicator and each data gap
// subtracts its penalty from a perfect score of 100.
const (
	reputationBase = 100

	penaltyProxy      = 15
	penaltyVPN        = 10
	penaltyTor        = 25
	penaltyDatacenter = 20
	penaltyRelay      = 5
	penaltyCrawler    = 10

	// Low merge confidence is itself a trust signal: an address no source
	// could describe well gets penalized once below 0.5 and again below
	// 0.3.
	penaltyLowConfidence     = 10
	penaltyVeryLowConfidence = 10
	lowConfidenceThreshold   = 0.5
	veryLowConfidenceLimit   = 0.3

	penaltyMissingCountry = 5
	penaltyMissingCity    = 5
)

// ReputationScore derives the [0,100] reputation score from a merged
// intelligence record. Higher means more trusted.
func ReputationScore(record *model.IPIntelligence) int {
	score := reputationBase

	if record.Privacy.Proxy {
		score -= penaltyProxy
	}
	if record.Privacy.VPN {
		score -= penaltyVPN
	}
	if record.Privacy.Tor {
		score -= penaltyTor
	}
	if record.Privacy.Datacenter {
		score -= penaltyDatacenter
	}
	if record.Privacy.Relay {
		score -= penaltyRelay
	}
	if record.Privacy.Crawler {
		score -= penaltyCrawler
	}

	if record.Confidence < lowConfidenceThreshold {
		score -= penaltyLowConfidence
	}
	if record.Confidence < veryLowConfidenceLimit {
		score -= penaltyVeryLowConfidence
	}

	if record.Location.Country == "" {
		score -= penaltyMissingCountry
	}
	if record.Location.City == "" {
		score -= penaltyMissingCity
	}

	if score < 0 {
		score = 0
	}
	if score > reputationBase {
		score = reputationBase
	}
	return score
}
