package intel

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/privascan/privascan/internal/config"
	"github.com/privascan/privascan/internal/model"
)

// Merger combines responses from multiple intelligence sources into a
// single normalized record. Sources are consulted concurrently and the
// merge waits for all of them to settle; field conflicts are resolved by
// role priority (primary, then backup, then asn), first writer wins.
type Merger struct {
	sources    []Source
	confidence config.SourceConfidence
	logger     *slog.Logger
}

// NewMerger creates a Merger over the given sources. The source order is
// normalized to role priority so that callers can pass sources in any
// order. The sort is stable: two sources of the same role keep their
// relative order.
func NewMerger(sources []Source, confidence config.SourceConfidence, logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	ordered := make([]Source, len(sources))
	copy(ordered, sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rolePriority(ordered[i].Role()) < rolePriority(ordered[j].Role())
	})
	return &Merger{
		sources:    ordered,
		confidence: confidence,
		logger:     logger,
	}
}

// lookupResult carries one settled source response. A nil data field
// marks a failed lookup.
type lookupResult struct {
	source Source
	data   *model.SourceData
}

// Merge consults every source for the IP and folds the responses into
// one record. Every source gets a chance to settle: a failed source is
// logged and skipped, and the merge succeeds as long as the context
// stays live. The returned record always carries the IP, its detected
// version, and a confidence value reflecting which roles answered.
func (m *Merger) Merge(ctx context.Context, ip string) (*model.IPIntelligence, error) {
	results := make([]lookupResult, len(m.sources))

	var g errgroup.Group
	for i, src := range m.sources {
		g.Go(func() error {
			data, err := src.Lookup(ctx, ip)
			if err != nil {
				m.logger.Warn("intelligence source failed",
					slog.String("source", src.Name()),
					slog.String("role", src.Role()),
					slog.String("error", err.Error()))
				return nil
			}
			results[i] = lookupResult{source: src, data: data}
			return nil
		})
	}
	_ = g.Wait() // goroutines never return an error

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record := &model.IPIntelligence{
		IP:      ip,
		Version: detectVersion(ip),
	}
	state := fieldState{}
	for _, res := range results {
		if res.data == nil {
			continue
		}
		m.fold(record, &state, res)
	}
	if record.Confidence > 1 {
		record.Confidence = 1
	}
	record.Reputation.Score = ReputationScore(record)
	record.Reputation.Blacklisted = state.blacklisted
	record.Reputation.Categories = state.categories
	return record, nil
}

// fieldState tracks which fields have already been written so that a
// lower-priority source cannot overwrite a higher-priority one.
type fieldState struct {
	country, countryCode            bool
	region, city, timezone          bool
	latitude, longitude             bool
	asn, asnName, org               bool
	vpn, proxy, tor                 bool
	datacenter, relay, crawler      bool
	blacklistedSet                  bool

	blacklisted bool
	categories  []string
}

// fold merges one settled response into the record, first writer wins
// per field, and accounts the source in the sources list and confidence.
func (m *Merger) fold(record *model.IPIntelligence, state *fieldState, res lookupResult) {
	d := res.data

	setString(&record.Location.Country, &state.country, d.Country)
	setString(&record.Location.CountryCode, &state.countryCode, d.CountryCode)
	setString(&record.Location.Region, &state.region, d.Region)
	setString(&record.Location.City, &state.city, d.City)
	setString(&record.Location.Timezone, &state.timezone, d.Timezone)
	if d.Latitude != nil && !state.latitude {
		record.Location.Latitude = *d.Latitude
		state.latitude = true
	}
	if d.Longitude != nil && !state.longitude {
		record.Location.Longitude = *d.Longitude
		state.longitude = true
	}

	setString(&record.Network.ASN, &state.asn, d.ASN)
	setString(&record.Network.ASNName, &state.asnName, d.ASNName)
	setString(&record.Network.Organization, &state.org, d.Organization)

	setBool(&record.Privacy.VPN, &state.vpn, d.VPN)
	setBool(&record.Privacy.Proxy, &state.proxy, d.Proxy)
	setBool(&record.Privacy.Tor, &state.tor, d.Tor)
	setBool(&record.Privacy.Datacenter, &state.datacenter, d.Datacenter)
	setBool(&record.Privacy.Relay, &state.relay, d.Relay)
	setBool(&record.Privacy.Crawler, &state.crawler, d.Crawler)

	setBool(&state.blacklisted, &state.blacklistedSet, d.Blacklisted)
	if len(state.categories) == 0 && len(d.Categories) > 0 {
		state.categories = append([]string(nil), d.Categories...)
	}

	record.Sources = append(record.Sources, res.source.Name())
	record.Confidence += m.confidence.ForRole(res.source.Role())
}

func setString(dst *string, set *bool, val string) {
	if *set || val == "" {
		return
	}
	*dst = val
	*set = true
}

func setBool(dst *bool, set *bool, val *bool) {
	if *set || val == nil {
		return
	}
	*dst = *val
	*set = true
}

// detectVersion classifies an IP literal as IPv4 or IPv6. Anything
// containing a colon is treated as IPv6.
func detectVersion(ip string) string {
	if strings.Contains(ip, ":") {
		return model.IPVersion6
	}
	return model.IPVersion4
}
