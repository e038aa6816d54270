package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/privascan/privascan/internal/config"
	"github.com/privascan/privascan/internal/model"
)

// Per-component scoring bands. Each present component scores within its
// band; the exact position inside the band is a deterministic function of
// the signal's own identifying value, standing in for an empirical
// population-frequency lookup.
const (
	canvasBase, canvasSpan       = 0.85, 0.15
	webglBase, webglSpan         = 0.70, 0.25
	audioBase, audioSpan         = 0.65, 0.30
	timezoneBase, timezoneSpan   = 0.20, 0.30
	navigatorBase, navigatorSpan = 0.40, 0.30

	// Fonts score from a base by detected count: more fonts means a more
	// distinctive installation, capped at fontsBase+fontsSpan.
	fontsBase, fontsSpan = 0.50, 0.40
	fontsCountCeiling    = 100

	// Screens at a mass-market resolution blend into a large population;
	// anything else is notably identifying.
	screenCommon   = 0.30
	screenUncommon = 0.60
)

// Scorer estimates per-component uniqueness from collected signals.
// It is parameterized by the scoring tables (for the common-resolution
// list) and holds no mutable state, so a single Scorer may serve
// concurrent scans.
type Scorer struct {
	scoring config.Scoring
}

// NewScorer creates a Scorer using the given scoring tables.
func NewScorer(scoring config.Scoring) *Scorer {
	return &Scorer{scoring: scoring}
}

// Score returns the per-component uniqueness map for the given signals.
// Only components present in the input receive an entry; every score is in
// [0,1]. A nil input yields an empty map.
//
// The scores are fully deterministic: the same signals always produce the
// same map, on any host and across restarts. This keeps the downstream
// uniqueness value regression-testable.
func (s *Scorer) Score(signals *model.FingerprintSignals) map[string]float64 {
	scores := make(map[string]float64)
	if signals == nil {
		return scores
	}

	if signals.Canvas != nil {
		scores[model.ComponentCanvas] = canvasBase + bandFraction(signals.Canvas.Hash)*canvasSpan
	}
	if signals.WebGL != nil {
		scores[model.ComponentWebGL] = webglBase + bandFraction(signals.WebGL.Hash)*webglSpan
	}
	if signals.Audio != nil {
		scores[model.ComponentAudio] = audioBase + bandFraction(signals.Audio.Hash)*audioSpan
	}
	if signals.Fonts != nil {
		scores[model.ComponentFonts] = fontScore(signals.Fonts.Count)
	}
	if signals.Timezone != nil {
		scores[model.ComponentTimezone] = timezoneBase + bandFraction(signals.Timezone.Name)*timezoneSpan
	}
	if signals.Screen != nil {
		scores[model.ComponentScreen] = s.screenScore(signals.Screen)
	}
	if signals.Navigator != nil {
		scores[model.ComponentNavigator] = navigatorBase + bandFraction(navigatorSeed(signals.Navigator))*navigatorSpan
	}

	return scores
}

// fontScore maps a detected-font count into [fontsBase, fontsBase+fontsSpan].
// More fonts monotonically raise the score; negative counts (malformed
// input) clamp to the base rather than erroring.
func fontScore(count int) float64 {
	if count < 0 {
		count = 0
	}
	ratio := float64(count) / fontsCountCeiling
	if ratio > 1 {
		ratio = 1
	}
	return fontsBase + ratio*fontsSpan
}

// screenScore scores a screen by whether its resolution is on the
// common-resolution list.
func (s *Scorer) screenScore(screen *model.ScreenSignal) float64 {
	res := fmt.Sprintf("%dx%d", screen.Width, screen.Height)
	for _, common := range s.scoring.CommonResolutions {
		if res == common {
			return screenCommon
		}
	}
	return screenUncommon
}

// navigatorSeed builds the deterministic seed for the navigator component
// from its identifying properties.
func navigatorSeed(nav *model.NavigatorSignal) string {
	return strings.Join([]string{
		nav.Platform,
		nav.Language,
		fmt.Sprintf("%d", nav.HardwareConcurrency),
		fmt.Sprintf("%g", nav.DeviceMemory),
	}, hashDelimiter)
}

// bandFraction maps a seed string to a deterministic fraction in [0,1).
// The first four bytes of the seed's SHA-256 digest are interpreted as an
// unsigned integer and scaled down, so distinct signal values spread
// uniformly across their band while identical values always land on the
// same spot.
func bandFraction(seed string) float64 {
	sum := sha256.Sum256([]byte(seed))
	return float64(binary.BigEndian.Uint32(sum[:4])) / float64(1<<32)
}
