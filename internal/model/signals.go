package model

// FingerprintSignals holds the client-collected browser fingerprint data.
// Every field is optional: a nil sub-struct means the collector did not
// gather that signal category, which is distinct from a collected-but-empty
// value. The scoring engine treats absence as a first-class case and never
// fails because a category is missing.
//
// Design decision: We use pointer fields per category rather than a flat
// struct with zero values because "not collected" and "collected as zero"
// have different meanings for scoring. A missing canvas signal must not
// contribute a canvas component score at all.
//
// JSON field names are camelCase because the payloads originate from
// browser-side collectors and are shared with a JavaScript ecosystem.
type FingerprintSignals struct {
	// Canvas holds the canvas rendering fingerprint.
	Canvas *CanvasSignal `json:"canvas,omitempty"`

	// WebGL holds the WebGL context fingerprint.
	WebGL *WebGLSignal `json:"webgl,omitempty"`

	// Audio holds the audio processing fingerprint.
	Audio *AudioSignal `json:"audio,omitempty"`

	// Fonts holds the detected font list fingerprint.
	Fonts *FontSignal `json:"fonts,omitempty"`

	// Timezone holds the reported timezone.
	Timezone *TimezoneSignal `json:"timezone,omitempty"`

	// Screen holds the screen geometry.
	Screen *ScreenSignal `json:"screen,omitempty"`

	// Navigator holds navigator object properties.
	Navigator *NavigatorSignal `json:"navigator,omitempty"`
}

// CanvasSignal is the result of canvas fingerprint collection.
type CanvasSignal struct {
	// Hash is a digest of the rendered canvas pixels.
	Hash string `json:"hash"`

	// Winding indicates whether the evenodd winding rule is supported.
	Winding bool `json:"winding"`
}

// WebGLSignal is the result of WebGL fingerprint collection.
type WebGLSignal struct {
	// Hash is a digest of the WebGL parameter dump.
	Hash string `json:"hash"`

	// Vendor is the unmasked GPU vendor string.
	Vendor string `json:"vendor,omitempty"`

	// Renderer is the unmasked GPU renderer string.
	Renderer string `json:"renderer,omitempty"`

	// Extensions lists the supported WebGL extensions.
	Extensions []string `json:"extensions,omitempty"`
}

// AudioSignal is the result of audio fingerprint collection.
type AudioSignal struct {
	// Hash is a digest of the rendered audio buffer.
	Hash string `json:"hash"`

	// Value is the raw summed sample value used to derive the hash.
	Value float64 `json:"value,omitempty"`
}

// FontSignal is the result of installed-font detection.
type FontSignal struct {
	// Hash is a digest of the detected font list.
	Hash string `json:"hash"`

	// Count is the number of detected fonts.
	Count int `json:"count"`

	// List contains the detected font names.
	List []string `json:"list,omitempty"`
}

// TimezoneSignal is the reported timezone.
type TimezoneSignal struct {
	// Name is the IANA timezone name (e.g. "Europe/Berlin").
	Name string `json:"name"`

	// Offset is the UTC offset in minutes.
	Offset int `json:"offset"`
}

// ScreenSignal is the reported screen geometry.
type ScreenSignal struct {
	// Width is the screen width in CSS pixels.
	Width int `json:"width"`

	// Height is the screen height in CSS pixels.
	Height int `json:"height"`

	// ColorDepth is the color depth in bits.
	ColorDepth int `json:"colorDepth,omitempty"`

	// PixelRatio is the device pixel ratio.
	PixelRatio float64 `json:"pixelRatio,omitempty"`
}

// NavigatorSignal holds navigator object properties.
type NavigatorSignal struct {
	// Platform is the reported platform (e.g. "Win32", "MacIntel").
	Platform string `json:"platform"`

	// Language is the primary browser language (e.g. "en-US").
	Language string `json:"language"`

	// HardwareConcurrency is the reported logical CPU count.
	HardwareConcurrency int `json:"hardwareConcurrency,omitempty"`

	// DeviceMemory is the reported device memory in GiB.
	DeviceMemory float64 `json:"deviceMemory,omitempty"`
}

// Component names used as keys in component score maps.
// These are the only categories the scorer produces entries for.
const (
	ComponentCanvas    = "canvas"
	ComponentWebGL     = "webgl"
	ComponentAudio     = "audio"
	ComponentFonts     = "fonts"
	ComponentTimezone  = "timezone"
	ComponentScreen    = "screen"
	ComponentNavigator = "navigator"
)
