package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// redactedKeys contains attribute keys whose values are always masked in
// full. A privacy scanner's logs must not become the very tracking record
// the tool warns about, so everything that identifies a scanned visitor
// is treated like a credential.
var redactedKeys = map[string]bool{
	// visitor identity
	"visitor_id": true,
	"visitorid":  true,
	"session_id": true,
	"sessionid":  true,

	// fingerprint material
	"canvas_hash":   true,
	"webgl_hash":    true,
	"audio_hash":    true,
	"fonts_hash":    true,
	"combined_hash": true,
	"fingerprint":   true,

	// generic credentials, in case a source API key ever reaches a log call
	"password":   true,
	"secret":     true,
	"token":      true,
	"api_key":    true,
	"apikey":     true,
	"credential": true,
}

// ipKeys contains attribute keys holding IP addresses. Addresses are
// partially masked rather than dropped so that logs stay correlatable
// within one run without recording the full address.
var ipKeys = map[string]bool{
	"ip":        true,
	"public_ip": true,
	"local_ip":  true,
	"address":   true,
}

var (
	// sha256Hex matches a full fingerprint digest appearing as a value
	// under any key.
	sha256Hex = regexp.MustCompile(`^[0-9a-f]{64}$`)

	// ipv4Literal matches a dotted-quad value under any key.
	ipv4Literal = regexp.MustCompile(`^(\d{1,3}\.\d{1,3}\.\d{1,3})\.\d{1,3}$`)
)

// MaskValue replaces fully redacted values.
const MaskValue = "***REDACTED***"

// hashPrefixLen is how many digest characters survive masking, enough to
// correlate log lines without reconstructing the fingerprint.
const hashPrefixLen = 8

// RedactHandler wraps an slog.Handler and masks visitor-identifying
// attribute values before they reach the underlying handler. It works
// with any handler (text, JSON) and composes with slog's standard APIs.
type RedactHandler struct {
	handler slog.Handler
}

// NewRedactHandler creates a RedactHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewRedactHandler(handler slog.Handler) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactHandler{handler: handler}
}

// Enabled delegates to the underlying handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes the record on.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added, masked
// first.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursively handling groups.
func (h *RedactHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	keyLower := strings.ToLower(a.Key)
	if redactedKeys[keyLower] {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}
	val := a.Value.String()

	if ipKeys[keyLower] {
		return slog.String(a.Key, maskIP(val))
	}
	if sha256Hex.MatchString(val) {
		return slog.String(a.Key, maskHash(val))
	}
	return a
}

// maskHash keeps a short digest prefix for correlation and masks the
// rest.
func maskHash(digest string) string {
	if len(digest) <= hashPrefixLen {
		return MaskValue
	}
	return digest[:hashPrefixLen] + "..."
}

// maskIP hides the host portion of an address: the last octet of an IPv4
// literal, everything after the second group of an IPv6 literal.
func maskIP(ip string) string {
	if m := ipv4Literal.FindStringSubmatch(ip); m != nil {
		return m[1] + ".xxx"
	}
	if strings.Contains(ip, ":") {
		groups := strings.SplitN(ip, ":", 3)
		if len(groups) >= 2 {
			return groups[0] + ":" + groups[1] + "::xxxx"
		}
	}
	if ip == "" {
		return ip
	}
	return MaskValue
}

// NewLogger creates a text-format slog.Logger that masks visitor
// identifiers. Verbose enables debug level; otherwise only warnings and
// errors are emitted.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a JSON-format slog.Logger that masks visitor
// identifiers. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
