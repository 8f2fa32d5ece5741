package kafka

import (
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// TraceparentHeader is the W3C trace context record header.
const TraceparentHeader = "traceparent"

// SpanContextFromHeaders extracts a remote span context from a W3C
// traceparent record header, so a handler can link its spans to the
// producer's trace. Returns false when no traceparent header is present or
// it does not parse to a valid span context.
func SpanContextFromHeaders(headers []Header) (trace.SpanContext, bool) {
	var raw string
	for _, h := range headers {
		if strings.EqualFold(h.Key, TraceparentHeader) {
			raw = string(h.Value)
			break
		}
	}
	if raw == "" {
		return trace.SpanContext{}, false
	}

	// version-traceid-spanid-flags
	parts := strings.Split(raw, "-")
	if len(parts) != 4 || parts[0] != "00" {
		return trace.SpanContext{}, false
	}
	traceID, err := trace.TraceIDFromHex(parts[1])
	if err != nil {
		return trace.SpanContext{}, false
	}
	spanID, err := trace.SpanIDFromHex(parts[2])
	if err != nil {
		return trace.SpanContext{}, false
	}
	flags, err := strconv.ParseUint(parts[3], 16, 8)
	if err != nil {
		return trace.SpanContext{}, false
	}

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.TraceFlags(flags),
		Remote:     true,
	})
	return sc, sc.IsValid()
}
