// Package payload provides codecs for turning raw Kafka record bytes into
// application types.
//
// The kafka package decodes record keys and values only as far as raw bytes;
// what those bytes mean is up to the producer. A Codec closes the gap:
//
//	order, err := kafka.DecodeRecord[Order](rec, payload.JSON{})
//
// Codecs are also registered by content type, so a handler can pick the
// format per record when producers label payloads with a content-type
// header:
//
//	c := payload.MustGet(string(contentType))
package payload

// Codec encodes/decodes record payload data.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Encode serializes the payload to bytes.
	Encode(v any) ([]byte, error)

	// Decode deserializes bytes to the target type.
	// The target must be a pointer.
	Decode(data []byte, v any) error

	// ContentType returns the MIME type (e.g., "application/json").
	ContentType() string

	// Name returns a short identifier for this codec (e.g., "json", "msgpack").
	Name() string
}

// Default returns the default codec (JSON).
func Default() Codec {
	return JSON{}
}
