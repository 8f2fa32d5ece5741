package kafka

import (
	"fmt"
	"strings"

	"github.com/rbaliyan/lambdaevent/payload"
)

// ContentTypeHeader is the conventional record header carrying the payload
// MIME type.
const ContentTypeHeader = "content-type"

// DecodeRecord decodes the raw key and value payloads of r with c into T.
// A nil codec uses the default (JSON).
func DecodeRecord[T any](r Record[[]byte], c payload.Codec) (Record[T], error) {
	if c == nil {
		c = payload.Default()
	}
	return MapRecord(r, func(data []byte) (T, error) {
		var v T
		if err := c.Decode(data, &v); err != nil {
			return v, fmt.Errorf("%s decode: %w", c.Name(), err)
		}
		return v, nil
	})
}

// RecordCodec picks the payload codec for r from its content-type header,
// falling back to the default codec when the header is absent or names an
// unregistered type.
func RecordCodec(r Record[[]byte]) payload.Codec {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Key, ContentTypeHeader) {
			return payload.MustGet(string(h.Value))
		}
	}
	return payload.Default()
}
