package kafka

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Header is a single Kafka record header. On the wire it is a JSON object
// with exactly one key, whose value is an array of byte values (0-255),
// not base64 text.
type Header struct {
	Key   string
	Value []byte
}

// MarshalJSON encodes the header as a single-key object with a byte-array
// value.
func (h Header) MarshalJSON() ([]byte, error) {
	vals := make([]int, len(h.Value))
	for i, b := range h.Value {
		vals[i] = int(b)
	}
	return json.Marshal(map[string][]int{h.Key: vals})
}

// UnmarshalJSON decodes a single-key header object. Objects with zero or
// more than one key fail with ErrMalformedHeader.
func (h *Header) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &DecodeError{Field: "headers", Value: jsonShape(err), Kind: ErrTypeMismatch}
	}
	switch len(raw) {
	case 1:
	case 0:
		return &DecodeError{Field: "headers", Value: "empty object", Kind: ErrMalformedHeader}
	default:
		return &DecodeError{Field: "headers", Value: "additional keys", Kind: ErrMalformedHeader}
	}
	for key, rawVals := range raw {
		var vals []int
		if err := json.Unmarshal(rawVals, &vals); err != nil {
			return &DecodeError{Field: key, Value: jsonShape(err), Kind: ErrTypeMismatch}
		}
		value := make([]byte, len(vals))
		for i, v := range vals {
			if v < 0 || v > 255 {
				return &DecodeError{Field: key, Value: strconv.Itoa(v), Kind: ErrTypeMismatch}
			}
			value[i] = byte(v)
		}
		h.Key, h.Value = key, value
	}
	return nil
}

// HeaderValue returns the value of the first header with the given key.
func HeaderValue(headers []Header, key string) ([]byte, bool) {
	for _, h := range headers {
		if h.Key == key {
			return h.Value, true
		}
	}
	return nil, false
}

// Record is a single consumed Kafka record. The payload type A is raw bytes
// as decoded from the wire; MapRecord derives records with decoded payloads.
// Key and Value are nil when the wire field was absent, which is distinct
// from a present empty payload.
type Record[A any] struct {
	Topic     string
	Partition int32
	Offset    int64
	Timestamp Timestamp
	Headers   []Header
	Key       *A
	Value     *A
}

// MapRecord applies f to the key and value payloads of r, leaving absent
// payloads absent. All other fields are carried over unchanged.
func MapRecord[A, B any](r Record[A], f func(A) (B, error)) (Record[B], error) {
	out := Record[B]{
		Topic:     r.Topic,
		Partition: r.Partition,
		Offset:    r.Offset,
		Timestamp: r.Timestamp,
		Headers:   r.Headers,
	}
	if r.Key != nil {
		k, err := f(*r.Key)
		if err != nil {
			return Record[B]{}, fmt.Errorf("record key: %w", err)
		}
		out.Key = &k
	}
	if r.Value != nil {
		v, err := f(*r.Value)
		if err != nil {
			return Record[B]{}, fmt.Errorf("record value: %w", err)
		}
		out.Value = &v
	}
	return out, nil
}

// recordWire is the wire shape of a record. The timestamp discriminator and
// instant are siblings of the other fields, not a nested object. Pointer
// fields distinguish absent from zero.
type recordWire struct {
	Topic         *string      `json:"topic"`
	Partition     *int32       `json:"partition"`
	Offset        *int64       `json:"offset"`
	TimestampType *string      `json:"timestampType"`
	Timestamp     *json.Number `json:"timestamp,omitempty"`
	Headers       *[]Header    `json:"headers"`
	Key           *string      `json:"key,omitempty"`
	Value         *string      `json:"value,omitempty"`
}

func decodeRecord(data []byte) (Record[[]byte], error) {
	var w recordWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Record[[]byte]{}, wrapJSONError(err)
	}
	switch {
	case w.Topic == nil:
		return Record[[]byte]{}, missingField("topic")
	case w.Partition == nil:
		return Record[[]byte]{}, missingField("partition")
	case w.Offset == nil:
		return Record[[]byte]{}, missingField("offset")
	case w.TimestampType == nil:
		return Record[[]byte]{}, missingField("timestampType")
	case w.Headers == nil:
		return Record[[]byte]{}, missingField("headers")
	}
	ts, err := decodeTimestamp(*w.TimestampType, w.Timestamp)
	if err != nil {
		return Record[[]byte]{}, err
	}
	r := Record[[]byte]{
		Topic:     *w.Topic,
		Partition: *w.Partition,
		Offset:    *w.Offset,
		Timestamp: ts,
		Headers:   *w.Headers,
	}
	if w.Key != nil {
		key := decodeBase64Lenient(*w.Key)
		r.Key = &key
	}
	if w.Value != nil {
		value := decodeBase64Lenient(*w.Value)
		r.Value = &value
	}
	return r, nil
}

func decodeTimestamp(typ string, ms *json.Number) (Timestamp, error) {
	switch TimestampType(typ) {
	case TimestampNone:
		return NoTimestamp(), nil
	case TimestampCreate, TimestampLogAppend:
		if ms == nil {
			return Timestamp{}, missingField("timestamp")
		}
		n, err := ms.Int64()
		if err != nil {
			return Timestamp{}, &DecodeError{Field: "timestamp", Value: ms.String(), Kind: ErrIntegerOutOfRange}
		}
		if TimestampType(typ) == TimestampCreate {
			return CreateTime(millisToTime(n)), nil
		}
		return LogAppendTime(millisToTime(n)), nil
	default:
		return Timestamp{}, &DecodeError{Field: "timestampType", Value: typ, Kind: ErrUnrecognizedVariant}
	}
}

func encodeRecord(r Record[[]byte]) recordWire {
	headers := r.Headers
	if headers == nil {
		headers = []Header{}
	}
	typ := string(r.Timestamp.Type())
	w := recordWire{
		Topic:         &r.Topic,
		Partition:     &r.Partition,
		Offset:        &r.Offset,
		TimestampType: &typ,
		Headers:       &headers,
	}
	if at, ok := r.Timestamp.Time(); ok {
		n := json.Number(strconv.FormatInt(timeToMillis(at), 10))
		w.Timestamp = &n
	}
	if r.Key != nil {
		key := base64.StdEncoding.EncodeToString(*r.Key)
		w.Key = &key
	}
	if r.Value != nil {
		value := base64.StdEncoding.EncodeToString(*r.Value)
		w.Value = &value
	}
	return w
}

// wrapJSONError converts encoding/json shape errors into decode errors that
// name the offending field. Errors that are already decode failures (from
// nested unmarshalers) pass through untouched.
func wrapJSONError(err error) error {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return err
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &DecodeError{Field: typeErr.Field, Value: typeErr.Value, Kind: ErrTypeMismatch}
	}
	return err
}

func jsonShape(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Value
	}
	return err.Error()
}
