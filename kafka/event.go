// Package kafka maps the JSON batch-event payload delivered to a Lambda
// function by a Kafka event source onto typed values and back.
//
// Both managed (MSK) and self-managed clusters deliver the same envelope: a
// batch of records grouped per topic-partition, with base64 keys/values, a
// header list, and a discriminated timestamp. Decoding is strict about shape
// (missing fields, unknown enum values and malformed headers are errors) but
// deliberately lenient about key/value base64; see base64.go.
//
// Event implements json.Marshaler and json.Unmarshaler, so it can be used
// directly as a Lambda handler argument:
//
//	func handle(ctx context.Context, event kafka.Event) error {
//	    for _, records := range event.Records {
//	        for _, rec := range records {
//	            ...
//	        }
//	    }
//	    return nil
//	}
package kafka

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventSource identifies the cluster flavor that produced the event.
type EventSource string

const (
	// EventSourceMSK - a managed (MSK) cluster. These events carry an ARN.
	EventSourceMSK EventSource = "aws:kafka"
	// EventSourceSelfManaged - a self-managed cluster.
	EventSourceSelfManaged EventSource = "SelfManagedKafka"
)

// Event is a decoded Kafka batch event.
//
// Records is keyed by opaque "topic-partition" strings; the keys are not
// parsed further. SourceARN is empty when the wire field was absent (it is
// only present for MSK sources).
type Event struct {
	Source           EventSource
	SourceARN        string
	BootstrapServers []string
	Records          map[string][]Record[[]byte]
}

type eventWire struct {
	EventSource      *string                      `json:"eventSource"`
	EventSourceARN   *string                      `json:"eventSourceArn,omitempty"`
	BootstrapServers *string                      `json:"bootstrapServers"`
	Records          map[string][]json.RawMessage `json:"records"`
}

type eventWireOut struct {
	EventSource      string                  `json:"eventSource"`
	EventSourceARN   *string                 `json:"eventSourceArn,omitempty"`
	BootstrapServers string                  `json:"bootstrapServers"`
	Records          map[string][]recordWire `json:"records"`
}

// UnmarshalJSON decodes the batch-event envelope. Failures are *DecodeError
// values naming the offending field.
func (e *Event) UnmarshalJSON(data []byte) error {
	var w eventWire
	if err := json.Unmarshal(data, &w); err != nil {
		return wrapJSONError(err)
	}
	switch {
	case w.EventSource == nil:
		return missingField("eventSource")
	case w.BootstrapServers == nil:
		return missingField("bootstrapServers")
	case w.Records == nil:
		return missingField("records")
	}

	source := EventSource(*w.EventSource)
	switch source {
	case EventSourceMSK, EventSourceSelfManaged:
	default:
		return &DecodeError{Field: "eventSource", Value: *w.EventSource, Kind: ErrUnrecognizedVariant}
	}

	// Split first, then check. strings.Split never returns an empty slice
	// (an empty input splits to one empty element), so a present field
	// always passes; the order of operations matches the producing side
	// and must stay split-then-check.
	servers := strings.Split(*w.BootstrapServers, ",")
	if len(servers) == 0 {
		return &DecodeError{Field: "bootstrapServers", Kind: ErrEmptyBootstrapServers}
	}

	records := make(map[string][]Record[[]byte], len(w.Records))
	for key, raws := range w.Records {
		recs := make([]Record[[]byte], len(raws))
		for i, raw := range raws {
			rec, err := decodeRecord(raw)
			if err != nil {
				return fmt.Errorf("records[%q][%d]: %w", key, i, err)
			}
			recs[i] = rec
		}
		records[key] = recs
	}

	e.Source = source
	e.SourceARN = ""
	if w.EventSourceARN != nil {
		e.SourceARN = *w.EventSourceARN
	}
	e.BootstrapServers = servers
	e.Records = records
	return nil
}

// MarshalJSON encodes the event as the exact inverse of UnmarshalJSON.
// Absent optional fields are omitted entirely, never emitted as null.
func (e Event) MarshalJSON() ([]byte, error) {
	w := eventWireOut{
		EventSource:      string(e.Source),
		BootstrapServers: strings.Join(e.BootstrapServers, ","),
		Records:          make(map[string][]recordWire, len(e.Records)),
	}
	if e.SourceARN != "" {
		w.EventSourceARN = &e.SourceARN
	}
	for key, recs := range e.Records {
		wires := make([]recordWire, len(recs))
		for i, rec := range recs {
			wires[i] = encodeRecord(rec)
		}
		w.Records[key] = wires
	}
	return json.Marshal(w)
}
