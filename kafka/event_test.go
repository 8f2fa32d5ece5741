package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"syreclabs.com/go/faker"
)

func init() {
	faker.Seed(time.Now().UnixNano())
}

const mskEventJSON = `{
  "eventSource": "aws:kafka",
  "eventSourceArn": "arn:aws:kafka:us-east-1:012345678901:cluster/SalesCluster/abcd1234",
  "bootstrapServers": "b-2.demo-cluster-1.a1bcde.kafka.us-east-1.amazonaws.com:9092,b-1.demo-cluster-1.a1bcde.kafka.us-east-1.amazonaws.com:9092",
  "records": {
    "mytopic-0": [
      {
        "topic": "mytopic",
        "partition": 0,
        "offset": 15,
        "timestampType": "CREATE_TIME",
        "timestamp": 1545084650987,
        "headers": [{"headerKey": [104, 101, 97, 100, 101, 114, 86, 97, 108, 117, 101]}],
        "key": "a2V5LTE=",
        "value": "SGVsbG8sIHRoaXMgaXMgYSB0ZXN0Lg=="
      }
    ]
  }
}`

func TestEventDecode(t *testing.T) {
	var event Event
	if err := json.Unmarshal([]byte(mskEventJSON), &event); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if event.Source != EventSourceMSK {
		t.Errorf("expected %q, got %q", EventSourceMSK, event.Source)
	}
	if !strings.HasPrefix(event.SourceARN, "arn:aws:kafka:") {
		t.Errorf("unexpected source ARN %q", event.SourceARN)
	}
	if len(event.BootstrapServers) != 2 {
		t.Fatalf("expected 2 bootstrap servers, got %d", len(event.BootstrapServers))
	}
	if !strings.HasPrefix(event.BootstrapServers[0], "b-2.") {
		t.Errorf("server order not preserved: %v", event.BootstrapServers)
	}

	records, ok := event.Records["mytopic-0"]
	if !ok {
		t.Fatalf("missing records for mytopic-0, got keys %v", event.Records)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Topic != "mytopic" || rec.Partition != 0 || rec.Offset != 15 {
		t.Errorf("unexpected record coordinates: %+v", rec)
	}
	if rec.Timestamp.Type() != TimestampCreate {
		t.Errorf("expected CREATE_TIME, got %v", rec.Timestamp.Type())
	}
	at, ok := rec.Timestamp.Time()
	if !ok {
		t.Fatal("expected timestamp instant")
	}
	if ms := timeToMillis(at); ms != 1545084650987 {
		t.Errorf("expected 1545084650987, got %d", ms)
	}
	if len(rec.Headers) != 1 || rec.Headers[0].Key != "headerKey" {
		t.Fatalf("unexpected headers: %v", rec.Headers)
	}
	if got := string(rec.Headers[0].Value); got != "headerValue" {
		t.Errorf("expected headerValue, got %q", got)
	}
	if rec.Key == nil || string(*rec.Key) != "key-1" {
		t.Errorf("unexpected key: %v", rec.Key)
	}
	if rec.Value == nil || string(*rec.Value) != "Hello, this is a test." {
		t.Errorf("unexpected value: %v", rec.Value)
	}
}

func TestEventDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		kind  error
		field string
	}{
		{
			name:  "missing eventSource",
			json:  `{"bootstrapServers": "b-1:9092", "records": {}}`,
			kind:  ErrMissingField,
			field: "eventSource",
		},
		{
			name:  "unknown eventSource",
			json:  `{"eventSource": "kafka", "bootstrapServers": "b-1:9092", "records": {}}`,
			kind:  ErrUnrecognizedVariant,
			field: "kafka",
		},
		{
			name:  "missing bootstrapServers",
			json:  `{"eventSource": "aws:kafka", "records": {}}`,
			kind:  ErrMissingField,
			field: "bootstrapServers",
		},
		{
			name: "missing records",
			json: `{"eventSource": "aws:kafka", "bootstrapServers": "b-1:9092"}`,
			kind: ErrMissingField,
		},
		{
			name: "wrong shape",
			json: `{"eventSource": "aws:kafka", "bootstrapServers": 42, "records": {}}`,
			kind: ErrTypeMismatch,
		},
		{
			name: "bad record propagates",
			json: `{"eventSource": "aws:kafka", "bootstrapServers": "b-1:9092",
				"records": {"t-0": [{"topic": "t", "partition": 0, "offset": 1,
				"timestampType": "WALL_CLOCK", "headers": []}]}}`,
			kind:  ErrUnrecognizedVariant,
			field: "WALL_CLOCK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var event Event
			err := json.Unmarshal([]byte(tt.json), &event)
			if err == nil {
				t.Fatal("expected decode error")
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("expected %v, got %v", tt.kind, err)
			}
			if !IsDecodeError(err) {
				t.Errorf("expected a DecodeError, got %T", err)
			}
			if tt.field != "" && !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error should name %q, got %q", tt.field, err)
			}
		})
	}
}

func TestEmptyBootstrapServers(t *testing.T) {
	// An empty string splits to one empty element, which is a non-empty
	// list. That matches what producers actually send and receive; the
	// empty-list failure is only reachable through the in-memory path.
	var event Event
	err := json.Unmarshal([]byte(`{"eventSource": "SelfManagedKafka", "bootstrapServers": "", "records": {}}`), &event)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff([]string{""}, event.BootstrapServers); diff != "" {
		t.Errorf("bootstrap servers mismatch (-want +got):\n%s", diff)
	}
}

func bytesPtr(b []byte) *[]byte { return &b }

func TestEventRoundTrip(t *testing.T) {
	topic := faker.Lorem().Word()
	event := Event{
		Source:           EventSourceSelfManaged,
		BootstrapServers: []string{"b-1:9092", "b-2:9092"},
		Records: map[string][]Record[[]byte]{
			fmt.Sprintf("%s-0", topic): {
				{
					Topic:     topic,
					Partition: 0,
					Offset:    int64(faker.RandomInt(0, 1<<30)),
					Timestamp: CreateTime(millisToTime(1545084650987)),
					Headers:   []Header{{Key: "content-type", Value: []byte("application/json")}},
					Key:       bytesPtr([]byte(faker.Lorem().Word())),
					Value:     bytesPtr([]byte(faker.Lorem().Sentence(3))),
				},
				{
					Topic:     topic,
					Partition: 0,
					Offset:    8,
					Timestamp: LogAppendTime(millisToTime(-42)),
					Headers:   []Header{},
					Value:     bytesPtr([]byte{}),
				},
				{
					Topic:     topic,
					Partition: 0,
					Offset:    9,
					Timestamp: NoTimestamp(),
					Headers:   []Header{},
				},
			},
		},
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	var decoded Event
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff(event, decoded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEventEncodeOmitsAbsentFields(t *testing.T) {
	event := Event{
		Source:           EventSourceSelfManaged,
		BootstrapServers: []string{"b-1:9092"},
		Records: map[string][]Record[[]byte]{
			"t-0": {{Topic: "t", Partition: 0, Offset: 1, Timestamp: NoTimestamp()}},
		},
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, present := raw["eventSourceArn"]; present {
		t.Error("eventSourceArn should be omitted when absent")
	}

	recs := raw["records"].(map[string]any)["t-0"].([]any)
	rec := recs[0].(map[string]any)
	for _, field := range []string{"key", "value", "timestamp"} {
		if _, present := rec[field]; present {
			t.Errorf("%s should be omitted when absent", field)
		}
	}
	if rec["timestampType"] != "NO_TIMESTAMP_TYPE" {
		t.Errorf("expected NO_TIMESTAMP_TYPE, got %v", rec["timestampType"])
	}
	if _, present := rec["headers"]; !present {
		t.Error("headers should always be present")
	}
}
