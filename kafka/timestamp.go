package kafka

import (
	"fmt"
	"time"
)

// TimestampType discriminates the three broker timestamp variants.
type TimestampType string

const (
	// TimestampNone - the broker recorded no timestamp for the record.
	TimestampNone TimestampType = "NO_TIMESTAMP_TYPE"
	// TimestampCreate - the producer set the timestamp at creation.
	TimestampCreate TimestampType = "CREATE_TIME"
	// TimestampLogAppend - the broker set the timestamp on append.
	TimestampLogAppend TimestampType = "LOG_APPEND_TIME"
)

// Timestamp is a tagged variant over the three broker timestamp cases.
// It is modeled as a closed sum rather than a nullable time plus flag so
// the no-timestamp case stays distinguishable from a present-but-zero
// instant. The zero value is the no-timestamp variant.
type Timestamp struct {
	typ TimestampType
	at  time.Time
}

// NoTimestamp returns the variant without an instant.
func NoTimestamp() Timestamp {
	return Timestamp{typ: TimestampNone}
}

// CreateTime returns a producer-assigned timestamp.
func CreateTime(at time.Time) Timestamp {
	return Timestamp{typ: TimestampCreate, at: at.UTC()}
}

// LogAppendTime returns a broker-assigned timestamp.
func LogAppendTime(at time.Time) Timestamp {
	return Timestamp{typ: TimestampLogAppend, at: at.UTC()}
}

// Type returns the variant discriminator.
func (ts Timestamp) Type() TimestampType {
	if ts.typ == "" {
		return TimestampNone
	}
	return ts.typ
}

// Time returns the carried instant and true for the CreateTime and
// LogAppendTime variants, or the zero time and false otherwise.
func (ts Timestamp) Time() (time.Time, bool) {
	if ts.Type() == TimestampNone {
		return time.Time{}, false
	}
	return ts.at, true
}

// Equal reports whether two timestamps have the same variant and instant.
func (ts Timestamp) Equal(other Timestamp) bool {
	if ts.Type() != other.Type() {
		return false
	}
	return ts.at.Equal(other.at)
}

func (ts Timestamp) String() string {
	at, ok := ts.Time()
	if !ok {
		return string(TimestampNone)
	}
	return fmt.Sprintf("%s(%s)", ts.Type(), at.Format(time.RFC3339Nano))
}

// millisToTime converts epoch milliseconds to a UTC instant. UnixMilli
// decomposes with floor division for negative inputs.
func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// timeToMillis converts an instant to epoch milliseconds, truncating toward
// zero. For negative instants with sub-millisecond fractions this is not the
// inverse of millisToTime (floor vs truncate); that mismatch is carried over
// from the producing side of the wire format and must not be corrected here.
func timeToMillis(at time.Time) int64 {
	return at.UnixNano() / int64(time.Millisecond)
}
