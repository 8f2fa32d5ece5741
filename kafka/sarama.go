package kafka

import "github.com/IBM/sarama"

// FromConsumerMessage converts a sarama consumer message into a Record, so
// handler code written against a sarama consumer group can be reused for
// Lambda-delivered batches.
//
// sarama does not expose the broker's timestamp type directly: a non-zero
// BlockTimestamp means the broker stamped the record on append, otherwise a
// non-zero Timestamp is the producer's creation time.
func FromConsumerMessage(m *sarama.ConsumerMessage) Record[[]byte] {
	r := Record[[]byte]{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Timestamp: NoTimestamp(),
	}
	switch {
	case !m.BlockTimestamp.IsZero():
		r.Timestamp = LogAppendTime(m.BlockTimestamp)
	case !m.Timestamp.IsZero():
		r.Timestamp = CreateTime(m.Timestamp)
	}
	if len(m.Headers) > 0 {
		r.Headers = make([]Header, 0, len(m.Headers))
		for _, h := range m.Headers {
			if h == nil {
				continue
			}
			r.Headers = append(r.Headers, Header{Key: string(h.Key), Value: h.Value})
		}
	}
	if m.Key != nil {
		key := m.Key
		r.Key = &key
	}
	if m.Value != nil {
		value := m.Value
		r.Value = &value
	}
	return r
}

// ProducerMessage converts a record into a sarama producer message, e.g. to
// forward a failed record to a dead letter topic. Absent key/value payloads
// stay unset on the produced message.
func ProducerMessage(r Record[[]byte]) *sarama.ProducerMessage {
	msg := &sarama.ProducerMessage{Topic: r.Topic}
	if at, ok := r.Timestamp.Time(); ok {
		msg.Timestamp = at
	}
	if r.Key != nil {
		msg.Key = sarama.ByteEncoder(*r.Key)
	}
	if r.Value != nil {
		msg.Value = sarama.ByteEncoder(*r.Value)
	}
	if len(r.Headers) > 0 {
		msg.Headers = make([]sarama.RecordHeader, len(r.Headers))
		for i, h := range r.Headers {
			msg.Headers[i] = sarama.RecordHeader{Key: []byte(h.Key), Value: h.Value}
		}
	}
	return msg
}
