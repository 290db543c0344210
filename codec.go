package redisqueue

import "fmt"

// Codec defines the serialization contract for tasks stored in a queue.
// Implementations handle encoding/decoding tasks to/from bytes.
type Codec interface {
	// Encode serializes a task to bytes.
	Encode(t *Task) ([]byte, error)

	// Decode deserializes bytes into a task.
	Decode(data []byte) (*Task, error)

	// Name returns the codec identifier (e.g., "json", "msgpack").
	Name() string
}

// CodecName constants for configuration selectors.
const (
	CodecNameJSON    = "json"
	CodecNameMsgpack = "msgpack"
)

// CodecByName resolves a codec selector. The empty string selects JSON.
// Unknown selectors report ErrUnknownCodec; all producers and consumers
// sharing a collection must agree on the codec, so there is no silent
// fallback.
func CodecByName(name string) (Codec, error) {
	switch name {
	case CodecNameJSON, "":
		return &JSONCodec{}, nil
	case CodecNameMsgpack:
		return &MsgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}
