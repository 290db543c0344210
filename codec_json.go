package redisqueue

import "encoding/json"

// JSONCodec encodes/decodes tasks as JSON.
type JSONCodec struct{}

func (c *JSONCodec) Encode(t *Task) ([]byte, error) {
	return json.Marshal(t)
}

func (c *JSONCodec) Decode(data []byte) (*Task, error) {
	var t Task
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *JSONCodec) Name() string { return CodecNameJSON }
