package redisqueue

import "github.com/vmihailenco/msgpack/v5"

// MsgpackCodec encodes/decodes tasks as MessagePack.
type MsgpackCodec struct{}

func (c *MsgpackCodec) Encode(t *Task) ([]byte, error) {
	return msgpack.Marshal(t)
}

func (c *MsgpackCodec) Decode(data []byte) (*Task, error) {
	var t Task
	if err := msgpack.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *MsgpackCodec) Name() string { return CodecNameMsgpack }
