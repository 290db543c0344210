package dedup

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/fourth04/redisqueue"
)

// Fingerprinter derives a canonical, deterministic identity string from a
// task. Tasks the host considers duplicates must map to the same
// fingerprint; distinct tasks must collide only with overwhelming
// improbability.
type Fingerprinter interface {
	Fingerprint(t *redisqueue.Task) string
}

// FingerprintFunc adapts a plain function to the Fingerprinter interface.
type FingerprintFunc func(t *redisqueue.Task) string

// Fingerprint calls f.
func (f FingerprintFunc) Fingerprint(t *redisqueue.Task) string { return f(t) }

// Fingerprint is the default fingerprinter: hex SHA-256 over the task name
// and payload. Priority and metadata are excluded: re-queuing the same
// work at a different priority is still a duplicate.
func Fingerprint(t *redisqueue.Task) string {
	h := sha256.New()
	h.Write([]byte(t.Name))
	h.Write([]byte{0})
	h.Write(t.Payload)
	return hex.EncodeToString(h.Sum(nil))
}
