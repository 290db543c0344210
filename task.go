package redisqueue

// Task is the unit of work moved through queues. The queueing layer treats
// it as opaque: a task has no identity beyond its encoded byte form and,
// for deduplication, its fingerprint.
type Task struct {
	// Name identifies the kind of work; interpreted only by the host.
	Name string `json:"name,omitempty"`

	// Payload is the host-defined body of the task.
	Payload []byte `json:"payload,omitempty"`

	// Priority orders tasks in priority queues (higher = more urgent).
	// Ignored by the FIFO and LIFO disciplines.
	Priority int `json:"priority,omitempty"`

	// Meta carries optional host-defined attributes alongside the payload.
	Meta map[string]string `json:"meta,omitempty"`
}
