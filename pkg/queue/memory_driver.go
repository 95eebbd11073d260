package queue

import "context"

// memoryBuffer caps how many serialized jobs can sit unprocessed before
// Push blocks.
const memoryBuffer = 1000

// MemoryDriver keeps jobs in a channel inside the process. Suits tests and
// development; nothing survives a restart.
type MemoryDriver struct {
	jobs chan []byte
}

func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{jobs: make(chan []byte, memoryBuffer)}
}

func (d *MemoryDriver) Push(payload []byte) error {
	d.jobs <- payload
	return nil
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case payload := <-d.jobs:
		return payload, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
