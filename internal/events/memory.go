package events

import (
	"context"
	"sync"
)

// MemoryPublisher implements Publisher by retaining messages in memory.
// Used for development and tests; nothing consumes what it retains.
type MemoryPublisher struct {
	mu       sync.RWMutex
	messages map[string][][]byte
	closed   bool
}

// NewMemoryPublisher creates a new in-memory publisher instance
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{messages: make(map[string][][]byte)}
}

// Publish records the message under its subject
func (p *MemoryPublisher) Publish(_ context.Context, subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Copy to avoid sharing the caller's buffer
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	p.messages[subject] = append(p.messages[subject], dataCopy)
	return nil
}

// Close marks the publisher closed
func (p *MemoryPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Published returns the messages recorded for a subject (for testing)
func (p *MemoryPublisher) Published(subject string) [][]byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.messages[subject]
}
