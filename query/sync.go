package query

import "sync"

// SyncCollector is a Collector guarded by a mutex, for callers that cannot serialize
// Ingest and Drain themselves.
type SyncCollector struct {
	mu sync.Mutex
	c  *Collector
}

// NewSync creates an empty synchronized collector for file.
func NewSync(file FileRef, opts ...Option) *SyncCollector {
	return &SyncCollector{c: New(file, opts...)}
}

func (s *SyncCollector) File() FileRef {
	return s.c.File()
}

func (s *SyncCollector) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Len()
}

func (s *SyncCollector) Ingest(batch []*Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Ingest(batch)
}

func (s *SyncCollector) Drain() []*Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Drain()
}
