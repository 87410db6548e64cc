// Package query collects the responses produced while answering an IDE query at a
// source location and orders them so the most specific interpretation comes first.
//
// A Collector buffers responses delivered in batches from the analysis workers and hands
// them back, sorted, in a single Drain. Collector is not safe for concurrent use: all
// calls to Ingest and Drain on one instance must be serialized by the caller, for example
// by ingesting only after every producing worker has finished or by feeding batches
// through Pump. SyncCollector is the locked variant.
package query

import (
	"cmp"
	"slices"
)

// Ingester accepts batches of upstream messages.
type Ingester interface {
	Ingest(batch []*Message)
}

// Collector buffers the query responses of one file for one session.
type Collector struct {
	file      FileRef
	tracer    Tracer
	responses []*Response
}

// Option configures a Collector.
type Option func(*Collector)

// WithTracer installs a diagnostic tracer. A nil tracer disables tracing.
func WithTracer(t Tracer) Option {
	return func(c *Collector) {
		if t == nil {
			t = NopTracer{}
		}
		c.tracer = t
	}
}

// WithCapacity preallocates room for n responses.
func WithCapacity(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.responses = make([]*Response, 0, n)
		}
	}
}

// New creates an empty collector for file.
func New(file FileRef, opts ...Option) *Collector {
	c := &Collector{file: file, tracer: NopTracer{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// File returns the file the collector was created for.
func (c *Collector) File() FileRef {
	return c.file
}

// Len returns the number of buffered responses.
func (c *Collector) Len() int {
	return len(c.responses)
}

// Ingest moves every query response in batch into the buffer, in batch order. Nil slots
// and messages of other kinds are skipped. Ingest never fails.
func (c *Collector) Ingest(batch []*Message) {
	for i, msg := range batch {
		switch {
		case msg == nil:
			c.tracer.Skipped(c.file, i, SkipAbsent)
			continue
		case msg.Kind != MessageQueryResponse:
			c.tracer.Skipped(c.file, i, SkipNotResponse)
			continue
		}
		r := msg.TakeResponse()
		if r == nil {
			c.tracer.Skipped(c.file, i, SkipTaken)
			continue
		}
		assertSpan(r)
		c.responses = append(c.responses, r)
		c.tracer.Ingested(c.file, r)
	}
}

// Drain empties the buffer and returns its responses ordered most useful first:
// narrower spans, then earlier begin, then earlier end, then higher Rank. Responses still
// tied keep their ingestion order. A second Drain without intervening Ingest returns an
// empty slice.
func (c *Collector) Drain() []*Response {
	out := c.responses
	c.responses = nil
	if out == nil {
		out = []*Response{}
	}
	slices.SortStableFunc(out, Compare)
	c.tracer.Drained(c.file, len(out))
	return out
}

// Compare orders two responses the way Drain does. It returns a negative number when a
// should come before b.
func Compare(a, b *Response) int {
	if c := cmp.Compare(a.Span.extent(), b.Span.extent()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Span.Begin, b.Span.Begin); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Span.End, b.Span.End); c != 0 {
		return c
	}
	return cmp.Compare(Rank(b.Kind()), Rank(a.Kind()))
}
