package query

// Tracer receives diagnostic events from a Collector. Implementations must not retain or
// modify the responses they are shown.
type Tracer interface {
	// Ingested is called for every response moved into the buffer.
	Ingested(file FileRef, r *Response)
	// Skipped is called for every batch slot that was not ingested.
	Skipped(file FileRef, index int, reason SkipReason)
	// Drained is called once per Drain with the number of responses returned.
	Drained(file FileRef, n int)
}

// SkipReason explains why an ingest slot was dropped.
type SkipReason uint8

const (
	SkipAbsent SkipReason = iota
	SkipNotResponse
	SkipTaken
)

func (r SkipReason) String() string {
	switch r {
	case SkipAbsent:
		return "absent"
	case SkipNotResponse:
		return "not_query_response"
	case SkipTaken:
		return "already_taken"
	}
	return "unknown"
}

// NopTracer discards all events.
type NopTracer struct{}

func (NopTracer) Ingested(FileRef, *Response)      {}
func (NopTracer) Skipped(FileRef, int, SkipReason) {}
func (NopTracer) Drained(FileRef, int)             {}
