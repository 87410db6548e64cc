package query

import "fmt"

// Span is a half-open byte range [Begin, End) into one file.
type Span struct {
	Begin uint32 `json:"begin"`
	End   uint32 `json:"end"`
}

// Len returns End-Begin for display. A malformed span (End < Begin) reports zero; ordering
// does not use Len.
func (s Span) Len() uint32 {
	if s.End < s.Begin {
		return 0
	}
	return s.End - s.Begin
}

// extent is the unchecked unsigned difference the ordering sorts by. A malformed span
// wraps to a huge extent and sorts after every well-formed one.
func (s Span) extent() uint32 {
	return s.End - s.Begin
}

// Valid reports whether Begin <= End.
func (s Span) Valid() bool {
	return s.Begin <= s.End
}

// Contains reports whether offset lies inside the span. An empty span contains its own start.
func (s Span) Contains(offset uint32) bool {
	if s.Begin == s.End {
		return offset == s.Begin
	}
	return offset >= s.Begin && offset < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Begin, s.End)
}
