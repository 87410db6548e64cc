package reply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDocument_Position(t *testing.T) {
	doc := NewDocument("a.rb", "file:///a.rb", "def foo\n  bar\nend\n")

	tests := []struct {
		name   string
		offset uint32
		want   protocol.Position
	}{
		{"start", 0, protocol.Position{Line: 0, Character: 0}},
		{"inside first line", 4, protocol.Position{Line: 0, Character: 4}},
		{"newline itself", 7, protocol.Position{Line: 0, Character: 7}},
		{"second line", 10, protocol.Position{Line: 1, Character: 2}},
		{"last line", 14, protocol.Position{Line: 2, Character: 0}},
		{"past end clamps", 999, protocol.Position{Line: 3, Character: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, doc.Position(tt.offset))
		})
	}
}

func TestDocument_PositionCountsUTF16(t *testing.T) {
	// "é" is two bytes and one UTF-16 unit, "😀" is four bytes and two units.
	doc := NewDocument("a.rb", "file:///a.rb", "é😀x")
	assert.Equal(t, protocol.Position{Line: 0, Character: 1}, doc.Position(2))
	assert.Equal(t, protocol.Position{Line: 0, Character: 3}, doc.Position(6))
	assert.Equal(t, protocol.Position{Line: 0, Character: 4}, doc.Position(7))

	// Offsets inside a multi-byte rune round down to its start.
	assert.Equal(t, protocol.Position{Line: 0, Character: 1}, doc.Position(4))
}

func TestDocument_OffsetRoundTrip(t *testing.T) {
	doc := NewDocument("a.rb", "file:///a.rb", "x = 1\ny = é😀z\n")
	for _, off := range []uint32{0, 3, 6, 10, 12, 16} {
		assert.Equal(t, off, doc.Offset(doc.Position(off)), "offset %d", off)
	}
	assert.Equal(t, uint32(len(doc.Text)), doc.Offset(protocol.Position{Line: 40}))
	assert.Equal(t, uint32(5), doc.Offset(protocol.Position{Line: 0, Character: 99}))
}
