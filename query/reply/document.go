package reply

import (
	"sort"
	"unicode/utf8"

	"github.com/teranos/qresp/query"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Document is the text a session's spans index into.
type Document struct {
	File query.FileRef
	URI  protocol.DocumentUri
	Text string

	lineStarts []uint32
}

// NewDocument indexes text for offset to position conversion.
func NewDocument(file query.FileRef, uri string, text string) *Document {
	d := &Document{File: file, URI: protocol.DocumentUri(uri), Text: text, lineStarts: []uint32{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			d.lineStarts = append(d.lineStarts, uint32(i+1))
		}
	}
	return d
}

// Position converts a byte offset into an LSP position. Characters are counted in UTF-16
// code units. Offsets past the end clamp to the end of the text.
func (d *Document) Position(offset uint32) protocol.Position {
	if n := uint32(len(d.Text)); offset > n {
		offset = n
	}
	line := sort.Search(len(d.lineStarts), func(i int) bool { return d.lineStarts[i] > offset }) - 1
	start := d.lineStarts[line]

	var units uint32
	for off := start; off < offset; {
		r, size := utf8.DecodeRuneInString(d.Text[off:])
		if off+uint32(size) > offset {
			break
		}
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
		off += uint32(size)
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: units}
}

// Offset converts an LSP position back into a byte offset.
func (d *Document) Offset(pos protocol.Position) uint32 {
	if int(pos.Line) >= len(d.lineStarts) {
		return uint32(len(d.Text))
	}
	off := d.lineStarts[pos.Line]
	end := uint32(len(d.Text))
	if int(pos.Line)+1 < len(d.lineStarts) {
		end = d.lineStarts[pos.Line+1] - 1
	}

	var units uint32
	for off < end && units < pos.Character {
		r, size := utf8.DecodeRuneInString(d.Text[off:end])
		need := uint32(1)
		if r >= 0x10000 {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		off += uint32(size)
	}
	return off
}

func (d *Document) rangeOf(begin, end uint32) protocol.Range {
	return protocol.Range{Start: d.Position(begin), End: d.Position(end)}
}
