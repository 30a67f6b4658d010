// Package gapbuf implements the byte container backing every text buffer:
// a gap buffer holding valid UTF-8, exposed as two contiguous slices whose
// concatenation is the content. Local edits are O(1) amortized; positional
// queries are O(n) scans, and the char and line counts are cached until the
// next mutation.
package gapbuf

import (
	"unicode/utf8"
)

const (
	defaultGap = 1024 // Bytes reserved for the gap of a new buffer.
	growFactor = 2
)

// Buffer is a gap buffer over UTF-8 bytes. The gap sits at
// data[gapStart:gapEnd]; everything before and after it is content.
//
// Callers are responsible for passing byte ranges that lie on UTF-8
// boundaries. The buffer itself never splits a scalar value.
type Buffer struct {
	data     []byte
	gapStart int
	gapEnd   int

	// Cached counts, invalidated by Splice.
	chars      int
	lines      int
	charsValid bool
	linesValid bool
}

// New creates a buffer holding a copy of the given bytes.
func New(content []byte) *Buffer {
	data := make([]byte, len(content)+defaultGap)
	copy(data, content)
	return &Buffer{
		data:     data,
		gapStart: len(content),
		gapEnd:   len(data),
	}
}

// FromString creates a buffer from a string.
func FromString(s string) *Buffer {
	return New([]byte(s))
}

// Len returns the content length in bytes.
func (b *Buffer) Len() int {
	return len(b.data) - (b.gapEnd - b.gapStart)
}

// LenChars returns the content length in unicode scalar values.
func (b *Buffer) LenChars() int {
	if !b.charsValid {
		s0, s1 := b.Slices()
		b.chars = utf8.RuneCount(s0) + utf8.RuneCount(s1)
		b.charsValid = true
	}
	return b.chars
}

// LenLines returns the number of lines. A buffer with no trailing newline
// still counts its last (possibly empty) line, so this is never 0.
func (b *Buffer) LenLines() int {
	if !b.linesValid {
		n := 1
		s0, s1 := b.Slices()
		for _, s := range [2][]byte{s0, s1} {
			for _, c := range s {
				if c == '\n' {
					n++
				}
			}
		}
		b.lines = n
		b.linesValid = true
	}
	return b.lines
}

// Slices returns the two content slices around the gap. Their concatenation
// is the full content. Either may be empty. The slices alias the buffer and
// are invalidated by the next Splice.
func (b *Buffer) Slices() ([]byte, []byte) {
	return b.data[:b.gapStart], b.data[b.gapEnd:]
}

// Splice replaces the byte range [start, end) with the given bytes. It is
// the only mutator. The range must lie on UTF-8 boundaries.
func (b *Buffer) Splice(start, end int, insert []byte) {
	b.moveGapTo(start)
	// Removal: widen the gap over [start, end).
	b.gapEnd += end - start
	// Insertion: grow the gap if the replacement doesn't fit.
	if need := len(insert); need > b.gapEnd-b.gapStart {
		b.grow(need)
	}
	copy(b.data[b.gapStart:], insert)
	b.gapStart += len(insert)
	b.charsValid = false
	b.linesValid = false
}

// MakeContiguousIn forces the byte range [start, end) to appear in a single
// contiguous slice by shifting the gap outside it, and returns that slice.
// The slice aliases the buffer and is invalidated by the next Splice.
func (b *Buffer) MakeContiguousIn(start, end int) []byte {
	if end <= b.gapStart || start >= b.gapStart {
		return b.byteRange(start, end)
	}
	// The gap splits the range; move it to one side. Moving to whichever
	// boundary is closer touches fewer bytes.
	if b.gapStart-start < end-b.gapStart {
		b.moveGapTo(start)
		off := b.gapEnd - b.gapStart
		return b.data[start+off : end+off]
	}
	b.moveGapTo(end)
	return b.data[start:end]
}

// byteRange returns [start, end) assuming the gap is outside it.
func (b *Buffer) byteRange(start, end int) []byte {
	if end <= b.gapStart {
		return b.data[start:end]
	}
	off := b.gapEnd - b.gapStart
	return b.data[start+off : end+off]
}

// ByteAt returns the content byte at offset i.
func (b *Buffer) ByteAt(i int) byte {
	if i < b.gapStart {
		return b.data[i]
	}
	return b.data[i+b.gapEnd-b.gapStart]
}

// moveGapTo relocates the gap so that gapStart == at.
func (b *Buffer) moveGapTo(at int) {
	switch {
	case at < b.gapStart:
		n := b.gapStart - at
		copy(b.data[b.gapEnd-n:b.gapEnd], b.data[at:b.gapStart])
		b.gapStart = at
		b.gapEnd -= n
	case at > b.gapStart:
		n := at - b.gapStart
		copy(b.data[b.gapStart:], b.data[b.gapEnd:b.gapEnd+n])
		b.gapStart += n
		b.gapEnd += n
	}
}

// grow reallocates so the gap can hold at least need bytes.
func (b *Buffer) grow(need int) {
	size := len(b.data)*growFactor + need
	data := make([]byte, size)
	copy(data, b.data[:b.gapStart])
	tail := b.data[b.gapEnd:]
	copy(data[size-len(tail):], tail)
	b.gapEnd = size - len(tail)
	b.data = data
}

// String returns the full content. Allocates; meant for saving and tests.
func (b *Buffer) String() string {
	s0, s1 := b.Slices()
	out := make([]byte, 0, len(s0)+len(s1))
	out = append(out, s0...)
	out = append(out, s1...)
	return string(out)
}

// ---------------------------------------------------------------------------
// Positional queries
// ---------------------------------------------------------------------------

// ByteAtChar returns the byte offset of the ch-th scalar value. ch may equal
// LenChars, in which case Len is returned.
func (b *Buffer) ByteAtChar(ch int) int {
	off := 0
	s0, s1 := b.Slices()
	for _, s := range [2][]byte{s0, s1} {
		for len(s) > 0 {
			if ch == 0 {
				return off
			}
			_, size := utf8.DecodeRune(s)
			s = s[size:]
			off += size
			ch--
		}
	}
	return off
}

// CharAtByte returns the scalar offset of the content byte at off. off may
// equal Len, in which case LenChars is returned.
func (b *Buffer) CharAtByte(off int) int {
	ch := 0
	pos := 0
	s0, s1 := b.Slices()
	for _, s := range [2][]byte{s0, s1} {
		for len(s) > 0 {
			if pos >= off {
				return ch
			}
			_, size := utf8.DecodeRune(s)
			s = s[size:]
			pos += size
			ch++
		}
	}
	return ch
}

// CharAt returns the scalar value at char offset ch.
func (b *Buffer) CharAt(ch int) rune {
	off := b.ByteAtChar(ch)
	s0, s1 := b.Slices()
	if off < len(s0) {
		r, _ := utf8.DecodeRune(s0[off:])
		return r
	}
	r, _ := utf8.DecodeRune(s1[off-len(s0):])
	return r
}

// LineAtChar returns the 0-based line index holding the ch-th scalar.
func (b *Buffer) LineAtChar(ch int) int {
	line := 0
	i := 0
	s0, s1 := b.Slices()
	for _, s := range [2][]byte{s0, s1} {
		for len(s) > 0 {
			if i >= ch {
				return line
			}
			r, size := utf8.DecodeRune(s)
			if r == '\n' {
				line++
			}
			s = s[size:]
			i++
		}
	}
	return line
}

// CharAtLine returns the scalar offset of the first character of the given
// 0-based line. Lines past the end map to LenChars.
func (b *Buffer) CharAtLine(line int) int {
	if line <= 0 {
		return 0
	}
	ch := 0
	s0, s1 := b.Slices()
	for _, s := range [2][]byte{s0, s1} {
		for len(s) > 0 {
			r, size := utf8.DecodeRune(s)
			s = s[size:]
			ch++
			if r == '\n' {
				line--
				if line == 0 {
					return ch
				}
			}
		}
	}
	return ch
}

// ---------------------------------------------------------------------------
// Rune iteration
// ---------------------------------------------------------------------------

// RuneIter walks runes forward from a starting char offset.
type RuneIter struct {
	s0, s1 []byte
	off    int // byte offset into the concatenation
}

// RunesFrom returns an iterator positioned at the given char offset.
func (b *Buffer) RunesFrom(ch int) *RuneIter {
	s0, s1 := b.Slices()
	return &RuneIter{s0: s0, s1: s1, off: b.ByteAtChar(ch)}
}

// Next returns the next rune, or false when the content is exhausted.
func (it *RuneIter) Next() (rune, bool) {
	if it.off < len(it.s0) {
		r, size := utf8.DecodeRune(it.s0[it.off:])
		it.off += size
		return r, true
	}
	rel := it.off - len(it.s0)
	if rel < len(it.s1) {
		r, size := utf8.DecodeRune(it.s1[rel:])
		it.off += size
		return r, true
	}
	return 0, false
}

// RevRuneIter walks runes backward from a starting char offset.
type RevRuneIter struct {
	s0, s1 []byte
	off    int
}

// RunesBefore returns an iterator yielding runes strictly before the given
// char offset, in reverse order.
func (b *Buffer) RunesBefore(ch int) *RevRuneIter {
	s0, s1 := b.Slices()
	return &RevRuneIter{s0: s0, s1: s1, off: b.ByteAtChar(ch)}
}

// Next returns the previous rune, or false at the start of content.
func (it *RevRuneIter) Next() (rune, bool) {
	if it.off == 0 {
		return 0, false
	}
	if it.off > len(it.s0) {
		r, size := utf8.DecodeLastRune(it.s1[:it.off-len(it.s0)])
		it.off -= size
		return r, true
	}
	r, size := utf8.DecodeLastRune(it.s0[:it.off])
	it.off -= size
	return r, true
}
