package text

import (
	"bytes"
	"fmt"
	"sync"
	"unicode/utf8"
)

// Pattern is what a search can look for: a literal string, a single rune,
// or a set of literal strings (the match reports which one hit).
type Pattern interface {
	cacheKey() string
	literals() []string
}

// Lit is a literal string pattern.
type Lit string

func (l Lit) cacheKey() string   { return "l\x00" + string(l) }
func (l Lit) literals() []string { return []string{string(l)} }

// Ch is a single rune pattern.
type Ch rune

func (c Ch) cacheKey() string   { return "c\x00" + string(rune(c)) }
func (c Ch) literals() []string { return []string{string(rune(c))} }

// Set is a set of literal strings. Matches carry the index of the literal
// that hit; on ties at the same offset the lowest index wins.
type Set []string

func (s Set) cacheKey() string   { return "s\x00" + fmt.Sprint([]string(s)) }
func (s Set) literals() []string { return s }

// Match is one search hit.
type Match struct {
	Start Point
	End   Point
	// Index of the matched literal within a Set pattern; 0 otherwise.
	Index int
}

// searcher holds the byte forms of a pattern's literals. Building one is
// cheap for literals, but the cache keeps the door open for automata and
// gives searches a stable identity.
type searcher struct {
	lits [][]byte
}

var searchCache = struct {
	sync.RWMutex
	m map[string]*searcher
}{m: make(map[string]*searcher)}

// compile returns the cached searcher for a pattern.
func compile(p Pattern) (*searcher, error) {
	key := p.cacheKey()
	searchCache.RLock()
	s, ok := searchCache.m[key]
	searchCache.RUnlock()
	if ok {
		return s, nil
	}
	lits := p.literals()
	if len(lits) == 0 {
		return nil, fmt.Errorf("empty pattern set")
	}
	s = &searcher{}
	for _, l := range lits {
		s.lits = append(s.lits, []byte(l))
	}
	searchCache.Lock()
	searchCache.m[key] = s
	searchCache.Unlock()
	return s, nil
}

// next finds the earliest match in content at or after from. Ties between
// set entries go to the lowest index.
func (s *searcher) next(content []byte, from int) (start, end, index int, ok bool) {
	best := -1
	for i, lit := range s.lits {
		at := bytes.Index(content[from:], lit)
		if at < 0 {
			continue
		}
		at += from
		if best < 0 || at < start || (at == start && i < index) {
			best, start, end, index = i, at, at+len(lit), i
		}
	}
	return start, end, index, best >= 0
}

// prev finds the latest match in content ending at or before limit.
func (s *searcher) prev(content []byte, limit int) (start, end, index int, ok bool) {
	best := -1
	for i, lit := range s.lits {
		at := bytes.LastIndex(content[:limit], lit)
		if at < 0 {
			continue
		}
		if best < 0 || at > start || (at == start && i < index) {
			best, start, end, index = i, at, at+len(lit), i
		}
	}
	return start, end, index, best >= 0
}

// MatchIter streams matches in one direction.
type MatchIter struct {
	t       *Text
	s       *searcher
	content []byte
	at      int // byte offset of the next probe
	fwd     bool
	done    bool
}

// SearchFwd streams matches starting at from and moving forward.
func (t *Text) SearchFwd(p Pattern, from Point) (*MatchIter, error) {
	s, err := compile(p)
	if err != nil {
		return nil, err
	}
	return &MatchIter{
		t:       t,
		s:       s,
		content: t.buf.MakeContiguousIn(0, t.buf.Len()),
		at:      from.Byte,
		fwd:     true,
	}, nil
}

// SearchRev streams matches ending at or before from, moving backward.
func (t *Text) SearchRev(p Pattern, from Point) (*MatchIter, error) {
	s, err := compile(p)
	if err != nil {
		return nil, err
	}
	return &MatchIter{
		t:       t,
		s:       s,
		content: t.buf.MakeContiguousIn(0, t.buf.Len()),
		at:      from.Byte,
	}, nil
}

// Next returns the next match in the iterator's direction.
func (it *MatchIter) Next() (Match, bool) {
	if it.done {
		return Match{}, false
	}
	if it.fwd {
		start, end, index, ok := it.s.next(it.content, it.at)
		if !ok {
			it.done = true
			return Match{}, false
		}
		if end == start {
			// An empty match advances by one scalar value so the stream
			// terminates, even on multi-byte input.
			_, size := utf8.DecodeRune(it.content[start:])
			if size == 0 {
				it.done = true
			}
			it.at = start + size
		} else {
			it.at = end
		}
		return it.match(start, end, index), true
	}
	start, end, index, ok := it.s.prev(it.content, it.at)
	if !ok {
		it.done = true
		return Match{}, false
	}
	if end == start {
		_, size := utf8.DecodeLastRune(it.content[:start])
		if size == 0 {
			it.done = true
		}
		it.at = start - size
	} else {
		it.at = start
	}
	return it.match(start, end, index), true
}

func (it *MatchIter) match(start, end, index int) Match {
	sp := it.t.PointAtByte(start)
	ep := sp
	for b := start; b < end; {
		r, size := utf8.DecodeRune(it.content[b:])
		ep = advance(ep, r)
		b += size
	}
	return Match{Start: sp, End: ep, Index: index}
}
