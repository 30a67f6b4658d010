package text

import (
	"sync"
	"sync/atomic"

	"github.com/xonecas/quill/internal/forms"
)

// ToggleID resolves to a hover/click handler registered by a widget.
type ToggleID uint32

// Toggle handlers are a process-wide append-mostly registry, like the form
// palette: registered during widget setup, resolved during input handling.
var toggles = struct {
	sync.RWMutex
	m    map[ToggleID]func(on bool)
	next ToggleID
}{m: make(map[ToggleID]func(on bool))}

// RegisterToggle stores a handler and returns the id tags can carry.
func RegisterToggle(f func(on bool)) ToggleID {
	toggles.Lock()
	defer toggles.Unlock()
	toggles.next++
	toggles.m[toggles.next] = f
	return toggles.next
}

// ResolveToggle looks a handler up.
func ResolveToggle(id ToggleID) (func(on bool), bool) {
	toggles.RLock()
	defer toggles.RUnlock()
	f, ok := toggles.m[id]
	return f, ok
}

// Marker identifies the owner of a group of tags so they can be removed in
// bulk. Every Text reserves one marker for its cursor tags.
type Marker uint32

var markerCounter atomic.Uint32

// NewMarker returns a marker no other caller has seen.
func NewMarker() Marker {
	return Marker(markerCounter.Add(1))
}

// TagKind enumerates the closed set of tag kinds.
type TagKind uint8

const (
	// TagPushForm and TagPopForm stack a form during rendering.
	TagPushForm TagKind = iota
	TagPopForm
	// TagMainCursor and TagExtraCursor are point markers for carets.
	TagMainCursor
	TagExtraCursor
	// Alignment range markers. The end of a range restores left alignment.
	TagStartAlignLeft
	TagEndAlignLeft
	TagStartAlignCenter
	TagEndAlignCenter
	TagStartAlignRight
	TagEndAlignRight
	// TagGhost splices a nested Text into the part stream.
	TagGhost
	// Conceal ranges omit their characters from rendering.
	TagConcealStart
	TagConcealEnd
	// Toggle ranges carry a handler id for hover/click.
	TagToggleStart
	TagToggleEnd
)

// Tag is one annotation attached to a byte offset.
type Tag struct {
	Kind   TagKind
	Form   forms.ID
	Toggle ToggleID
	Ghost  *Text
}

// PushForm returns a form push tag.
func PushForm(id forms.ID) Tag { return Tag{Kind: TagPushForm, Form: id} }

// PopForm returns a form pop tag.
func PopForm(id forms.ID) Tag { return Tag{Kind: TagPopForm, Form: id} }

// GhostText returns a ghost tag holding the given text. Inserting a text
// into its own tag tree is the caller's responsibility to avoid.
func GhostText(t *Text) Tag { return Tag{Kind: TagGhost, Ghost: t} }

// event is one stored (offset, tag, marker) triple. seq is the insertion
// rank; ordering is by (off, seq).
type event struct {
	off int
	seq uint64
	tag Tag
	m   Marker
}

// Tags is the ordered multiset of tag events of a Text. Events are kept in
// a single sorted slice: lookups are binary searches and range shifts are
// linear sweeps, which suits the edit pattern (every splice shifts the whole
// tail anyway).
type Tags struct {
	evs []event
	seq uint64
}

// NewTags returns an empty tag set.
func NewTags() *Tags {
	return &Tags{}
}

// Len returns the number of stored events.
func (ts *Tags) Len() int {
	return len(ts.evs)
}

// lowerBound returns the first index with off >= b.
func (ts *Tags) lowerBound(b int) int {
	lo, hi := 0, len(ts.evs)
	for lo < hi {
		mid := (lo + hi) / 2
		if ts.evs[mid].off < b {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// upperBound returns the first index with off > b.
func (ts *Tags) upperBound(b int) int {
	lo, hi := 0, len(ts.evs)
	for lo < hi {
		mid := (lo + hi) / 2
		if ts.evs[mid].off <= b {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Insert adds a tag event at the given byte offset, after any events
// already stored at that offset.
func (ts *Tags) Insert(b int, tag Tag, m Marker) {
	ts.seq++
	ev := event{off: b, seq: ts.seq, tag: tag, m: m}
	i := ts.upperBound(b)
	ts.evs = append(ts.evs, event{})
	copy(ts.evs[i+1:], ts.evs[i:])
	ts.evs[i] = ev
}

// RemoveOn removes every event at offset b whose marker is in markers.
func (ts *Tags) RemoveOn(b int, markers ...Marker) {
	lo := ts.lowerBound(b)
	hi := ts.upperBound(b)
	if lo == hi {
		return
	}
	kept := ts.evs[:lo]
	for _, ev := range ts.evs[lo:hi] {
		owned := false
		for _, m := range markers {
			if ev.m == m {
				owned = true
				break
			}
		}
		if !owned {
			kept = append(kept, ev)
		}
	}
	n := copy(ts.evs[len(kept):], ts.evs[hi:])
	ts.evs = ts.evs[:len(kept)+n]
}

// Transform adjusts offsets after the byte range [start, oldEnd) was
// replaced by one ending at newEnd. Events strictly inside the old range are
// dropped; events at or after oldEnd shift by newEnd-oldEnd; events at
// exactly start stay put (when the range is non-empty).
func (ts *Tags) Transform(start, oldEnd, newEnd int) {
	delta := newEnd - oldEnd
	if start < oldEnd {
		lo := ts.upperBound(start)
		hi := ts.lowerBound(oldEnd)
		if lo < hi {
			ts.evs = append(ts.evs[:lo], ts.evs[hi:]...)
		}
	}
	if delta != 0 {
		for i := ts.lowerBound(oldEnd); i < len(ts.evs); i++ {
			ts.evs[i].off += delta
		}
	}
}

// FwdTags iterates events in (offset, rank) order.
type FwdTags struct {
	evs []event
	i   int
}

// At returns a forward iterator starting at the first event with
// offset >= b.
func (ts *Tags) At(b int) *FwdTags {
	return &FwdTags{evs: ts.evs, i: ts.lowerBound(b)}
}

// Peek returns the next event's offset and tag without advancing.
func (it *FwdTags) Peek() (int, Tag, bool) {
	if it.i >= len(it.evs) {
		return 0, Tag{}, false
	}
	ev := it.evs[it.i]
	return ev.off, ev.tag, true
}

// Next returns the next event and advances.
func (it *FwdTags) Next() (int, Tag, bool) {
	off, tag, ok := it.Peek()
	if ok {
		it.i++
	}
	return off, tag, ok
}

// RevTags iterates events in reverse (offset, rank) order.
type RevTags struct {
	evs []event
	i   int
}

// Before returns a reverse iterator over events with offset <= b, latest
// rank first.
func (ts *Tags) Before(b int) *RevTags {
	return &RevTags{evs: ts.evs, i: ts.upperBound(b)}
}

// Peek returns the previous event's offset and tag without advancing.
func (it *RevTags) Peek() (int, Tag, bool) {
	if it.i == 0 {
		return 0, Tag{}, false
	}
	ev := it.evs[it.i-1]
	return ev.off, ev.tag, true
}

// Next returns the previous event and advances backward.
func (it *RevTags) Next() (int, Tag, bool) {
	off, tag, ok := it.Peek()
	if ok {
		it.i--
	}
	return off, tag, ok
}
