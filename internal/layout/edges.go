package layout

import (
	"github.com/xonecas/quill/internal/term"
)

// Edges lists the separator lines the frame calls for: one between every
// pair of adjacent siblings whose parent's frame draws on that axis. They
// are rendered by the backend, independent of the text.
func (l *Layout) Edges() []Edge {
	var edges []Edge
	l.collectEdges(l.root, &edges)
	return edges
}

func (l *Layout) collectEdges(r *Rect, out *[]Edge) {
	if !r.IsParent() {
		return
	}
	if l.frame.onAxis(r.axis) && !r.clustered {
		for i := 0; i < len(r.children)-1; i++ {
			c := r.children[i].rect.coords(l.solver)
			var at term.Coords
			if r.axis == Vertical {
				at = term.Coords{
					TL: term.Coord{X: c.TL.X, Y: c.BR.Y},
					BR: term.Coord{X: c.BR.X, Y: c.BR.Y},
				}
			} else {
				at = term.Coords{
					TL: term.Coord{X: c.BR.X, Y: c.TL.Y},
					BR: term.Coord{X: c.BR.X, Y: c.BR.Y},
				}
			}
			*out = append(*out, Edge{At: at, Axis: r.axis.Perp(), Frame: l.frame})
		}
	}
	for _, ch := range r.children {
		l.collectEdges(ch.rect, out)
	}
}
