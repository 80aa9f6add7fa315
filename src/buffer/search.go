package buffer

import "bytes"

// Direction selects which way Search walks the document.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (dir Direction) String() string {
	if dir == Backward {
		return "backward"
	}
	return "forward"
}

// Search looks for query starting at from. Forward matches start at or after
// from.Col; backward matches start strictly before it. When the line has no
// match the search continues on the adjacent line (at column 0 going
// forward, at the line end going backward) and stops at the first or last
// line without wrapping around. On failure the returned position is the
// boundary the search reached.
func (d *Document) Search(from Position, query []byte, dir Direction) (Position, bool) {
	if len(query) == 0 {
		return from, false
	}
	p := d.ClampPosition(from)

	for {
		if col, ok := d.lines[p.Line].search(p.Col, query, dir); ok {
			p.Col = col
			return p, true
		}

		switch dir {
		case Forward:
			if p.Line == len(d.lines)-1 {
				p.Col = d.lines[p.Line].Len()
				return p, false
			}
			p.Line++
			p.Col = 0
		case Backward:
			if p.Line == 0 {
				p.Col = 0
				return p, false
			}
			p.Line--
			p.Col = d.lines[p.Line].Len()
		}
	}
}

func (l *Line) search(pos int, query []byte, dir Direction) (int, bool) {
	if len(l.chars) == 0 {
		return 0, false
	}
	switch dir {
	case Forward:
		if i := bytes.Index(l.chars[pos:], query); i >= 0 {
			return pos + i, true
		}
	case Backward:
		// A match starting before pos may extend past it.
		end := min(pos-1+len(query), len(l.chars))
		if end < len(query) {
			return 0, false
		}
		if i := bytes.LastIndex(l.chars[:end], query); i >= 0 {
			return i, true
		}
	}
	return 0, false
}
