package buffer

// Line is a single row of the document. Chars never contains '\n'.
// Render is Chars with every tab expanded to spaces up to the next tab stop
// and is rebuilt whenever Chars changes.
type Line struct {
	chars  []byte
	render []byte
}

// lineCharsCapStep is the capacity step used when a line's chars grow.
const lineCharsCapStep = 128

func newLine(chars []byte, tabWidth int) *Line {
	l := &Line{chars: chars}
	l.rerender(tabWidth)
	return l
}

// Chars returns the raw bytes of the line. The slice must not be modified.
func (l *Line) Chars() []byte { return l.chars }

// Render returns the tab-expanded form of the line. The slice must not be
// modified.
func (l *Line) Render() []byte { return l.render }

// Len returns the raw length in bytes.
func (l *Line) Len() int { return len(l.chars) }

// RenderLen returns the length of the rendered form.
func (l *Line) RenderLen() int { return len(l.render) }

// rerender rebuilds the render cache from chars. Its cost only depends on
// this line's length.
func (l *Line) rerender(tabWidth int) {
	if len(l.chars) == 0 {
		l.render = l.render[:0]
		return
	}

	tabs := 0
	for _, c := range l.chars {
		if c == '\t' {
			tabs++
		}
	}

	render := make([]byte, 0, len(l.chars)+(tabWidth-1)*tabs)
	for _, c := range l.chars {
		if c != '\t' {
			render = append(render, c)
			continue
		}
		render = append(render, ' ')
		for len(render)%tabWidth != 0 {
			render = append(render, ' ')
		}
	}
	l.render = render
}

// insert puts c at pos. pos must be <= len.
func (l *Line) insert(pos int, c byte) {
	if len(l.chars) == cap(l.chars) {
		grown := make([]byte, len(l.chars), cap(l.chars)+lineCharsCapStep)
		copy(grown, l.chars)
		l.chars = grown
	}
	l.chars = append(l.chars, 0)
	copy(l.chars[pos+1:], l.chars[pos:])
	l.chars[pos] = c
}

// remove deletes the byte at pos. pos must be < len.
func (l *Line) remove(pos int) {
	l.chars = append(l.chars[:pos], l.chars[pos+1:]...)
}

// RenderColumn converts a raw column of chars to a column of the render
// cache by replaying tab stops over chars[from:to]. The result is relative
// to the render column of from.
func RenderColumn(chars []byte, from, to, tabWidth int) int {
	x := 0
	for i := from; i < to && i < len(chars); i++ {
		if chars[i] == '\t' {
			x += tabWidth - x%tabWidth - 1
		}
		x++
	}
	return x
}
