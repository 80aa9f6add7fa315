package editor

import "seditor/src/buffer"

// Size is the terminal window size. The last row holds the status line.
type Size struct {
	Rows int
	Cols int
}

// minimum usable window: one text row plus the status row, one column
const (
	minRows = 2
	minCols = 1
)

func (s Size) clamped() Size {
	return Size{Rows: max(s.Rows, minRows), Cols: max(s.Cols, minCols)}
}

// TextRows is the number of rows available for document lines.
func (s Size) TextRows() int { return s.Rows - 1 }

// Text is the read side of a document the viewport moves over.
type Text interface {
	LineCount() int
	LineLen(idx int) int
	LineChars(idx int) []byte
}

// Viewport maps the logical cursor to the screen. The current line is
// rowOffset+y and the raw cursor column is colOffset+x. y stays within the
// text rows and x within the columns; colOffset+x never exceeds the length
// of the current line once FixCursor has run.
type Viewport struct {
	size      Size
	rowOffset int
	colOffset int
	y, x      int
}

// NewViewport returns a viewport at the start of the document.
func NewViewport(size Size) *Viewport {
	return &Viewport{size: size.clamped()}
}

func (v *Viewport) Size() Size { return v.size }

func (v *Viewport) RowOffset() int { return v.rowOffset }

func (v *Viewport) ColOffset() int { return v.colOffset }

// Line returns the index of the current line.
func (v *Viewport) Line() int { return v.rowOffset + v.y }

// Col returns the raw byte column of the cursor.
func (v *Viewport) Col() int { return v.colOffset + v.x }

// Position returns the logical cursor.
func (v *Viewport) Position() buffer.Position {
	return buffer.Position{Line: v.Line(), Col: v.Col()}
}

// lastRow and lastCol are the largest valid screen cursor coordinates.
func (v *Viewport) lastRow() int { return v.size.Rows - 2 }
func (v *Viewport) lastCol() int { return v.size.Cols - 1 }

// ScreenCursor returns the on-screen cursor. The column replays tab stops
// over the raw bytes between the column offset and the cursor.
func (v *Viewport) ScreenCursor(t Text, tabWidth int) (row, col int) {
	chars := t.LineChars(v.Line())
	col = buffer.RenderColumn(chars, v.colOffset, min(v.Col(), len(chars)), tabWidth)
	return v.y, min(col, v.lastCol())
}

// FixCursor clamps the screen cursor to the window and pulls the column
// back onto the current line. When the line ends left of the screen the
// column offset shrinks so that its last character stays visible.
func (v *Viewport) FixCursor(t Text) {
	v.y = min(v.y, v.lastRow())
	v.x = min(v.x, v.lastCol())

	n := t.LineLen(v.Line())
	col := v.Col()
	if col <= n {
		return
	}
	diff := col - n
	if v.x >= diff {
		v.x -= diff
		return
	}
	v.colOffset -= diff - v.x
	v.x = 0
	if n > 0 && v.lastCol() > 0 {
		v.colOffset--
		v.x = 1
	}
}

func (v *Viewport) MoveUp(t Text) {
	if v.y == 0 {
		if v.rowOffset > 0 {
			v.rowOffset--
		}
	} else {
		v.y--
	}
	v.FixCursor(t)
}

func (v *Viewport) MoveDown(t Text) {
	if v.Line() < t.LineCount()-1 {
		if v.y == v.lastRow() {
			v.rowOffset++
		} else {
			v.y++
		}
	}
	v.FixCursor(t)
}

func (v *Viewport) MoveLeft() {
	if v.x == 0 {
		if v.colOffset > 0 {
			v.colOffset--
		}
	} else {
		v.x--
	}
}

// MoveRight moves one byte right. The cursor may sit one past the last
// byte, where insertion appends.
func (v *Viewport) MoveRight(t Text) {
	if v.Col() >= t.LineLen(v.Line()) {
		return
	}
	if v.x == v.lastCol() {
		v.colOffset++
	} else {
		v.x++
	}
}

func (v *Viewport) JumpToLineStart() {
	v.colOffset = 0
	v.x = 0
}

func (v *Viewport) JumpToLineEnd(t Text) {
	n := t.LineLen(v.Line())
	if n < v.colOffset+v.size.Cols {
		v.x = n - v.colOffset
	} else {
		v.colOffset = n - v.size.Cols + 1
		v.x = v.lastCol()
	}
}

func (v *Viewport) JumpToFileStart() {
	v.rowOffset, v.colOffset = 0, 0
	v.y, v.x = 0, 0
}

func (v *Viewport) JumpToFileEnd(t Text) {
	v.JumpToLine(t, t.LineCount()-1)
}

// JumpToLine moves to the start of line idx, clamped to the document. The
// first screen is used without scrolling when the line is on it; otherwise
// the line becomes the bottom text row.
func (v *Viewport) JumpToLine(t Text, idx int) {
	v.colOffset, v.x = 0, 0

	idx = max(0, min(idx, t.LineCount()-1))
	if idx+1 < v.size.Rows {
		v.rowOffset = 0
		v.y = idx
	} else {
		v.rowOffset = idx + 2 - v.size.Rows
		v.y = v.lastRow()
	}
}

// NextToken moves to the start of the next token on the current line. When
// the target is off screen the column offset grows by exactly the overflow.
func (v *Viewport) NextToken(t Text) {
	chars := t.LineChars(v.Line())
	col := v.Col()
	if col >= len(chars) {
		return
	}
	tok := nextToken(chars[col:])
	if tok >= len(chars)-col {
		return
	}
	if v.x+tok < v.size.Cols {
		v.x += tok
	} else {
		v.colOffset = col + tok - v.size.Cols + 1
		v.x = v.lastCol()
	}
}

// PrevToken moves to the start of the token before the cursor.
func (v *Viewport) PrevToken(t Text) {
	chars := t.LineChars(v.Line())
	col := min(v.Col(), len(chars))
	tok := prevToken(chars, col)
	if tok >= col {
		return
	}
	if tok >= v.colOffset {
		v.x = tok - v.colOffset
	} else {
		v.colOffset = tok
		v.x = 0
	}
}

// Resize adopts a new window size. Offsets shift so that the logical cursor
// stays where it was.
func (v *Viewport) Resize(t Text, size Size) {
	v.size = size.clamped()
	if over := v.y - v.lastRow(); over > 0 {
		v.rowOffset += over
		v.y -= over
	}
	if over := v.x - v.lastCol(); over > 0 {
		v.colOffset += over
		v.x -= over
	}
	v.ClampLine(t)
}

// ClampLine pulls the cursor back onto the last line when lines were
// deleted from under it.
func (v *Viewport) ClampLine(t Text) {
	last := t.LineCount() - 1
	if diff := v.Line() - last; diff > 0 {
		if v.y >= diff {
			v.y -= diff
		} else {
			v.rowOffset -= diff - v.y
			v.y = 0
		}
	}
	v.FixCursor(t)
}

// RevealLine moves the cursor to line idx with the least vertical scrolling.
// The column is re-clamped against the new line.
func (v *Viewport) RevealLine(t Text, idx int) {
	idx = max(0, min(idx, t.LineCount()-1))
	switch {
	case idx < v.rowOffset:
		v.rowOffset = idx
		v.y = 0
	case idx > v.rowOffset+v.lastRow():
		v.rowOffset = idx - v.lastRow()
		v.y = v.lastRow()
	default:
		v.y = idx - v.rowOffset
	}
	v.FixCursor(t)
}

// RevealColumn moves the cursor to raw column col of the current line with
// the least horizontal scrolling.
func (v *Viewport) RevealColumn(t Text, col int) {
	col = max(0, min(col, t.LineLen(v.Line())))
	switch {
	case col < v.colOffset:
		v.colOffset = col
		v.x = 0
	case col > v.colOffset+v.lastCol():
		v.colOffset = col - v.lastCol()
		v.x = v.lastCol()
	default:
		v.x = col - v.colOffset
	}
}
