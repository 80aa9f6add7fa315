// Package buffer holds the lines of the edited file together with their
// tab-expanded renders, and the operations that change them.
package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrLineIndex is returned when a line index is out of range.
	ErrLineIndex = errors.New("line index out of range")
	// ErrColumnIndex is returned when a byte position is out of range for
	// its line.
	ErrColumnIndex = errors.New("column index out of range")
	// ErrLastLine is returned when deleting the only remaining line.
	ErrLastLine = errors.New("cannot delete the last line")
)

// fileLinesCapStep is the capacity step used when the line slice grows.
const fileLinesCapStep = 32

// Position addresses a byte in the document: a line index and a raw column.
type Position struct {
	Line int
	Col  int
}

// Document is the edited file. It always has at least one line.
type Document struct {
	lines    []*Line
	path     string
	dirty    bool
	tabWidth int
}

// New builds a document from raw lines. With no lines the document holds
// one empty line. The returned document is not dirty.
func New(path string, tabWidth int, lines ...[]byte) *Document {
	if tabWidth < 1 {
		tabWidth = 1
	}
	d := &Document{
		lines:    make([]*Line, 0, max(len(lines), fileLinesCapStep)),
		path:     path,
		tabWidth: tabWidth,
	}
	for _, chars := range lines {
		d.lines = append(d.lines, newLine(append([]byte(nil), chars...), tabWidth))
	}
	if len(d.lines) == 0 {
		d.lines = append(d.lines, &Line{})
	}
	return d
}

// Path returns the path used for default saves.
func (d *Document) Path() string { return d.path }

// Dirty reports whether the document has unsaved modifications.
func (d *Document) Dirty() bool { return d.dirty }

// TabWidth returns the tab stop distance used for renders.
func (d *Document) TabWidth() int { return d.tabWidth }

// LineCount returns the number of lines. It is never zero.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns the line at idx, or nil when idx is out of range.
func (d *Document) Line(idx int) *Line {
	if idx < 0 || idx >= len(d.lines) {
		return nil
	}
	return d.lines[idx]
}

// LineLen returns the raw length of line idx, or 0 when idx is out of range.
func (d *Document) LineLen(idx int) int {
	if l := d.Line(idx); l != nil {
		return l.Len()
	}
	return 0
}

// LineChars returns the raw bytes of line idx.
func (d *Document) LineChars(idx int) []byte {
	if l := d.Line(idx); l != nil {
		return l.Chars()
	}
	return nil
}

// LineRender returns the render cache of line idx.
func (d *Document) LineRender(idx int) []byte {
	if l := d.Line(idx); l != nil {
		return l.Render()
	}
	return nil
}

func (d *Document) checkLine(idx int) error {
	if idx < 0 || idx >= len(d.lines) {
		return fmt.Errorf("%w: %d of %d", ErrLineIndex, idx, len(d.lines))
	}
	return nil
}

func (d *Document) checkCol(idx, pos, limit int) error {
	if pos < 0 || pos > limit {
		return fmt.Errorf("%w: line %d position %d of %d", ErrColumnIndex, idx, pos, d.lines[idx].Len())
	}
	return nil
}

func (d *Document) insertLine(idx int, l *Line) {
	d.lines = append(d.lines, nil)
	copy(d.lines[idx+1:], d.lines[idx:])
	d.lines[idx] = l
}

// InsertEmptyLine inserts a zero-length line at idx. idx may equal
// LineCount to append.
func (d *Document) InsertEmptyLine(idx int) error {
	if idx < 0 || idx > len(d.lines) {
		return fmt.Errorf("%w: insert at %d of %d", ErrLineIndex, idx, len(d.lines))
	}
	d.insertLine(idx, &Line{})
	d.dirty = true
	return nil
}

// DeleteLine removes line idx. The only line of a document is never removed.
func (d *Document) DeleteLine(idx int) error {
	if err := d.checkLine(idx); err != nil {
		return err
	}
	if len(d.lines) == 1 {
		return ErrLastLine
	}
	copy(d.lines[idx:], d.lines[idx+1:])
	d.lines[len(d.lines)-1] = nil
	d.lines = d.lines[:len(d.lines)-1]
	d.dirty = true
	return nil
}

// SplitLine moves the bytes of line idx from pos onward into a new line
// inserted after it.
func (d *Document) SplitLine(idx, pos int) error {
	if err := d.checkLine(idx); err != nil {
		return err
	}
	line := d.lines[idx]
	if err := d.checkCol(idx, pos, line.Len()); err != nil {
		return err
	}

	next := &Line{}
	if tail := line.chars[pos:]; len(tail) > 0 {
		next.chars = append(make([]byte, 0, len(tail)), tail...)
		next.rerender(d.tabWidth)

		line.chars = line.chars[:pos]
		line.rerender(d.tabWidth)
	}
	d.insertLine(idx+1, next)
	d.dirty = true
	return nil
}

// JoinWithNext appends line idx+1 to line idx and removes line idx+1.
func (d *Document) JoinWithNext(idx int) error {
	if idx < 0 || idx+1 >= len(d.lines) {
		return fmt.Errorf("%w: join %d with next of %d", ErrLineIndex, idx, len(d.lines))
	}
	dest, src := d.lines[idx], d.lines[idx+1]
	if src.Len() > 0 {
		dest.chars = append(dest.chars, src.chars...)
		dest.rerender(d.tabWidth)
	}
	copy(d.lines[idx+1:], d.lines[idx+2:])
	d.lines[len(d.lines)-1] = nil
	d.lines = d.lines[:len(d.lines)-1]
	d.dirty = true
	return nil
}

// InsertChar inserts c into line idx at pos (pos <= length).
func (d *Document) InsertChar(idx, pos int, c byte) error {
	if err := d.checkLine(idx); err != nil {
		return err
	}
	line := d.lines[idx]
	if err := d.checkCol(idx, pos, line.Len()); err != nil {
		return err
	}
	line.insert(pos, c)
	line.rerender(d.tabWidth)
	d.dirty = true
	return nil
}

// DeleteChar removes the byte of line idx at pos (pos < length).
func (d *Document) DeleteChar(idx, pos int) error {
	if err := d.checkLine(idx); err != nil {
		return err
	}
	line := d.lines[idx]
	if err := d.checkCol(idx, pos, line.Len()-1); err != nil {
		return err
	}
	line.remove(pos)
	line.rerender(d.tabWidth)
	d.dirty = true
	return nil
}

// ClampPosition pulls p inside the document: the line into
// [0, LineCount-1] and the column into [0, LineLen].
func (d *Document) ClampPosition(p Position) Position {
	p.Line = min(max(p.Line, 0), len(d.lines)-1)
	p.Col = min(max(p.Col, 0), d.lines[p.Line].Len())
	return p
}
