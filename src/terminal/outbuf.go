package terminal

import (
	"fmt"
	"io"
)

const (
	bufReallocStep = 4096 // minimum growth when there is no room for new data
	bufFmtMaxLen   = 255  // formatted writes are truncated to this length
)

// Buf collects everything drawn during one redraw so that it reaches the
// terminal in a single write. Writing piecemeal makes the screen flicker.
type Buf struct {
	data []byte
}

// Len returns the number of buffered bytes.
func (b *Buf) Len() int { return len(b.data) }

// Bytes returns the buffered bytes. They stay valid until the next write.
func (b *Buf) Bytes() []byte { return b.data }

// Reset empties the buffer but keeps its capacity.
func (b *Buf) Reset() { b.data = b.data[:0] }

func (b *Buf) grow(n int) {
	if len(b.data)+n <= cap(b.data) {
		return
	}
	data := make([]byte, len(b.data), max(cap(b.data)+bufReallocStep, len(b.data)+n))
	copy(data, b.data)
	b.data = data
}

// Write appends p. It never fails.
func (b *Buf) Write(p []byte) (int, error) {
	b.grow(len(p))
	b.data = append(b.data, p...)
	return len(p), nil
}

// WriteString appends s. It never fails.
func (b *Buf) WriteString(s string) (int, error) {
	b.grow(len(s))
	b.data = append(b.data, s...)
	return len(s), nil
}

// WriteByte appends c. It never fails.
func (b *Buf) WriteByte(c byte) error {
	b.grow(1)
	b.data = append(b.data, c)
	return nil
}

// Writef appends a formatted string truncated to bufFmtMaxLen bytes and
// returns the number of bytes appended.
func (b *Buf) Writef(format string, args ...any) int {
	s := fmt.Sprintf(format, args...)
	if len(s) > bufFmtMaxLen {
		s = s[:bufFmtMaxLen]
	}
	n, _ := b.WriteString(s)
	return n
}

// Flush writes the whole buffer to w with one Write call and empties it.
func (b *Buf) Flush(w io.Writer) error {
	if len(b.data) == 0 {
		return nil
	}
	n := len(b.data)
	_, err := w.Write(b.data)
	b.Reset()
	if err != nil {
		return fmt.Errorf("flushing %d bytes: %w", n, err)
	}
	return nil
}
