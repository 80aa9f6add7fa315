package editor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"seditor/src/terminal"
)

// detectFiletype names the language of path for the status line, or ""
// when nothing matches.
func detectFiletype(path string) string {
	if path == "" {
		return ""
	}
	l := lexers.Match(filepath.Base(path))
	if l == nil {
		return ""
	}
	return l.Config().Name
}

// RenderFrame draws the whole screen into the session's output buffer and
// returns it. The slice is reused by the next call.
func (e *Editor) RenderFrame() []byte {
	out := &e.out
	out.Reset()
	out.WriteString(terminal.HideCursor())
	out.WriteString(terminal.CursorHome())

	e.drawRows(out)
	e.drawStatus(out)

	row, col := e.vp.ScreenCursor(e.doc, e.doc.TabWidth())
	out.WriteString(terminal.MoveCursor(row, col))
	out.WriteString(terminal.ShowCursor())
	return out.Bytes()
}

// Refresh draws a frame and sends it to w in a single write.
func (e *Editor) Refresh(w io.Writer) error {
	e.RenderFrame()
	return e.out.Flush(w)
}

func (e *Editor) drawRows(out *terminal.Buf) {
	size := e.vp.Size()
	colOffset := e.vp.ColOffset()
	for r := range size.TextRows() {
		out.WriteString(terminal.ClearRowRight())
		idx := e.vp.RowOffset() + r
		if idx >= e.doc.LineCount() {
			out.WriteByte('~')
		} else if render := e.doc.LineRender(idx); len(render) > colOffset {
			out.Write(render[colOffset:min(len(render), colOffset+size.Cols)])
		}
		out.WriteString("\r\n")
	}
}

func (e *Editor) drawStatus(out *terminal.Buf) {
	out.WriteString(terminal.ClearRowRight())
	out.WriteString(terminal.SetColors(e.fg, e.bg))
	out.WriteString(e.statusLine(e.vp.Size().Cols))
	out.WriteString(terminal.ResetColors())
}

// statusLine lays out the status row: mode, path, filetype, message and
// dirty marker on the left, 1-based line:col on the right, padded or cut
// to exactly cols bytes.
func (e *Editor) statusLine(cols int) string {
	var left strings.Builder
	fmt.Fprintf(&left, " [%s] %s", e.mode, e.doc.Path())
	if e.filetype != "" {
		fmt.Fprintf(&left, " (%s)", e.filetype)
	}
	msg := e.msg
	if e.mode == SearchMode {
		msg = "/" + string(e.query)
	}
	if msg != "" {
		fmt.Fprintf(&left, ": %s", msg)
	}
	if e.doc.Dirty() {
		left.WriteString(" [+]")
	}

	pos := e.vp.Position()
	right := fmt.Sprintf("%d:%d ", pos.Line+1, pos.Col+1)
	if len(right) > cols {
		right = ""
	}
	l := left.String()
	if len(l)+len(right) > cols {
		l = l[:cols-len(right)]
	}
	return l + strings.Repeat(" ", cols-len(l)-len(right)) + right
}
