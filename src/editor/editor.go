// Package editor ties a document to the screen: cursor motion, key
// dispatch per mode and frame rendering.
package editor

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/x/ansi"

	"seditor/src/buffer"
	"seditor/src/config"
	"seditor/src/terminal"
)

type EditorMode int

const (
	NormalMode EditorMode = iota
	InsertMode
	SearchMode
)

func (m EditorMode) String() string {
	switch m {
	case NormalMode:
		return "NORMAL"
	case InsertMode:
		return "INSERT"
	case SearchMode:
		return "SEARCH"
	}
	return "?"
}

const (
	msgMaxLen   = 64  // longer status messages are cut
	queryMaxLen = 256 // longer search queries stop growing
)

// Editor is one editing session over one document.
type Editor struct {
	doc *buffer.Document
	vp  *Viewport
	cfg config.Config

	mode  EditorMode
	count repeatCount
	msg   string

	query     []byte // search prompt contents
	lastQuery []byte // repeated by n and N

	quitLeft int
	quit     bool

	filetype string
	fg, bg   ansi.Color
	out      terminal.Buf

	now func() time.Time
}

// Open reads path and starts a session on it.
func Open(path string, cfg config.Config, size Size) (*Editor, error) {
	doc, err := buffer.Open(path, cfg.TabWidth)
	if err != nil {
		return nil, err
	}
	return New(doc, cfg, size), nil
}

// New starts a session on doc.
func New(doc *buffer.Document, cfg config.Config, size Size) *Editor {
	e := &Editor{
		doc:      doc,
		vp:       NewViewport(size),
		cfg:      cfg,
		mode:     NormalMode,
		quitLeft: cfg.QuitPresses,
		filetype: detectFiletype(doc.Path()),
		now:      time.Now,
	}
	e.fg, e.bg = cfg.StatusColors()
	return e
}

func (e *Editor) Document() *buffer.Document { return e.doc }

func (e *Editor) Viewport() *Viewport { return e.vp }

func (e *Editor) Mode() EditorMode { return e.mode }

// Message returns the status message shown until the next key.
func (e *Editor) Message() string { return e.msg }

// Quit reports whether the session is over.
func (e *Editor) Quit() bool { return e.quit }

// SetMessage sets the transient status message.
func (e *Editor) SetMessage(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if len(msg) > msgMaxLen {
		msg = msg[:msgMaxLen]
	}
	e.msg = msg
}

// Close ends the session. The document is not saved.
func (e *Editor) Close() {
	e.quit = true
	e.out = terminal.Buf{}
}

// HandleResize adopts a new window size and keeps the cursor in view.
func (e *Editor) HandleResize(size Size) {
	e.vp.Resize(e.doc, size)
	log.Printf("resized to %dx%d", e.vp.Size().Cols, e.vp.Size().Rows)
}

func (e *Editor) save() {
	n, err := e.doc.Save("")
	if err != nil {
		log.Printf("save %s: %v", e.doc.Path(), err)
		e.SetMessage("Save failed: %v", err)
		return
	}
	log.Printf("saved %d bytes to %s", n, e.doc.Path())
	e.SetMessage("Saved %d bytes", n)
}

func (e *Editor) saveToSpareDir() {
	path, n, err := e.doc.SaveToSpareDir(e.cfg.SpareDir, e.now())
	if err != nil {
		log.Printf("save %s to %s: %v", e.doc.Path(), e.cfg.SpareDir, err)
		e.SetMessage("Save failed: %v", err)
		return
	}
	log.Printf("saved %d bytes to %s", n, path)
	e.SetMessage("Saved to %s", path)
}

// tryQuit quits at once for a clean document. A dirty one needs the quit
// key pressed QuitPresses times in a row.
func (e *Editor) tryQuit() {
	if !e.doc.Dirty() {
		e.quit = true
		return
	}
	e.quitLeft--
	if e.quitLeft <= 0 {
		e.quit = true
		return
	}
	e.SetMessage("Unsaved changes, press q %d more times", e.quitLeft)
}

// search looks for the last query from the cursor and moves to the hit.
func (e *Editor) search(dir buffer.Direction) {
	from := e.vp.Position()
	if dir == buffer.Forward {
		from.Col++
	}
	pos, ok := e.doc.Search(from, e.lastQuery, dir)
	if !ok {
		e.SetMessage("Not found: %s", e.lastQuery)
		return
	}
	e.vp.RevealLine(e.doc, pos.Line)
	e.vp.RevealColumn(e.doc, pos.Col)
}
