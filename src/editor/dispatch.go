package editor

import (
	"errors"

	"seditor/src/buffer"
	"seditor/src/terminal"
)

// HandleKey applies one key press. The previous status message is dropped
// first, so a message lives until the next key.
func (e *Editor) HandleKey(k terminal.Key) {
	if k == terminal.KeyNone || e.quit {
		return
	}
	e.msg = ""

	switch e.mode {
	case NormalMode:
		e.handleNormalKey(k)
	case InsertMode:
		e.handleInsertKey(k)
	case SearchMode:
		e.handleSearchKey(k)
	}
}

func (e *Editor) handleNormalKey(k terminal.Key) {
	if k.IsDigit() && e.count.Accepts(int(k-'0')) {
		e.count.Push(int(k - '0'))
		return
	}
	n, explicit := e.count.Take()
	if k != 'q' {
		e.quitLeft = e.cfg.QuitPresses
	}

	doc, vp := e.doc, e.vp
	switch k {
	case 'h', terminal.KeyArrowLeft:
		repeat(n, vp.MoveLeft)
	case 'j', terminal.KeyArrowDown:
		repeat(n, func() { vp.MoveDown(doc) })
	case 'k', terminal.KeyArrowUp:
		repeat(n, func() { vp.MoveUp(doc) })
	case 'l', terminal.KeyArrowRight:
		repeat(n, func() { vp.MoveRight(doc) })
	case 'w':
		repeat(n, func() { vp.NextToken(doc) })
	case 'b':
		repeat(n, func() { vp.PrevToken(doc) })
	case '0', terminal.KeyHome:
		vp.JumpToLineStart()
	case '$', terminal.KeyEnd:
		vp.JumpToLineEnd(doc)
	case 'g':
		vp.JumpToFileStart()
	case 'G':
		if explicit {
			vp.JumpToLine(doc, n-1)
		} else {
			vp.JumpToFileEnd(doc)
		}
	case terminal.KeyPageUp:
		e.movePage(-n)
	case terminal.KeyPageDown:
		e.movePage(n)
	case 'i':
		e.mode = InsertMode
	case 'a':
		vp.MoveRight(doc)
		e.mode = InsertMode
	case 'o':
		repeat(n, e.openLineBelow)
	case 'O':
		repeat(n, e.openLineAbove)
	case 'd':
		e.deleteLines(n)
	case 'x':
		repeat(n, e.deleteUnderCursor)
		vp.FixCursor(doc)
	case 's':
		e.save()
	case 'S':
		e.saveToSpareDir()
	case '/':
		e.query = e.query[:0]
		e.mode = SearchMode
	case 'n':
		repeat(n, func() { e.search(buffer.Forward) })
	case 'N':
		repeat(n, func() { e.search(buffer.Backward) })
	case 'q':
		e.tryQuit()
	}
}

func (e *Editor) handleInsertKey(k terminal.Key) {
	doc, vp := e.doc, e.vp
	switch k {
	case terminal.KeyEsc:
		e.mode = NormalMode
	case terminal.KeyEnter:
		e.breakLine()
	case terminal.KeyBackspace, terminal.KeyCtrlH:
		e.deleteBeforeCursor()
	case terminal.KeyDelete:
		e.deleteUnderCursor()
		vp.FixCursor(doc)
	case terminal.KeyArrowLeft:
		vp.MoveLeft()
	case terminal.KeyArrowRight:
		vp.MoveRight(doc)
	case terminal.KeyArrowUp:
		vp.MoveUp(doc)
	case terminal.KeyArrowDown:
		vp.MoveDown(doc)
	case terminal.KeyHome:
		vp.JumpToLineStart()
	case terminal.KeyEnd:
		vp.JumpToLineEnd(doc)
	default:
		if k == terminal.KeyTab || k.IsPrint() {
			e.insert(byte(k))
		}
	}
}

func (e *Editor) handleSearchKey(k terminal.Key) {
	switch k {
	case terminal.KeyEsc:
		e.mode = NormalMode
	case terminal.KeyEnter, terminal.KeyTab:
		e.mode = NormalMode
		e.lastQuery = append(e.lastQuery[:0], e.query...)
		if k == terminal.KeyEnter {
			e.search(buffer.Forward)
		} else {
			e.search(buffer.Backward)
		}
	case terminal.KeyBackspace, terminal.KeyCtrlH:
		if len(e.query) > 0 {
			e.query = e.query[:len(e.query)-1]
		}
	default:
		if k.IsPrint() && len(e.query) < queryMaxLen {
			e.query = append(e.query, byte(k))
		}
	}
}

func repeat(n int, f func()) {
	for range n {
		f()
	}
}

// movePage moves pages text rows down, or up when negative.
func (e *Editor) movePage(pages int) {
	target := e.vp.Line() + pages*e.vp.Size().TextRows()
	e.vp.RevealLine(e.doc, target)
}

func (e *Editor) insert(c byte) {
	if err := e.doc.InsertChar(e.vp.Line(), e.vp.Col(), c); err != nil {
		e.SetMessage("%v", err)
		return
	}
	e.vp.MoveRight(e.doc)
}

// breakLine splits the current line at the cursor and moves to the start
// of the new line.
func (e *Editor) breakLine() {
	if err := e.doc.SplitLine(e.vp.Line(), e.vp.Col()); err != nil {
		e.SetMessage("%v", err)
		return
	}
	e.vp.JumpToLineStart()
	e.vp.MoveDown(e.doc)
}

// deleteBeforeCursor removes the byte left of the cursor. At the start of
// a line the line is joined onto the previous one.
func (e *Editor) deleteBeforeCursor() {
	line, col := e.vp.Line(), e.vp.Col()
	if col > 0 {
		if err := e.doc.DeleteChar(line, col-1); err != nil {
			e.SetMessage("%v", err)
			return
		}
		e.vp.MoveLeft()
		return
	}
	if line == 0 {
		return
	}
	joinAt := e.doc.LineLen(line - 1)
	if err := e.doc.JoinWithNext(line - 1); err != nil {
		e.SetMessage("%v", err)
		return
	}
	e.vp.MoveUp(e.doc)
	e.vp.RevealColumn(e.doc, joinAt)
}

// deleteUnderCursor removes the byte under the cursor. Past the end of a
// line the next line is joined onto it.
func (e *Editor) deleteUnderCursor() {
	line, col := e.vp.Line(), e.vp.Col()
	if col < e.doc.LineLen(line) {
		if err := e.doc.DeleteChar(line, col); err != nil {
			e.SetMessage("%v", err)
		}
		return
	}
	if e.mode != InsertMode || line+1 >= e.doc.LineCount() {
		return
	}
	if err := e.doc.JoinWithNext(line); err != nil {
		e.SetMessage("%v", err)
	}
}

func (e *Editor) openLineBelow() {
	line := e.vp.Line()
	if err := e.doc.InsertEmptyLine(line + 1); err != nil {
		e.SetMessage("%v", err)
		return
	}
	e.vp.JumpToLineStart()
	e.vp.MoveDown(e.doc)
}

func (e *Editor) openLineAbove() {
	if err := e.doc.InsertEmptyLine(e.vp.Line()); err != nil {
		e.SetMessage("%v", err)
		return
	}
	e.vp.JumpToLineStart()
}

// deleteLines deletes n lines starting at the cursor. The last line of the
// document is never deleted.
func (e *Editor) deleteLines(n int) {
	for range n {
		err := e.doc.DeleteLine(e.vp.Line())
		if errors.Is(err, buffer.ErrLastLine) {
			e.SetMessage("Cannot delete the only line")
			break
		}
		if err != nil {
			e.SetMessage("%v", err)
			break
		}
		e.vp.ClampLine(e.doc)
	}
	e.vp.ClampLine(e.doc)
}
