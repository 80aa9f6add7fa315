package terminal

import "github.com/charmbracelet/x/ansi"

// Escape sequences are returned as strings so they can be appended to a Buf
// together with the text they decorate.

func HideCursor() string { return ansi.HideCursor }

func ShowCursor() string { return ansi.ShowCursor }

func CursorHome() string { return ansi.CursorHomePosition }

// MoveCursor positions the cursor at the 0-based row and col.
func MoveCursor(row, col int) string {
	return ansi.CursorPosition(col+1, row+1)
}

func ClearScreen() string { return ansi.EraseEntireScreen }

// ClearRowRight erases from the cursor to the end of its row.
func ClearRowRight() string { return ansi.EraseLineRight }

// SetColors selects the foreground and background for the text that follows.
func SetColors(fg, bg ansi.Color) string {
	return ansi.Style{}.ForegroundColor(fg).BackgroundColor(bg).String()
}

func ResetColors() string { return ansi.ResetStyle }

func EnterAltScreen() string { return ansi.SetAltScreenSaveCursorMode }

func LeaveAltScreen() string { return ansi.ResetAltScreenSaveCursorMode }
