package editor

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seditor/src/buffer"
	"seditor/src/config"
	"seditor/src/terminal"
)

func newEditor(t *testing.T, size Size, lines ...string) *Editor {
	t.Helper()
	bs := make([][]byte, len(lines))
	for i, l := range lines {
		bs[i] = []byte(l)
	}
	cfg := config.Default()
	cfg.TabWidth = 4
	cfg.SpareDir = t.TempDir()
	doc := buffer.New(filepath.Join(t.TempDir(), "f.txt"), cfg.TabWidth, bs...)
	return New(doc, cfg, size)
}

func typeKeys(e *Editor, s string) {
	for i := 0; i < len(s); i++ {
		e.HandleKey(terminal.Key(s[i]))
	}
}

func docLines(e *Editor) []string {
	d := e.Document()
	out := make([]string, d.LineCount())
	for i := range out {
		out[i] = string(d.LineChars(i))
	}
	return out
}

var small = Size{Rows: 10, Cols: 40}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), config.Default(), small)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInsertMode_TypeAndLeave(t *testing.T) {
	e := newEditor(t, small, "")
	typeKeys(e, "ihello")
	assert.Equal(t, InsertMode, e.Mode())
	e.HandleKey(terminal.KeyTab)
	typeKeys(e, "x")
	e.HandleKey(terminal.KeyEsc)

	assert.Equal(t, NormalMode, e.Mode())
	assert.Equal(t, []string{"hello\tx"}, docLines(e))
	assert.Equal(t, buffer.Position{Col: 7}, e.Viewport().Position())
	assert.True(t, e.Document().Dirty())
}

func TestInsertMode_EnterBackspaceDelete(t *testing.T) {
	e := newEditor(t, small, "abcd")
	typeKeys(e, "lli")
	e.HandleKey(terminal.KeyEnter)
	assert.Equal(t, []string{"ab", "cd"}, docLines(e))
	assert.Equal(t, buffer.Position{Line: 1}, e.Viewport().Position())

	e.HandleKey(terminal.KeyBackspace)
	assert.Equal(t, []string{"abcd"}, docLines(e))
	assert.Equal(t, buffer.Position{Col: 2}, e.Viewport().Position())

	e.HandleKey(terminal.KeyBackspace)
	assert.Equal(t, []string{"acd"}, docLines(e))
	assert.Equal(t, buffer.Position{Col: 1}, e.Viewport().Position())

	e.HandleKey(terminal.KeyDelete)
	assert.Equal(t, []string{"ad"}, docLines(e))

	e.HandleKey(terminal.KeyEnd)
	e.HandleKey(terminal.KeyEnter)
	typeKeys(e, "z")
	e.HandleKey(terminal.KeyArrowUp)
	e.HandleKey(terminal.KeyEnd)
	e.HandleKey(terminal.KeyDelete)
	assert.Equal(t, []string{"adz"}, docLines(e))

	// Nothing before the first byte of the document.
	e.HandleKey(terminal.KeyHome)
	e.HandleKey(terminal.KeyBackspace)
	assert.Equal(t, []string{"adz"}, docLines(e))
}

func TestNormalMode_AppendAfterCursor(t *testing.T) {
	e := newEditor(t, small, "ac")
	typeKeys(e, "ab")
	e.HandleKey(terminal.KeyEsc)
	assert.Equal(t, []string{"abc"}, docLines(e))
}

func TestNormalMode_CountedMotions(t *testing.T) {
	e := newEditor(t, small, "0", "1", "2", "3", "4", "5", "6", "7", "8", "9 123456789012345")
	vp := e.Viewport()

	typeKeys(e, "3j")
	assert.Equal(t, 3, vp.Line())
	typeKeys(e, "2k")
	assert.Equal(t, 1, vp.Line())
	typeKeys(e, "5G")
	assert.Equal(t, 4, vp.Line(), "G with a count takes a 1-based line")
	typeKeys(e, "G")
	assert.Equal(t, 9, vp.Line())
	typeKeys(e, "10l")
	assert.Equal(t, 10, vp.Col())
	typeKeys(e, "0")
	assert.Equal(t, 0, vp.Col(), "0 with no count is a motion")
	typeKeys(e, "$")
	assert.Equal(t, 17, vp.Col())
	typeKeys(e, "b")
	assert.Equal(t, 2, vp.Col())
	typeKeys(e, "g")
	assert.Equal(t, buffer.Position{}, vp.Position())
	typeKeys(e, "99999999j")
	assert.Equal(t, 9, vp.Line())
}

func TestNormalMode_WordMotion(t *testing.T) {
	e := newEditor(t, small, "foo(bar, baz)")
	typeKeys(e, "w")
	assert.Equal(t, 3, e.Viewport().Col())
	typeKeys(e, "2w")
	assert.Equal(t, 7, e.Viewport().Col())
	typeKeys(e, "b")
	assert.Equal(t, 4, e.Viewport().Col())
}

func TestNormalMode_PageKeys(t *testing.T) {
	lines := make([]string, 100)
	e := newEditor(t, Size{Rows: 11, Cols: 20}, lines...)

	e.HandleKey(terminal.KeyPageDown)
	assert.Equal(t, 10, e.Viewport().Line())
	typeKeys(e, "3")
	e.HandleKey(terminal.KeyPageDown)
	assert.Equal(t, 40, e.Viewport().Line())
	e.HandleKey(terminal.KeyPageUp)
	assert.Equal(t, 30, e.Viewport().Line())
	typeKeys(e, "9")
	e.HandleKey(terminal.KeyPageUp)
	assert.Equal(t, 0, e.Viewport().Line())
}

func TestNormalMode_DeleteBytes(t *testing.T) {
	e := newEditor(t, small, "abcdef")
	typeKeys(e, "3x")
	assert.Equal(t, []string{"def"}, docLines(e))
	typeKeys(e, "$x")
	assert.Equal(t, []string{"def"}, docLines(e), "nothing under the cursor past the end")
	typeKeys(e, "9x")
	assert.Equal(t, []string{"def"}, docLines(e))
	typeKeys(e, "0l9x")
	assert.Equal(t, []string{"d"}, docLines(e))
}

func TestNormalMode_DeleteLines(t *testing.T) {
	e := newEditor(t, small, "a", "b", "c", "d", "e")
	typeKeys(e, "j3d")
	assert.Equal(t, []string{"a", "e"}, docLines(e))
	assert.Equal(t, 1, e.Viewport().Line())

	typeKeys(e, "9d")
	assert.Equal(t, 1, e.Document().LineCount())
	assert.Equal(t, "Cannot delete the only line", e.Message())
	assert.Equal(t, 0, e.Viewport().Line())
}

func TestNormalMode_DeleteLastLineClampsCursor(t *testing.T) {
	e := newEditor(t, Size{Rows: 3, Cols: 20}, "a", "b", "c", "d")
	typeKeys(e, "G")
	require.Equal(t, 3, e.Viewport().Line())
	typeKeys(e, "d")
	assert.Equal(t, 2, e.Viewport().Line())
	assert.Equal(t, []string{"a", "b", "c"}, docLines(e))
}

func TestNormalMode_OpenLines(t *testing.T) {
	e := newEditor(t, small, "a")
	typeKeys(e, "o")
	assert.Equal(t, []string{"a", ""}, docLines(e))
	assert.Equal(t, 1, e.Viewport().Line())
	assert.Equal(t, NormalMode, e.Mode())

	typeKeys(e, "2O")
	assert.Equal(t, []string{"a", "", "", ""}, docLines(e))
	assert.Equal(t, 1, e.Viewport().Line())
}

func TestQuit_Clean(t *testing.T) {
	e := newEditor(t, small, "a")
	typeKeys(e, "q")
	assert.True(t, e.Quit())
}

func TestQuit_DirtyNeedsRepeatedPresses(t *testing.T) {
	e := newEditor(t, small, "a")
	typeKeys(e, "x")
	require.True(t, e.Document().Dirty())

	typeKeys(e, "q")
	assert.False(t, e.Quit())
	assert.Contains(t, e.Message(), "press q 2 more times")

	typeKeys(e, "jq")
	assert.False(t, e.Quit(), "another key starts the count over")
	typeKeys(e, "q")
	assert.False(t, e.Quit())
	typeKeys(e, "q")
	assert.True(t, e.Quit())
}

func TestSave(t *testing.T) {
	e := newEditor(t, small, "a")
	typeKeys(e, "ib")
	e.HandleKey(terminal.KeyEsc)
	typeKeys(e, "s")

	assert.Equal(t, "Saved 3 bytes", e.Message())
	assert.False(t, e.Document().Dirty())
	raw, err := os.ReadFile(e.Document().Path())
	require.NoError(t, err)
	assert.Equal(t, "ba\n", string(raw))
}

func TestSave_FailureKeepsSession(t *testing.T) {
	cfg := config.Default()
	doc := buffer.New(filepath.Join(t.TempDir(), "no", "such", "dir", "f.txt"), cfg.TabWidth, []byte("a"))
	e := New(doc, cfg, small)
	typeKeys(e, "xs")

	assert.True(t, strings.HasPrefix(e.Message(), "Save failed: "), e.Message())
	assert.LessOrEqual(t, len(e.Message()), msgMaxLen)
	assert.True(t, e.Document().Dirty())
	assert.False(t, e.Quit())
}

func TestSaveToSpareDir(t *testing.T) {
	e := newEditor(t, small, "a")
	now := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.Local)
	e.now = func() time.Time { return now }
	typeKeys(e, "S")

	want := e.Document().SparePath(e.cfg.SpareDir, now)
	assert.True(t, strings.HasPrefix(e.Message(), "Saved to "), e.Message())
	raw, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(raw))
}

func TestSearch(t *testing.T) {
	e := newEditor(t, small, "abc", "de\tf", "xde")
	vp := e.Viewport()

	typeKeys(e, "/d")
	assert.Equal(t, SearchMode, e.Mode())
	assert.Contains(t, e.statusLine(400), ": /d")
	typeKeys(e, "e")
	e.HandleKey(terminal.KeyEnter)
	assert.Equal(t, NormalMode, e.Mode())
	assert.Equal(t, buffer.Position{Line: 1}, vp.Position())

	typeKeys(e, "n")
	assert.Equal(t, buffer.Position{Line: 2, Col: 1}, vp.Position())

	typeKeys(e, "n")
	assert.Equal(t, "Not found: de", e.Message())
	assert.Equal(t, buffer.Position{Line: 2, Col: 1}, vp.Position(), "a miss does not move")

	typeKeys(e, "N")
	assert.Empty(t, e.Message())
	assert.Equal(t, buffer.Position{Line: 1}, vp.Position())

	typeKeys(e, "G/abx")
	e.HandleKey(terminal.KeyBackspace)
	e.HandleKey(terminal.KeyTab)
	assert.Equal(t, buffer.Position{}, vp.Position(), "tab searches backward")
}

func TestSearch_EscapeLeavesPrompt(t *testing.T) {
	e := newEditor(t, small, "abc")
	typeKeys(e, "/zz")
	e.HandleKey(terminal.KeyEsc)
	assert.Equal(t, NormalMode, e.Mode())
	typeKeys(e, "n")
	assert.Equal(t, "Not found: ", e.Message(), "the abandoned query is not remembered")
}

func TestMessage_LivesUntilNextKey(t *testing.T) {
	e := newEditor(t, small, "abc")
	e.SetMessage("hello %d", 42)
	e.HandleKey(terminal.KeyNone)
	assert.Equal(t, "hello 42", e.Message(), "a read timeout is not a key")
	typeKeys(e, "l")
	assert.Empty(t, e.Message())

	e.SetMessage("%s", strings.Repeat("m", 200))
	assert.Len(t, e.Message(), msgMaxLen)
}

func TestHandleResize(t *testing.T) {
	e := newEditor(t, Size{Rows: 30, Cols: 40}, make([]string, 50)...)
	typeKeys(e, "20G")
	want := e.Viewport().Position()

	e.HandleResize(Size{Rows: 5, Cols: 10})
	assert.Equal(t, want, e.Viewport().Position())
	frame := string(e.RenderFrame())
	assert.Equal(t, 4, strings.Count(frame, "\r\n"))
}

func TestRenderFrame(t *testing.T) {
	e := newEditor(t, Size{Rows: 4, Cols: 20}, "abc", "de\tf")
	typeKeys(e, "jll")

	frame := string(e.RenderFrame())
	assert.True(t, strings.HasPrefix(frame, "\x1b[?25l\x1b[H"), "%q", frame)
	assert.Contains(t, frame, "\x1b[Kabc\r\n\x1b[Kde  f\r\n\x1b[K~\r\n")
	assert.Contains(t, frame, terminal.SetColors(e.fg, e.bg))
	assert.Contains(t, frame, " [NORMAL] ")
	assert.True(t, strings.HasSuffix(frame, "\x1b[m\x1b[2;3H\x1b[?25h"), "%q", frame)
}

func TestRenderFrame_HorizontalScroll(t *testing.T) {
	e := newEditor(t, Size{Rows: 2, Cols: 8}, "0123456789abcdef")
	typeKeys(e, "$")
	frame := string(e.RenderFrame())
	assert.Contains(t, frame, "\x1b[K9abcdef\r\n")
	assert.True(t, strings.HasSuffix(frame, "\x1b[1;8H\x1b[?25h"), "%q", frame)
}

func TestStatusLine(t *testing.T) {
	e := newEditor(t, small, "abc")
	line := e.statusLine(40)
	assert.Len(t, line, 40)
	assert.True(t, strings.HasSuffix(line, "1:1 "))
	line = e.statusLine(400)
	assert.Len(t, line, 400)
	assert.True(t, strings.HasPrefix(line, " [NORMAL] "+e.Document().Path()+" (plaintext)"), line)

	typeKeys(e, "x")
	assert.Contains(t, e.statusLine(200), "(plaintext) [+]")
	assert.Len(t, e.statusLine(3), 3)
	assert.Len(t, e.statusLine(1), 1)
}

func TestDetectFiletype(t *testing.T) {
	assert.Equal(t, "Go", detectFiletype("/src/main.go"))
	assert.Equal(t, "plaintext", detectFiletype("notes.txt"))
	assert.Empty(t, detectFiletype(""))
}

// Random key presses and resizes never break the cursor invariants.
func TestInvariantsUnderRandomInput(t *testing.T) {
	keys := []terminal.Key{
		'h', 'j', 'k', 'l', 'w', 'b', '0', '$', 'g', 'G', 'x', 'd', 'o', 'O', 'a', 'i', '2', '3',
		terminal.KeyArrowUp, terminal.KeyArrowDown, terminal.KeyArrowLeft, terminal.KeyArrowRight,
		terminal.KeyPageUp, terminal.KeyPageDown, terminal.KeyHome, terminal.KeyEnd,
		terminal.KeyEsc, terminal.KeyEnter, terminal.KeyBackspace, terminal.KeyDelete, terminal.KeyTab,
		'z', ' ', '.',
	}
	rng := rand.New(rand.NewSource(7))
	e := newEditor(t, Size{Rows: 6, Cols: 12}, "func main() {", "\tfmt.Println(\"hi\")", "", "}")

	for step := range 5000 {
		if step%97 == 0 {
			e.HandleResize(Size{Rows: 2 + rng.Intn(10), Cols: 1 + rng.Intn(20)})
		}
		e.HandleKey(keys[rng.Intn(len(keys))])
		requireInvariants(t, e.Viewport(), e.Document())
		row, col := e.Viewport().ScreenCursor(e.Document(), 4)
		require.Less(t, row, e.Viewport().Size().TextRows())
		require.Less(t, col, e.Viewport().Size().Cols)
	}
	assert.False(t, e.Quit())
}

func TestRefresh_WritesOneFrame(t *testing.T) {
	e := newEditor(t, Size{Rows: 3, Cols: 20}, "abc")
	want := string(e.RenderFrame())

	var out strings.Builder
	require.NoError(t, e.Refresh(&out))
	assert.Equal(t, want, out.String())
}
