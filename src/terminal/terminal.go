// Package terminal owns the controlling terminal: raw mode, window size,
// key decoding and the escape sequences used to draw a frame.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Open when the input is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// readTimeout is the raw mode read timeout in tenths of a second. A key read
// that sees nothing for this long yields KeyNone so the caller can react to
// resizes between key presses.
const readTimeout = 1

// Terminal is a terminal switched into raw mode. Close must be called to
// give the user their shell back.
type Terminal struct {
	in   *os.File
	out  *os.File
	fd   int
	orig *term.State
}

// Open switches in to raw mode with a short read timeout and enters the
// alternate screen on out.
func Open(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s: %w", in.Name(), ErrNotTerminal)
	}

	orig, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enabling raw mode: %w", err)
	}
	t := &Terminal{in: in, out: out, fd: fd, orig: orig}

	if err := setReadTimeout(fd, readTimeout); err != nil {
		_ = term.Restore(fd, orig)
		return nil, err
	}
	if _, err := io.WriteString(out, EnterAltScreen()); err != nil {
		_ = term.Restore(fd, orig)
		return nil, fmt.Errorf("entering alternate screen: %w", err)
	}
	return t, nil
}

// setReadTimeout makes reads return after tenths/10 seconds even when no
// byte arrived. term.MakeRaw leaves VMIN=1 which blocks forever.
func setReadTimeout(fd int, tenths uint8) error {
	tio, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("getting termios: %w", err)
	}
	tio.Cc[unix.VMIN] = 0
	tio.Cc[unix.VTIME] = tenths
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, tio); err != nil {
		return fmt.Errorf("setting read timeout: %w", err)
	}
	return nil
}

// Close leaves the alternate screen and restores the original terminal
// settings. It is safe to call more than once.
func (t *Terminal) Close() error {
	if t.orig == nil {
		return nil
	}
	_, werr := io.WriteString(t.out, ResetColors()+ShowCursor()+LeaveAltScreen())
	err := term.Restore(t.fd, t.orig)
	t.orig = nil
	if err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return werr
}

// Write sends p to the terminal output.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Size returns the window size in rows and columns.
func (t *Terminal) Size() (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err == nil && ws.Row > 0 && ws.Col > 0 {
		return int(ws.Row), int(ws.Col), nil
	}
	cols, rows, err = term.GetSize(t.fd)
	if err != nil {
		return 0, 0, fmt.Errorf("getting window size: %w", err)
	}
	return rows, cols, nil
}

// ReadKey waits for one key press. When the read timeout passes without
// input it returns KeyNone and a nil error.
func (t *Terminal) ReadKey() (Key, error) {
	return readKey(t.in)
}

// readByte reads a single byte. ok is false when the read timed out.
func readByte(r io.Reader) (c byte, ok bool, err error) {
	var b [1]byte
	n, err := r.Read(b[:])
	if n == 1 {
		return b[0], true, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return 0, false, nil
	}
	return 0, false, err
}

func readKey(r io.Reader) (Key, error) {
	c, ok, err := readByte(r)
	if err != nil {
		return KeyNone, fmt.Errorf("reading key: %w", err)
	}
	if !ok {
		return KeyNone, nil
	}
	if Key(c) != KeyEsc {
		return Key(c), nil
	}

	// A lone ESC is followed by silence; anything else is a sequence.
	seq := make([]byte, 1, 4)
	seq[0] = c
	for len(seq) < cap(seq) {
		b, ok, err := readByte(r)
		if err != nil {
			return KeyNone, fmt.Errorf("reading key: %w", err)
		}
		if !ok {
			break
		}
		seq = append(seq, b)
		if !sequenceContinues(seq) {
			break
		}
	}
	return DecodeKey(seq), nil
}

// sequenceContinues reports whether more bytes belong to the escape
// sequence read so far.
func sequenceContinues(seq []byte) bool {
	switch len(seq) {
	case 2:
		return seq[1] == '[' || seq[1] == 'O'
	case 3:
		return seq[1] == '[' && seq[2] >= '0' && seq[2] <= '9'
	}
	return false
}
