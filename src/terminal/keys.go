package terminal

// Key is a decoded key press. Values below 256 are the byte that was read;
// larger values are synthetic keys decoded from escape sequences.
type Key int

const (
	KeyNone      Key = -1 // read timed out, nothing was pressed
	KeyCtrlH     Key = 8
	KeyTab       Key = 9
	KeyEnter     Key = 13
	KeyEsc       Key = 27
	KeyBackspace Key = 127

	// Values >= 1000 are synthetic key codes
	KeyArrowLeft Key = iota + 1000
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// IsByte reports whether k is a plain byte rather than a synthetic key.
func (k Key) IsByte() bool { return k >= 0 && k < 256 }

// IsPrint reports whether k is a printable ASCII byte.
func (k Key) IsPrint() bool { return k >= ' ' && k <= '~' }

// IsDigit reports whether k is an ASCII digit.
func (k Key) IsDigit() bool { return k >= '0' && k <= '9' }

func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyTab:
		return "tab"
	case KeyEnter:
		return "enter"
	case KeyEsc:
		return "esc"
	case KeyBackspace, KeyCtrlH:
		return "backspace"
	case KeyArrowLeft:
		return "left"
	case KeyArrowRight:
		return "right"
	case KeyArrowUp:
		return "up"
	case KeyArrowDown:
		return "down"
	case KeyDelete:
		return "delete"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyPageUp:
		return "pgup"
	case KeyPageDown:
		return "pgdown"
	}
	if k.IsPrint() {
		return string(rune(k))
	}
	if k.IsByte() && k < ' ' {
		return "ctrl-" + string(rune(k+'a'-1))
	}
	return "unknown"
}

// DecodeKey turns one read key sequence into a Key. A sequence that starts
// with ESC but is not recognized decodes as KeyEsc.
func DecodeKey(seq []byte) Key {
	if len(seq) == 0 {
		return KeyNone
	}
	if seq[0] != byte(KeyEsc) || len(seq) == 1 {
		return Key(seq[0])
	}
	if len(seq) < 3 {
		return KeyEsc
	}

	switch seq[1] {
	case '[':
		if seq[2] >= '0' && seq[2] <= '9' {
			if len(seq) < 4 || seq[3] != '~' {
				return KeyEsc
			}
			switch seq[2] {
			case '1', '7':
				return KeyHome
			case '3':
				return KeyDelete
			case '4', '8':
				return KeyEnd
			case '5':
				return KeyPageUp
			case '6':
				return KeyPageDown
			}
			return KeyEsc
		}
		switch seq[2] {
		case 'A':
			return KeyArrowUp
		case 'B':
			return KeyArrowDown
		case 'C':
			return KeyArrowRight
		case 'D':
			return KeyArrowLeft
		case 'H':
			return KeyHome
		case 'F':
			return KeyEnd
		}
	case 'O':
		switch seq[2] {
		case 'H':
			return KeyHome
		case 'F':
			return KeyEnd
		}
	}
	return KeyEsc
}
