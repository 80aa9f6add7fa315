package editor

type tokenClass int

const (
	classBlank tokenClass = iota
	classWord
	classOther
)

func classOf(c byte) tokenClass {
	switch {
	case c == ' ' || c == '\t':
		return classBlank
	case c == '_', c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return classWord
	}
	return classOther
}

// nextToken returns the offset in s of the next token start: past the run
// the first byte belongs to, then past any blanks. len(s) means none.
func nextToken(s []byte) int {
	i := 0
	if len(s) > 0 && classOf(s[0]) != classBlank {
		cls := classOf(s[0])
		for i < len(s) && classOf(s[i]) == cls {
			i++
		}
	}
	for i < len(s) && classOf(s[i]) == classBlank {
		i++
	}
	return i
}

// prevToken returns the start of the token before pos: back over blanks,
// then back to the start of the run found there. pos means none.
func prevToken(s []byte, pos int) int {
	i := pos
	for i > 0 && classOf(s[i-1]) == classBlank {
		i--
	}
	if i == 0 {
		return 0
	}
	cls := classOf(s[i-1])
	for i > 0 && classOf(s[i-1]) == cls {
		i--
	}
	return i
}
