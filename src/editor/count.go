package editor

// maxRepeat caps a typed repeat count.
const maxRepeat = 1 << 20

type countState int

const (
	countIdle countState = iota
	countAccumulating
)

// repeatCount collects the digits typed before a normal mode command.
type repeatCount struct {
	state countState
	n     int
}

// Accepts reports whether digit continues or starts a count. A zero with
// no count pending is a motion instead.
func (c *repeatCount) Accepts(digit int) bool {
	return c.state == countAccumulating || digit != 0
}

// Push appends a digit, saturating at maxRepeat.
func (c *repeatCount) Push(digit int) {
	if c.state == countIdle {
		c.state = countAccumulating
		c.n = 0
	}
	if c.n > (maxRepeat-digit)/10 {
		c.n = maxRepeat
		return
	}
	c.n = c.n*10 + digit
}

// Take returns the count for the next command and resets to idle. Without
// a typed count it returns 1 and explicit is false.
func (c *repeatCount) Take() (n int, explicit bool) {
	if c.state == countIdle {
		return 1, false
	}
	n = max(c.n, 1)
	c.state, c.n = countIdle, 0
	return n, true
}
