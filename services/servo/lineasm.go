package servo

// LineCap is the number of visible bytes a command line may hold.
const LineCap = 31

// LineAssembler accumulates transport bytes into command lines.
//
// CR and LF both end a line; a terminator on an empty buffer is absorbed so
// CRLF pairs and blank lines produce nothing. Bytes past LineCap are dropped
// until the next terminator, and the truncated line is still delivered.
type LineAssembler struct {
	buf        [LineCap]byte
	n          int
	overflowed bool
	overflows  uint32
}

// Feed consumes one byte and returns a completed line when b terminates one.
func (a *LineAssembler) Feed(b byte) (string, bool) {
	if b == '\r' || b == '\n' {
		if a.n == 0 {
			return "", false
		}
		line := string(a.buf[:a.n])
		a.n = 0
		a.overflowed = false
		return line, true
	}
	if a.n >= len(a.buf) {
		if !a.overflowed {
			a.overflowed = true
			a.overflows++
		}
		return "", false
	}
	a.buf[a.n] = b
	a.n++
	return "", false
}

// Pending is the number of bytes buffered for the current line.
func (a *LineAssembler) Pending() int { return a.n }

// Overflowed reports whether the current line has dropped bytes.
func (a *LineAssembler) Overflowed() bool { return a.overflowed }

// Overflows counts lines that were truncated since start.
func (a *LineAssembler) Overflows() uint32 { return a.overflows }
