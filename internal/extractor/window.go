package extractor

// window exposes the previous, current and next line of a stream and
// supports advancing by one line (body accumulation) or two (boundary
// consumption). It exists so the boundary scan reads as a transition
// table over three named slots instead of index arithmetic.
type window struct {
	lines []string
	pos   int
}

func newWindow(lines []string) *window {
	return &window{lines: lines}
}

func (w *window) done() bool {
	return w.pos >= len(w.lines)
}

func (w *window) prev() string {
	if w.pos == 0 {
		return ""
	}
	return w.lines[w.pos-1]
}

func (w *window) cur() string {
	return w.lines[w.pos]
}

func (w *window) next() string {
	if w.pos+1 >= len(w.lines) {
		return ""
	}
	return w.lines[w.pos+1]
}

func (w *window) advance(n int) {
	w.pos += n
}

// scan states for the boundary detector.
type scanState int

const (
	// stateScanning means no chapter is open; lines are discarded until
	// the first boundary fires.
	stateScanning scanState = iota
	// stateAccumulating means a chapter is open and non-boundary lines
	// belong to its body.
	stateAccumulating
)
