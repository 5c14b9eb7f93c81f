package engine

// Window is a ring-buffer deque of segments with consecutive ids.
// The front is the oldest segment still kept, the back the newest.
type Window struct {
	buf  []Segment
	head int
	n    int
}

// NewWindow creates an empty window with room for capacity segments.
// The window grows if it ever needs more.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{buf: make([]Segment, capacity)}
}

// Len returns the number of segments held.
func (w *Window) Len() int {
	return w.n
}

// Push appends a segment at the back.
func (w *Window) Push(s Segment) {
	if w.n == len(w.buf) {
		w.grow()
	}
	w.buf[(w.head+w.n)%len(w.buf)] = s
	w.n++
}

// grow doubles the backing array, unrolling the ring into order.
func (w *Window) grow() {
	next := make([]Segment, len(w.buf)*2)
	for i := 0; i < w.n; i++ {
		next[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	w.buf = next
	w.head = 0
}

// PopFront removes and returns the oldest segment.
func (w *Window) PopFront() (Segment, bool) {
	if w.n == 0 {
		return Segment{}, false
	}
	s := w.buf[w.head]
	w.buf[w.head] = Segment{}
	w.head = (w.head + 1) % len(w.buf)
	w.n--
	return s, true
}

// Front returns the oldest segment.
func (w *Window) Front() (Segment, bool) {
	if w.n == 0 {
		return Segment{}, false
	}
	return w.buf[w.head], true
}

// Back returns the newest segment.
func (w *Window) Back() (Segment, bool) {
	if w.n == 0 {
		return Segment{}, false
	}
	return w.At(w.n - 1), true
}

// At returns the i-th segment counted from the front. i must be in [0, Len).
func (w *Window) At(i int) Segment {
	return w.buf[(w.head+i)%len(w.buf)]
}

// Find returns the segment with the given id. Ids in the window are
// consecutive, so this is an index computation rather than a scan.
func (w *Window) Find(id int) (Segment, bool) {
	front, ok := w.Front()
	if !ok {
		return Segment{}, false
	}
	i := id - front.ID
	if i < 0 || i >= w.n {
		return Segment{}, false
	}
	return w.At(i), true
}

// EvictBefore drops segments from the front while their id is below minID.
// Returns how many were dropped.
func (w *Window) EvictBefore(minID int) int {
	dropped := 0
	for {
		front, ok := w.Front()
		if !ok || front.ID >= minID {
			return dropped
		}
		w.PopFront()
		dropped++
	}
}

// Slice returns a copy of the window contents, oldest first.
func (w *Window) Slice() []Segment {
	out := make([]Segment, w.n)
	for i := range out {
		out[i] = w.At(i)
	}
	return out
}

// Clear empties the window, keeping its capacity.
func (w *Window) Clear() {
	for i := range w.buf {
		w.buf[i] = Segment{}
	}
	w.head = 0
	w.n = 0
}
