package pipeline

import "github.com/shibukawa/stagerange/interval"

// workList is a growable ring buffer of pending ranges.
// It is owned by a single stage run and never shared.
type workList struct {
	buf  []interval.Range
	head int
	size int
}

func newWorkList(initial []interval.Range) *workList {
	capacity := max(len(initial)*2, 8)
	w := &workList{buf: make([]interval.Range, capacity)}

	for _, r := range initial {
		w.pushBack(r)
	}

	return w
}

func (w *workList) len() int {
	return w.size
}

func (w *workList) pushBack(r interval.Range) {
	if w.size == len(w.buf) {
		w.grow()
	}

	w.buf[(w.head+w.size)%len(w.buf)] = r
	w.size++
}

func (w *workList) popFront() (interval.Range, bool) {
	if w.size == 0 {
		return interval.Range{}, false
	}

	r := w.buf[w.head]
	w.head = (w.head + 1) % len(w.buf)
	w.size--

	return r, true
}

func (w *workList) grow() {
	buf := make([]interval.Range, len(w.buf)*2)
	for i := range w.size {
		buf[i] = w.buf[(w.head+i)%len(w.buf)]
	}

	w.buf = buf
	w.head = 0
}
