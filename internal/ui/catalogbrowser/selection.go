package catalogbrowser

// scrollMargin is the number of rows kept visible around the selection.
const scrollMargin = 3

// selection is the highlighted row of the current list and the first row
// on screen.
type selection struct {
	pos int
	top int
}

func (s *selection) move(delta, n, height int) {
	s.jump(s.pos+delta, n, height)
}

// jump selects pos, clamped to the n rows of the list, and scrolls a window
// of height rows so the selection keeps its margin.
func (s *selection) jump(pos, n, height int) {
	if n <= 0 {
		*s = selection{}
		return
	}
	s.pos = max(0, min(pos, n-1))

	margin := max(0, min(scrollMargin, (height-1)/2))
	if s.pos < s.top+margin {
		s.top = s.pos - margin
	}
	if last := s.top + height - 1; s.pos > last-margin {
		s.top = s.pos - height + 1 + margin
	}
	s.top = max(0, min(s.top, n-height))
}
