package sequence

import (
	"slices"
)

// At returns the frame at position i. Negative positions count back from the
// end, -1 being the last frame. The second return value is false if i is out
// of range.
func (s *Sequence) At(i int) (int, bool) {
	n := s.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	if p, ok := s.Progression(); ok {
		return p.At(i), true
	}
	return s.frames[i], true
}

// Contains reports whether f belongs to the sequence.
func (s *Sequence) Contains(f int) bool {
	if s.Len() == 0 {
		return false
	}
	if p, ok := s.Progression(); ok {
		return p.Contains(f)
	}
	_, found := slices.BinarySearch(s.frames, f)
	return found
}

// Intersection returns a new Sequence holding the frames found in both s and
// other, or nil if there are none.
func (s *Sequence) Intersection(other FrameSet) *Sequence {
	y := collect(other)
	a, _ := span(s.frames)
	b, ok := span(y)
	if !ok {
		return nil
	}
	if _, ok := a.intersect(b); !ok {
		return nil
	}
	var frames []int
	i, j := 0, 0
	for i < len(s.frames) && j < len(y) {
		switch {
		case s.frames[i] < y[j]:
			i++
		case s.frames[i] > y[j]:
			j++
		default:
			frames = append(frames, s.frames[i])
			i++
			j++
		}
	}
	return s.derive(frames)
}

// Union returns a new Sequence holding the frames found in s or other.
func (s *Sequence) Union(other FrameSet) *Sequence {
	y := collect(other)
	frames := make([]int, 0, len(s.frames)+len(y))
	i, j := 0, 0
	for i < len(s.frames) && j < len(y) {
		switch {
		case s.frames[i] < y[j]:
			frames = append(frames, s.frames[i])
			i++
		case s.frames[i] > y[j]:
			frames = append(frames, y[j])
			j++
		default:
			frames = append(frames, s.frames[i])
			i++
			j++
		}
	}
	frames = append(frames, s.frames[i:]...)
	frames = append(frames, y[j:]...)
	return s.derive(frames)
}

// Difference returns a new Sequence holding the frames of s not found in
// other, or nil if there are none. A new Sequence is returned even if no
// frame was removed.
func (s *Sequence) Difference(other FrameSet) *Sequence {
	y := collect(other)
	frames := make([]int, 0, len(s.frames))
	j := 0
	for _, f := range s.frames {
		for j < len(y) && y[j] < f {
			j++
		}
		if j < len(y) && y[j] == f {
			continue
		}
		frames = append(frames, f)
	}
	return s.derive(frames)
}

// Offset returns a new Sequence with every frame shifted by n. The chunk
// size and strategy are preserved.
func (s *Sequence) Offset(n int) *Sequence {
	x := s.Clone()
	for i := range x.frames {
		x.frames[i] += n
	}
	for i, p := range x.progressions {
		x.progressions[i] = p.offset(n)
	}
	return x
}

// Subsample returns a new Sequence holding n evenly spaced frames of s. The
// sequence is cut into n equal parts and the frame in the middle of each part
// is selected. Values of n lower than 1 are treated as 1 and values greater
// than the number of frames select every frame.
func (s *Sequence) Subsample(n int) *Sequence {
	count := len(s.frames)
	n = max(1, min(n, count))
	frames := make([]int, n)
	for i := range n {
		frames[i] = s.frames[(2*i+1)*count/(2*n)]
	}
	return s.derive(frames)
}

// CalcFML returns a new Sequence holding the first, last and n-2 middle
// frames of s. The middle frames are picked at a fixed stride, the number of
// frames per gap rounded half up, falling back to rounding every position
// when the stride would overrun the last frame. If n is lower than 2 only the
// first frame is kept; if n exceeds the number of frames every frame is kept.
func (s *Sequence) CalcFML(n int) *Sequence {
	count := len(s.frames)
	if n <= 1 {
		return s.derive([]int{s.frames[0]})
	}
	if n >= count {
		return s.derive(slices.Clone(s.frames))
	}
	last, gaps := count-1, n-1
	frames := make([]int, 0, n)
	if stride := (2*last + gaps) / (2 * gaps); stride*(n-2) < last {
		for i := range n - 1 {
			frames = append(frames, s.frames[i*stride])
		}
		frames = append(frames, s.frames[last])
	} else {
		for i := range n {
			frames = append(frames, s.frames[(2*i*last+gaps)/(2*gaps)])
		}
	}
	return s.derive(frames)
}

// collect returns the sorted, duplicate-free frames of x.
func collect(x FrameSet) []int {
	if x == nil {
		return nil
	}
	if s, ok := x.(*Sequence); ok {
		if s == nil {
			return nil
		}
		return s.frames
	}
	return normalize(slices.Collect(x.All()))
}
