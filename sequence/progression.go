package sequence

import (
	"iter"
	"strconv"
	"strings"
)

// A Progression represents an arithmetic run of frames from Start to End
// inclusive, every Step frames. The zero value is the single frame 0.
type Progression struct {
	start int
	end   int
	step  int
}

// newProgression returns the progression of n frames starting at start. A
// progression holding a single frame always has a step of 1.
func newProgression(start, step, n int) Progression {
	if n <= 1 {
		return Progression{start: start, end: start, step: 1}
	}
	return Progression{start: start, end: start + (n-1)*step, step: step}
}

// Start returns the first frame.
func (p Progression) Start() int { return p.start }

// End returns the last frame.
func (p Progression) End() int { return p.end }

// Step returns the distance between consecutive frames.
func (p Progression) Step() int { return max(p.step, 1) }

// Len returns the number of frames.
func (p Progression) Len() int {
	return (p.end-p.start)/p.Step() + 1
}

// At returns the frame at position i. It does not check bounds.
func (p Progression) At(i int) int {
	return p.start + i*p.Step()
}

// Contains reports whether f belongs to the progression.
func (p Progression) Contains(f int) bool {
	return f >= p.start && f <= p.end && (f-p.start)%p.Step() == 0
}

// All returns an iterator over the frames in increasing order.
func (p Progression) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range p.Len() {
			if !yield(p.At(i)) {
				return
			}
		}
	}
}

// Frames returns the frames as a new slice.
func (p Progression) Frames() []int {
	frames := make([]int, p.Len())
	for i := range frames {
		frames[i] = p.At(i)
	}
	return frames
}

// String returns the progression as a spec token: N, S-E or S-ExSTEP.
func (p Progression) String() string {
	var b strings.Builder
	p.appendTo(&b, "-", "x", ",")
	return b.String()
}

// appendTo writes the progression using custom separators. When stepSep is
// empty, stepped progressions are written frame by frame.
func (p Progression) appendTo(b *strings.Builder, rangeSep, stepSep, tokenSep string) {
	switch {
	case p.Len() == 1:
		b.WriteString(strconv.Itoa(p.start))
	case p.Step() == 1:
		b.WriteString(strconv.Itoa(p.start))
		b.WriteString(rangeSep)
		b.WriteString(strconv.Itoa(p.end))
	case stepSep == "":
		for i := range p.Len() {
			if i > 0 {
				b.WriteString(tokenSep)
			}
			b.WriteString(strconv.Itoa(p.At(i)))
		}
	default:
		b.WriteString(strconv.Itoa(p.start))
		b.WriteString(rangeSep)
		b.WriteString(strconv.Itoa(p.end))
		b.WriteString(stepSep)
		b.WriteString(strconv.Itoa(p.step))
	}
}

// offset returns the progression shifted by n frames.
func (p Progression) offset(n int) Progression {
	return Progression{start: p.start + n, end: p.end + n, step: p.Step()}
}

// split cuts the progression into consecutive progressions holding at most
// size frames. A size lower than 1 disables splitting.
func (p Progression) split(size int) []Progression {
	n := p.Len()
	if size < 1 || n <= size {
		return []Progression{p}
	}
	parts := make([]Progression, 0, ceilDiv(n, size))
	for i := 0; i < n; i += size {
		parts = append(parts, newProgression(p.At(i), p.Step(), min(size, n-i)))
	}
	return parts
}

// stride returns the progression made of the frames at positions
// offset, offset+k, offset+2k, ... The caller guarantees 0 <= offset < Len().
func (p Progression) stride(offset, k int) Progression {
	n := (p.Len()-1-offset)/k + 1
	return newProgression(p.At(offset), p.Step()*k, n)
}

// Decompose splits frames into the shortest ordered list of maximal
// constant-step progressions. Frames may be unsorted and hold duplicates.
// If maxSize is greater than 0, progressions longer than maxSize frames are
// further split into consecutive progressions of at most maxSize frames.
func Decompose(frames []int, maxSize int) []Progression {
	var result []Progression
	for _, p := range decompose(normalize(frames)) {
		result = append(result, p.split(maxSize)...)
	}
	return result
}

// decompose expects sorted, duplicate-free frames.
func decompose(frames []int) []Progression {
	n := len(frames)
	var result []Progression
	i := 0
	for i < n {
		if i == n-1 {
			result = append(result, newProgression(frames[i], 1, 1))
			break
		}
		step := frames[i+1] - frames[i]
		j := i + 1
		for j+1 < n && frames[j+1]-frames[j] == step {
			j++
		}
		// A pair whose second frame opens a longer run gives that frame away.
		if j == i+1 && j+2 < n {
			if d := frames[j+1] - frames[j]; frames[j+2]-frames[j+1] == d {
				result = append(result, newProgression(frames[i], 1, 1))
				i = j
				continue
			}
		}
		result = append(result, newProgression(frames[i], step, j-i+1))
		i = j + 1
	}
	return result
}

// ceilDiv returns the least integer greater than or equal to x/y, for
// positive x and y.
func ceilDiv(x, y int) int {
	return (x + y - 1) / y
}
