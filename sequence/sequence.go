package sequence

import (
	"fmt"
	"iter"
	"slices"
)

// A FrameSet is a collection of frames that can be iterated in any order.
type FrameSet interface {
	All() iter.Seq[int]
}

// FrameList adapts a slice of frames to the FrameSet interface.
type FrameList []int

// All returns an iterator over the frames of the list.
func (l FrameList) All() iter.Seq[int] {
	return slices.Values(l)
}

// A Sequence represents a sorted set of frames along with the progressions
// it decomposes into. Sequences are obtained from constructors only; set
// operations return new sequences and never modify the receiver's frames.
//
// The chunk size and strategy are the only mutable state. A Sequence must
// not have them modified while it is used from another goroutine: use Clone,
// ChunksOf or a Store instead.
//
// The zero value is not usable; use New or one of the NewFrom constructors.
type Sequence struct {
	frames       []int
	progressions []Progression
	chunkSize    int
	strategy     Strategy
}

// New creates a Sequence from one of:
//
//	New(frame int)
//	New(start, end int)
//	New(start, end, step int)
//	New(spec string)
//	New(frames []int)
//	New(frames FrameSet)
//	New(frames iter.Seq[int])
//
// It returns an error wrapping ErrInvalidConstruction for any other
// combination of arguments and ErrInvalidSpec if the frames cannot be
// resolved or are empty.
func New(args ...any) (*Sequence, error) {
	frames, err := resolve(args...)
	if err != nil {
		return nil, err
	}
	return fromFrames(frames)
}

// MustNew is like New but panics if the sequence cannot be created.
func MustNew(args ...any) *Sequence {
	s, err := New(args...)
	if err != nil {
		panic(err)
	}
	return s
}

// NewFromSpec creates a Sequence from a spec string such as "1-10x2,14".
func NewFromSpec(spec string) (*Sequence, error) {
	frames, err := parseSpec(spec)
	if err != nil {
		return nil, err
	}
	return fromFrames(frames)
}

// NewFromRange creates a Sequence holding the frames from start to end
// inclusive, every step frames. Reversed bounds are swapped.
func NewFromRange(start, end, step int) (*Sequence, error) {
	frames, err := rangeFrames(start, end, step)
	if err != nil {
		return nil, err
	}
	return fromFrames(frames)
}

// NewFromFrames creates a Sequence from unsorted frames, possibly holding
// duplicates.
func NewFromFrames(frames []int) (*Sequence, error) {
	return fromFrames(normalize(frames))
}

// fromFrames expects sorted, duplicate-free frames.
func fromFrames(frames []int) (*Sequence, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no frames", ErrInvalidSpec)
	}
	return newSequence(frames), nil
}

// newSequence expects sorted, duplicate-free, non-empty frames and takes
// ownership of the slice.
func newSequence(frames []int) *Sequence {
	return &Sequence{frames: frames, progressions: decompose(frames)}
}

// newFromProgression returns the progression variant of a Sequence.
func newFromProgression(p Progression) *Sequence {
	return &Sequence{frames: p.Frames(), progressions: []Progression{p}}
}

// derive returns a new Sequence holding frames with the chunk settings of s.
// It returns nil if frames is empty.
func (s *Sequence) derive(frames []int) *Sequence {
	if len(frames) == 0 {
		return nil
	}
	x := newSequence(frames)
	x.chunkSize = s.chunkSize
	x.strategy = s.strategy
	return x
}

// Clone returns a deep copy of s.
func (s *Sequence) Clone() *Sequence {
	return &Sequence{
		frames:       slices.Clone(s.frames),
		progressions: slices.Clone(s.progressions),
		chunkSize:    s.chunkSize,
		strategy:     s.strategy,
	}
}

// Len returns the number of frames.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.frames)
}

// Start returns the first frame.
func (s *Sequence) Start() int {
	return s.frames[0]
}

// End returns the last frame.
func (s *Sequence) End() int {
	return s.frames[len(s.frames)-1]
}

// All returns an iterator over the frames in increasing order.
func (s *Sequence) All() iter.Seq[int] {
	if s == nil {
		return func(func(int) bool) {}
	}
	return slices.Values(s.frames)
}

// Frames returns the frames as a new slice.
func (s *Sequence) Frames() []int {
	return slices.Clone(s.frames)
}

// IsProgression reports whether the frames form a single progression.
func (s *Sequence) IsProgression() bool {
	return len(s.progressions) == 1
}

// Progression returns the single progression the sequence is made of. The
// second return value is false if the sequence holds several progressions.
func (s *Sequence) Progression() (Progression, bool) {
	if !s.IsProgression() {
		return Progression{}, false
	}
	return s.progressions[0], true
}

// Progressions returns the maximal progressions the sequence decomposes into.
func (s *Sequence) Progressions() []Progression {
	return slices.Clone(s.progressions)
}

// Step returns the step of a progression variant, or 0 if the sequence holds
// several progressions.
func (s *Sequence) Step() int {
	if p, ok := s.Progression(); ok {
		return p.Step()
	}
	return 0
}
