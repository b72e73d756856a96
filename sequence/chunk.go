package sequence

import (
	"fmt"
	"slices"
)

// A Strategy selects how a Sequence is split into chunks.
type Strategy uint8

// Chunk strategies.
const (
	StrategyLinear            Strategy = iota // contiguous slices of chunk size frames
	StrategyCycle                             // frames dealt round-robin into chunks
	StrategyCycleProgressions                 // each progression dealt round-robin into progressions
	StrategyProgressions                      // one chunk per progression, split at chunk size
	strategyUnknown
)

var strategyNames = [...]string{
	StrategyLinear:            "linear",
	StrategyCycle:             "cycle",
	StrategyCycleProgressions: "cycle_progressions",
	StrategyProgressions:      "progressions",
}

// ParseStrategy returns the strategy named name.
func ParseStrategy(name string) (Strategy, error) {
	for i, v := range strategyNames {
		if v == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown chunk strategy %q", ErrInvalidConstruction, name)
}

// String returns the name of the strategy.
func (x Strategy) String() string {
	if x >= strategyUnknown {
		return fmt.Sprintf("Strategy(%d)", uint8(x))
	}
	return strategyNames[x]
}

// MarshalText implements the encoding.TextMarshaler interface.
func (x Strategy) MarshalText() ([]byte, error) {
	if x >= strategyUnknown {
		return nil, fmt.Errorf("%w: unknown chunk strategy %d", ErrInvalidConstruction, uint8(x))
	}
	return []byte(strategyNames[x]), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (x *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// ChunkSize returns the maximum number of frames per chunk. It defaults to
// the number of frames and never exceeds it.
func (s *Sequence) ChunkSize() int {
	return s.clampSize(s.chunkSize)
}

// SetChunkSize sets the maximum number of frames per chunk. Values lower than
// 1 restore the default, values greater than the number of frames are
// clamped.
func (s *Sequence) SetChunkSize(n int) {
	s.chunkSize = max(n, 0)
}

// ChunkStrategy returns the chunk strategy, StrategyLinear by default.
func (s *Sequence) ChunkStrategy() Strategy {
	return s.strategy
}

// SetChunkStrategy sets the chunk strategy.
func (s *Sequence) SetChunkStrategy(x Strategy) {
	s.strategy = x
}

// clampSize returns size clamped to [1, Len()], 0 or less meaning Len().
func (s *Sequence) clampSize(size int) int {
	n := len(s.frames)
	if size < 1 || size > n {
		return n
	}
	return size
}

// Chunks splits the sequence using its chunk size and strategy.
func (s *Sequence) Chunks() []*Sequence {
	return s.ChunksOf(s.chunkSize, s.strategy)
}

// ChunkCount returns the number of chunks Chunks would return.
func (s *Sequence) ChunkCount() int {
	return s.ChunkCountOf(s.chunkSize, s.strategy)
}

// ChunksOf splits the sequence into chunks of at most size frames using
// strategy, leaving the receiver untouched. A size lower than 1 means a
// single chunk per progression for StrategyProgressions and
// StrategyCycleProgressions, and a single chunk otherwise.
func (s *Sequence) ChunksOf(size int, strategy Strategy) []*Sequence {
	size = s.clampSize(size)
	switch strategy {
	case StrategyCycle:
		return s.cycleChunks(size)
	case StrategyCycleProgressions:
		return s.cycleProgressionChunks(size)
	case StrategyProgressions:
		return s.progressionChunks(size)
	}
	return s.linearChunks(size)
}

// ChunkCountOf returns the number of chunks ChunksOf would return.
func (s *Sequence) ChunkCountOf(size int, strategy Strategy) int {
	size = s.clampSize(size)
	switch strategy {
	case StrategyCycleProgressions, StrategyProgressions:
		count := 0
		for _, p := range s.progressions {
			count += ceilDiv(p.Len(), size)
		}
		return count
	}
	return ceilDiv(len(s.frames), size)
}

// CapChunkCount raises the chunk size to ceil(Len()/n) so that the sequence
// splits into at most n linear chunks. It does nothing if n is lower than 1
// or if the chunk count already fits. The progressions based strategies
// still yield at least one chunk per progression.
func (s *Sequence) CapChunkCount(n int) {
	if n < 1 || s.ChunkCount() <= n {
		return
	}
	s.SetChunkSize(ceilDiv(len(s.frames), n))
}

// BestChunkSize returns the smallest chunk size yielding the same number of
// chunks as the current one, spreading frames as evenly as possible.
func (s *Sequence) BestChunkSize() int {
	n := len(s.frames)
	count := ceilDiv(n, s.ChunkSize())
	return ceilDiv(n, count)
}

// IntersectingChunks returns, in order, the chunks that share at least one
// frame with rhs.
func (s *Sequence) IntersectingChunks(rhs FrameSet) []*Sequence {
	y := collect(rhs)
	r, ok := span(y)
	if !ok {
		return nil
	}
	var result []*Sequence
	for _, c := range s.Chunks() {
		if a, _ := span(c.frames); !overlaps(a, r) {
			continue
		}
		for _, f := range c.frames {
			if _, found := slices.BinarySearch(y, f); found {
				result = append(result, c)
				break
			}
		}
	}
	return result
}

func overlaps(x, y interval) bool {
	_, ok := x.intersect(y)
	return ok
}

func (s *Sequence) linearChunks(size int) []*Sequence {
	n := len(s.frames)
	chunks := make([]*Sequence, 0, ceilDiv(n, size))
	for i := 0; i < n; i += size {
		chunks = append(chunks, newSequence(slices.Clone(s.frames[i:min(i+size, n)])))
	}
	return chunks
}

func (s *Sequence) cycleChunks(size int) []*Sequence {
	n := len(s.frames)
	count := ceilDiv(n, size)
	chunks := make([]*Sequence, count)
	for i := range count {
		frames := make([]int, 0, ceilDiv(n-i, count))
		for j := i; j < n; j += count {
			frames = append(frames, s.frames[j])
		}
		chunks[i] = newSequence(frames)
	}
	return chunks
}

func (s *Sequence) cycleProgressionChunks(size int) []*Sequence {
	var chunks []*Sequence
	for _, p := range s.progressions {
		count := ceilDiv(p.Len(), size)
		for i := range count {
			chunks = append(chunks, newFromProgression(p.stride(i, count)))
		}
	}
	return chunks
}

func (s *Sequence) progressionChunks(size int) []*Sequence {
	var chunks []*Sequence
	for _, p := range s.progressions {
		for _, q := range p.split(size) {
			chunks = append(chunks, newFromProgression(q))
		}
	}
	return chunks
}
