/*
Package sequence implements sets of frame numbers as used to split per-frame
rendering work across workers. It defines the type Sequence, with methods for
set algebra, sampling, chunking and filename expansion, the type Progression,
a constant-step run of frames, and the type Store, a collection of sequences
safe to use from multiple goroutines.

Sequences are created from integers, slices, iterators or spec strings:

	sequence := token (',' token)*
	token    := INT | INT '-' INT ('x' INT)?
	INT      := '-'? DIGIT+

Ranges are inclusive and reversed bounds are swapped, so "1-10x2,14" and
"14,9-1x2" describe the same frames. Every Sequence decomposes into the
shortest ordered list of maximal progressions, which is also its canonical
spec:

	s, _ := sequence.NewFromSpec("1-10, 14, 20-48x4")
	s.String() // "1-10,14,20-48x4"

A Sequence made of a single progression is reported by IsProgression.

Chunks are computed following one of four strategies:

	StrategyLinear            // contiguous slices of chunk size frames
	StrategyCycle             // frames dealt round-robin into chunks
	StrategyCycleProgressions // progressions dealt round-robin into progressions
	StrategyProgressions      // one chunk per progression, split at chunk size

Errors wrap ErrInvalidSpec, ErrInvalidConstruction or ErrInvalidTemplate and
can be tested with errors.Is.
*/
package sequence
