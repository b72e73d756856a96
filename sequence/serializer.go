package sequence

import (
	"strconv"
	"strings"
)

// Separators of the canonical spec form.
const (
	serializerRangeSep = "-"
	serializerStepSep  = "x"
	serializerTokenSep = ","
)

// String returns the canonical spec of the sequence, such as "1-10,14,20-48x4".
func (s *Sequence) String() string {
	if s == nil {
		return ""
	}
	return s.To(serializerRangeSep, serializerStepSep, serializerTokenSep)
}

// To returns the sequence as a spec using rangeSep between the bounds of a
// progression, stepSep before its step and tokenSep between progressions.
// The step is omitted for progressions with a step of 1. As a special case, if
// stepSep is an empty string, stepped progressions are written frame by frame
// separated by tokenSep.
func (s *Sequence) To(rangeSep, stepSep, tokenSep string) string {
	var b strings.Builder
	for i, p := range s.progressions {
		if i > 0 {
			b.WriteString(tokenSep)
		}
		p.appendTo(&b, rangeSep, stepSep, tokenSep)
	}
	return b.String()
}

// GoString returns a Go expression creating the sequence.
func (s *Sequence) GoString() string {
	return "sequence.MustNew(" + strconv.Quote(s.String()) + ")"
}

// MarshalText implements the encoding.TextMarshaler interface using the
// canonical spec.
func (s *Sequence) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The chunk
// settings of s are kept.
func (s *Sequence) UnmarshalText(text []byte) error {
	frames, err := parseSpec(string(text))
	if err != nil {
		return err
	}
	x := newSequence(frames)
	s.frames, s.progressions = x.frames, x.progressions
	return nil
}
