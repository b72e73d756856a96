package sequence

import (
	"fmt"
	"iter"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// tokenRE matches a single spec token: N, S-E or S-ExSTEP.
var tokenRE = regexp.MustCompile(`^(-?\d+)(?:-(-?\d+)(?:x(\d+))?)?$`)

// parseSpec returns the sorted, duplicate-free frames described by spec.
func parseSpec(spec string) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("%w: empty spec", ErrInvalidSpec)
	}
	var frames []int
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		m := tokenRE.FindStringSubmatch(token)
		if m == nil {
			return nil, fmt.Errorf("%w: cannot parse token %q", ErrInvalidSpec, token)
		}
		start, err := atoi(m[1])
		if err != nil {
			return nil, err
		}
		end, step := start, 1
		if m[2] != "" {
			if end, err = atoi(m[2]); err != nil {
				return nil, err
			}
		}
		if m[3] != "" {
			if step, err = atoi(m[3]); err != nil {
				return nil, err
			}
		}
		r, err := rangeFrames(start, end, step)
		if err != nil {
			return nil, err
		}
		frames = append(frames, r...)
	}
	return normalize(frames), nil
}

// atoi wraps strconv.Atoi so that out of range values report as invalid specs.
func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	return n, nil
}

// MaxRangeLen is the largest number of frames a single range may expand to.
const MaxRangeLen = 1 << 24

// rangeFrames returns the frames from start to end inclusive, every step
// frames. Reversed bounds are swapped.
func rangeFrames(start, end, step int) ([]int, error) {
	if step < 1 {
		return nil, fmt.Errorf("%w: step must be positive, got %d", ErrInvalidSpec, step)
	}
	if start > end {
		start, end = end, start
	}
	// end-start computed on uint64 cannot wrap once start <= end.
	k := (uint64(end) - uint64(start)) / uint64(step)
	if k >= MaxRangeLen {
		return nil, fmt.Errorf("%w: range too large", ErrInvalidSpec)
	}
	n := int(k) + 1
	frames := make([]int, n)
	for i := range n {
		frames[i] = start + i*step
	}
	return frames, nil
}

// normalize returns a sorted copy of frames without duplicates.
func normalize(frames []int) []int {
	x := slices.Clone(frames)
	slices.Sort(x)
	return slices.Compact(x)
}

// resolve converts constructor arguments to canonical frames.
func resolve(args ...any) ([]int, error) {
	switch len(args) {
	case 0:
		return nil, fmt.Errorf("%w: no arguments", ErrInvalidConstruction)
	case 1:
		return resolveOne(args[0])
	case 2, 3:
		ints := make([]int, len(args))
		for i, v := range args {
			n, ok := toInt(v)
			if !ok {
				return nil, fmt.Errorf("%w: argument %d has type %T, want int", ErrInvalidConstruction, i, v)
			}
			ints[i] = n
		}
		step := 1
		if len(ints) == 3 {
			step = ints[2]
		}
		return rangeFrames(ints[0], ints[1], step)
	}
	return nil, fmt.Errorf("%w: got %d arguments, want 1 to 3", ErrInvalidConstruction, len(args))
}

func resolveOne(v any) ([]int, error) {
	if n, ok := toInt(v); ok {
		return []int{n}, nil
	}
	switch x := v.(type) {
	case string:
		return parseSpec(x)
	case []int:
		return normalize(x), nil
	case FrameSet:
		if s, ok := x.(*Sequence); ok && s == nil {
			break
		}
		return normalize(slices.Collect(x.All())), nil
	case iter.Seq[int]:
		return normalize(slices.Collect(x)), nil
	}
	return nil, fmt.Errorf("%w: unsupported argument type %T", ErrInvalidConstruction, v)
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int8:
		return int(x), true
	case int16:
		return int(x), true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case uint8:
		return int(x), true
	case uint16:
		return int(x), true
	case uint32:
		return int(x), true
	}
	return 0, false
}
