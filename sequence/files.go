package sequence

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

// A Lister returns the names of the files of dir that may hold a frame
// between prefix and extension. Names can be base names or paths.
type Lister func(dir, prefix, extension string) ([]string, error)

// NewFromFiles creates a Sequence from the frames embedded in the names
// returned by list. A name contributes a frame if its base name is made of
// prefix, a run of digits and extension. It returns an error wrapping
// ErrInvalidSpec if list returns no names or no name holds a frame.
func NewFromFiles(list Lister, dir, prefix, extension string) (*Sequence, error) {
	if list == nil {
		return nil, fmt.Errorf("%w: nil lister", ErrInvalidConstruction)
	}
	names, err := list(dir, prefix, extension)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no files in %s", ErrInvalidSpec, dir)
	}
	re, err := regexp.Compile("^" + regexp.QuoteMeta(prefix) + `(\d+)` + regexp.QuoteMeta(extension) + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	var frames []int
	for _, name := range names {
		m := re.FindStringSubmatch(filepath.Base(name))
		if m == nil {
			continue
		}
		f, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSpec, name, err)
		}
		frames = append(frames, f)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no file in %s matches %s<frame>%s", ErrInvalidSpec, dir, prefix, extension)
	}
	return NewFromFrames(frames)
}
