package sequence

import (
	"fmt"
	"iter"
	"regexp"
	"strconv"
)

var (
	hashRE    = regexp.MustCompile(`#+`)
	dollarRE  = regexp.MustCompile(`\$(\d*)[Ff](\d*)`)
	formatRE  = regexp.MustCompile(`\{frame(?::0(\d+)d)?\}`)
	percentRE = regexp.MustCompile(`%\((\w+)\)(0?)(\d*)d`)
)

// Expand returns one filename per frame, replacing every run of '#' in
// template with the frame zero-padded to the length of the run. A single '#'
// is replaced with the unpadded frame.
func (s *Sequence) Expand(template string) ([]string, error) {
	if !hashRE.MatchString(template) {
		return nil, fmt.Errorf("%w: %q has no # token", ErrInvalidTemplate, template)
	}
	names := make([]string, 0, len(s.frames))
	for _, f := range s.frames {
		names = append(names, hashRE.ReplaceAllStringFunc(template, func(m string) string {
			return pad(f, len(m))
		}))
	}
	return names, nil
}

// ExpandDollarF expands each template over every frame, replacing $F tokens
// and {frame} tokens. $F and $f are replaced with the unpadded frame; a width
// given before or after the letter, as in $4F or $F4, zero-pads the frame.
// Names are returned grouped by template, in template order.
func (s *Sequence) ExpandDollarF(templates ...string) ([]string, error) {
	return s.expandTemplates(templates, dollarRE, formatRE)
}

// ExpandFormat expands each template over every frame, replacing {frame}
// tokens with the unpadded frame and {frame:0Nd} tokens with the frame
// zero-padded to N characters. Names are returned grouped by template, in
// template order.
func (s *Sequence) ExpandFormat(templates ...string) ([]string, error) {
	return s.expandTemplates(templates, formatRE)
}

func (s *Sequence) expandTemplates(templates []string, tokens ...*regexp.Regexp) ([]string, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w: no template", ErrInvalidTemplate)
	}
	for _, t := range templates {
		if !matchAny(t, tokens) {
			return nil, fmt.Errorf("%w: %q has no frame token", ErrInvalidTemplate, t)
		}
	}
	names := make([]string, 0, len(templates)*len(s.frames))
	for _, t := range templates {
		for _, f := range s.frames {
			name := t
			for _, re := range tokens {
				name = re.ReplaceAllStringFunc(name, func(m string) string {
					return pad(f, tokenWidth(re, m))
				})
			}
			names = append(names, name)
		}
	}
	return names, nil
}

// tokenWidth returns the padding width carried by the token m matched by re.
func tokenWidth(re *regexp.Regexp, m string) int {
	var groups []string
	for _, g := range re.FindStringSubmatch(m)[1:] {
		if g != "" {
			groups = append(groups, g)
		}
	}
	if len(groups) == 0 {
		return 0
	}
	n, _ := strconv.Atoi(groups[0])
	return n
}

func matchAny(s string, res []*regexp.Regexp) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// pad returns f as a decimal zero-padded to width characters, the sign
// included.
func pad(f, width int) string {
	if width <= 1 {
		return strconv.Itoa(f)
	}
	return fmt.Sprintf("%0*d", width, f)
}

// A Param names a spec substituted into %(name)d tokens by Permutations.
type Param struct {
	Name string
	Spec string
}

// Permutations returns an iterator over the names obtained by substituting
// every combination of frames of params into the %(name)d tokens of template.
// Tokens accept printf flags: %(name)04d zero-pads to 4 characters and
// %(name)4d pads with spaces. Combinations follow the order of params, the
// first varying slowest.
func Permutations(template string, params ...Param) (iter.Seq[string], error) {
	index := make(map[string]int, len(params))
	seqs := make([]*Sequence, len(params))
	for i, p := range params {
		if _, ok := index[p.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate parameter %q", ErrInvalidConstruction, p.Name)
		}
		x, err := NewFromSpec(p.Spec)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		index[p.Name] = i
		seqs[i] = x
	}
	matches := percentRE.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q has no %%(name)d token", ErrInvalidTemplate, template)
	}
	for _, m := range matches {
		if _, ok := index[m[1]]; !ok {
			return nil, fmt.Errorf("%w: no parameter for token %q", ErrInvalidTemplate, m[0])
		}
	}
	return func(yield func(string) bool) {
		pos := make([]int, len(seqs))
		for {
			name := percentRE.ReplaceAllStringFunc(template, func(m string) string {
				g := percentRE.FindStringSubmatch(m)
				i := index[g[1]]
				return fmt.Sprintf("%"+g[2]+g[3]+"d", seqs[i].frames[pos[i]])
			})
			if !yield(name) {
				return
			}
			i := len(pos) - 1
			for ; i >= 0; i-- {
				pos[i]++
				if pos[i] < len(seqs[i].frames) {
					break
				}
				pos[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}, nil
}
