package sequence

// interval represents a closed interval of frames.
type interval struct {
	start int
	end   int
}

// intersect returns the intersection with the closed interval y. If no
// intersection is found, the second value returned by the method
// is false.
func (x interval) intersect(y interval) (interval, bool) {
	if x.start <= y.start {
		if x.end >= y.end {
			return y, true
		}
		if x.end >= y.start {
			return interval{start: y.start, end: x.end}, true
		}
	} else if x.start <= y.end {
		if x.end >= y.end {
			return interval{start: x.start, end: y.end}, true
		}
		return x, true
	}
	return interval{}, false
}

// span returns the interval covered by sorted frames. The second value is
// false if frames is empty.
func span(frames []int) (interval, bool) {
	if len(frames) == 0 {
		return interval{}, false
	}
	return interval{start: frames[0], end: frames[len(frames)-1]}, true
}
