package archive

// Bound is a length-limited region of an Archive.
// While a bound is active no read may cross its end.
type Bound struct {
	archive       *Archive
	end           int
	previousLimit int
	popped        bool
}

func (bound *Bound) End() int {
	return bound.end
}

// PushBound limits reads to the next size bytes until the returned bound is popped.
func (ar *Archive) PushBound(size int) (*Bound, error) {
	if size < 0 {
		return nil, NewInvalidLengthError("bound", int64(size))
	}
	if size > ar.Remaining() {
		return nil, NewBoundOutOfRangeError(ar.pos, size, ar.limit)
	}
	bound := &Bound{
		archive:       ar,
		end:           ar.pos + size,
		previousLimit: ar.limit,
	}
	ar.bounds = append(ar.bounds, bound)
	ar.limit = bound.end
	return bound, nil
}

// Pop moves the cursor to the end of the bound and restores the enclosing limit.
// Only the innermost bound may be popped.
func (bound *Bound) Pop() error {
	ar := bound.archive
	if bound.popped || len(ar.bounds) == 0 || ar.bounds[len(ar.bounds)-1] != bound {
		return NewUnbalancedBoundError()
	}
	ar.bounds = ar.bounds[:len(ar.bounds)-1]
	ar.limit = bound.previousLimit
	ar.pos = bound.end
	bound.popped = true
	return nil
}

// Depth is the number of bounds currently pushed.
func (ar *Archive) Depth() int {
	return len(ar.bounds)
}

// WithinBound runs fn with reads limited to the next size bytes.
// The bound is popped even when fn fails, so the cursor always ends up at the end of the region.
func (ar *Archive) WithinBound(size int, fn func() error) error {
	bound, err := ar.PushBound(size)
	if err != nil {
		return err
	}
	fnErr := fn()
	popErr := bound.Pop()
	if fnErr != nil {
		return fnErr
	}
	return popErr
}
