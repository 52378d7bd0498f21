package rank

import "errors"

// Contract violations reported by Apply before any pixel is processed.
var (
	ErrPercentileRange  = errors.New("rank: percentile fractions must satisfy 0 <= p0 <= p1 <= 1")
	ErrShiftOutOfBounds = errors.New("rank: shift moves the centre outside the footprint")
	ErrMaskShape        = errors.New("rank: mask shape does not match image")
	ErrImageShape       = errors.New("rank: invalid image")
	ErrOutputShape      = errors.New("rank: output shape or depth does not match image")
	ErrDepth            = errors.New("rank: unsupported image depth")
	ErrMaxBin           = errors.New("rank: invalid bin count")
	ErrEmptyFootprint   = errors.New("rank: empty footprint")
	ErrUnknownKernel    = errors.New("rank: unknown kernel")
)
