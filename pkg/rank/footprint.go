package rank

import "fmt"

// Footprint is the structuring element: a Rows x Cols grid of cells, the
// set cells being the neighbourhood around the centre pixel.
type Footprint struct {
	Rows, Cols int
	Cells      []bool
}

// NewFootprint copies cells (row-major, len rows*cols) into a Footprint.
func NewFootprint(rows, cols int, cells []bool) (Footprint, error) {
	if rows <= 0 || cols <= 0 || len(cells) != rows*cols {
		return Footprint{}, fmt.Errorf("%w: %dx%d with %d cells", ErrEmptyFootprint, rows, cols, len(cells))
	}
	fp := Footprint{Rows: rows, Cols: cols, Cells: make([]bool, len(cells))}
	copy(fp.Cells, cells)
	return fp, nil
}

// Rectangle returns a fully set rows x cols footprint.
func Rectangle(rows, cols int) Footprint {
	fp := Footprint{Rows: rows, Cols: cols, Cells: make([]bool, rows*cols)}
	for i := range fp.Cells {
		fp.Cells[i] = true
	}
	return fp
}

// Square returns a fully set n x n footprint.
func Square(n int) Footprint {
	return Rectangle(n, n)
}

// Disk returns a (2r+1) x (2r+1) footprint of the cells within euclidean
// distance r of the centre.
func Disk(r int) Footprint {
	return radial(r, func(dy, dx int) bool { return dy*dy+dx*dx <= r*r })
}

// Diamond returns a (2r+1) x (2r+1) footprint of the cells within city-block
// distance r of the centre.
func Diamond(r int) Footprint {
	return radial(r, func(dy, dx int) bool { return abs(dy)+abs(dx) <= r })
}

func radial(r int, in func(dy, dx int) bool) Footprint {
	if r < 0 {
		r = 0
	}
	n := 2*r + 1
	fp := Footprint{Rows: n, Cols: n, Cells: make([]bool, n*n)}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			fp.Cells[y*n+x] = in(y-r, x-r)
		}
	}
	return fp
}

// Len returns the number of set cells.
func (f Footprint) Len() int {
	n := 0
	for _, c := range f.Cells {
		if c {
			n++
		}
	}
	return n
}

// Center returns the centre cell (row, col) after applying the shifts.
func (f Footprint) Center(shiftX, shiftY int) (row, col int, err error) {
	row = f.Rows/2 + shiftY
	col = f.Cols/2 + shiftX
	if row < 0 || row >= f.Rows || col < 0 || col >= f.Cols {
		return 0, 0, fmt.Errorf("%w: centre (%d,%d) outside %dx%d footprint", ErrShiftOutOfBounds, row, col, f.Rows, f.Cols)
	}
	return row, col, nil
}

func (f Footprint) validate() error {
	if f.Rows <= 0 || f.Cols <= 0 || len(f.Cells) != f.Rows*f.Cols {
		return fmt.Errorf("%w: %dx%d with %d cells", ErrEmptyFootprint, f.Rows, f.Cols, len(f.Cells))
	}
	if f.Len() == 0 {
		return fmt.Errorf("%w: no cell set", ErrEmptyFootprint)
	}
	return nil
}

// set reports whether the cell at (row, col) exists and is set.
func (f Footprint) set(row, col int) bool {
	if row < 0 || row >= f.Rows || col < 0 || col >= f.Cols {
		return false
	}
	return f.Cells[row*f.Cols+col]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// offset is a footprint cell relative to the centre.
type offset struct{ dy, dx int }

// edges are the offsets that change when the window moves one step.
// remove is applied around the old centre, add around the new one.
type edges struct {
	add, remove []offset
}

// neighbourhood is a footprint resolved against a centre: the full offset
// list for bootstrapping a window and the edge lists for each step
// direction the slider takes.
type neighbourhood struct {
	all []offset

	east, west, south edges
}

func newNeighbourhood(f Footprint, centerRow, centerCol int) *neighbourhood {
	nb := &neighbourhood{}
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			if f.Cells[r*f.Cols+c] {
				nb.all = append(nb.all, offset{r - centerRow, c - centerCol})
			}
		}
	}
	nb.east = f.edges(centerRow, centerCol, 0, 1)
	nb.west = f.edges(centerRow, centerCol, 0, -1)
	nb.south = f.edges(centerRow, centerCol, 1, 0)
	return nb
}

// edges computes the symmetric difference between the window at centre p
// and the window at p+(sy,sx). An offset o is added when o+s is not a cell
// (the pixel was outside the old window) and removed when o-s is not a
// cell (the pixel is outside the new window).
func (f Footprint) edges(centerRow, centerCol, sy, sx int) edges {
	var e edges
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			if !f.Cells[r*f.Cols+c] {
				continue
			}
			o := offset{r - centerRow, c - centerCol}
			if !f.set(r+sy, c+sx) {
				e.add = append(e.add, o)
			}
			if !f.set(r-sy, c-sx) {
				e.remove = append(e.remove, o)
			}
		}
	}
	return e
}
