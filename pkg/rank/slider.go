package rank

// slider walks a band of rows in serpentine order (east on even rows of the
// band, west on odd rows, one step south between rows), keeping hist equal
// to the included pixels of the current window. The window is built from
// scratch only at the first pixel of the band.
type slider struct {
	src    *Image
	out    *Image
	mask   []bool
	nb     *neighbourhood
	hist   *Histogram
	kernel kernelFunc
	p0, p1 float64
	maxBin int
}

// included reports whether the pixel at (y, x) contributes to the histogram.
func (s *slider) included(y, x int) bool {
	if y < 0 || y >= s.src.Height || x < 0 || x >= s.src.Width {
		return false
	}
	return s.mask == nil || s.mask[y*s.src.Width+x]
}

func (s *slider) add(cy, cx int, offs []offset) {
	for _, o := range offs {
		y, x := cy+o.dy, cx+o.dx
		if s.included(y, x) {
			s.hist.Add(int(s.src.Pix[y*s.src.Width+x]))
		}
	}
}

func (s *slider) remove(cy, cx int, offs []offset) {
	for _, o := range offs {
		y, x := cy+o.dy, cx+o.dx
		if s.included(y, x) {
			s.hist.Remove(int(s.src.Pix[y*s.src.Width+x]))
		}
	}
}

// step moves the window from (cy, cx) to (cy+sy, cx+sx).
func (s *slider) step(cy, cx, sy, sx int, e edges) {
	s.remove(cy, cx, e.remove)
	s.add(cy+sy, cx+sx, e.add)
}

// emit writes the statistic for the window centred on (y, x).
func (s *slider) emit(y, x int) {
	i := y*s.src.Width + x
	b, ok := Locate(s.hist, s.p0, s.p1)
	if !ok {
		s.out.Pix[i] = 0
		return
	}
	v := s.kernel(s.hist, b, int(s.src.Pix[i]), s.maxBin)
	s.out.Pix[i] = uint16(clampInt(v, 0, s.out.Depth.Max()))
}

// run filters rows [y0, y1).
func (s *slider) run(y0, y1 int) {
	if y0 >= y1 {
		return
	}
	w := s.src.Width
	s.hist.Reset()
	s.add(y0, 0, s.nb.all)

	x := 0
	for y := y0; y < y1; y++ {
		if y > y0 {
			s.step(y-1, x, 1, 0, s.nb.south)
		}
		if (y-y0)%2 == 0 {
			for {
				s.emit(y, x)
				if x == w-1 {
					break
				}
				s.step(y, x, 0, 1, s.nb.east)
				x++
			}
		} else {
			for {
				s.emit(y, x)
				if x == 0 {
					break
				}
				s.step(y, x, 0, -1, s.nb.west)
				x--
			}
		}
	}
}
