package stdimg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Fepozopo/pctrank/pkg/rank"
)

// ParseFootprint parses a structuring element description:
//
//	disk:R      cells within euclidean distance R
//	diamond:R   cells within city-block distance R
//	square:N    N x N block
//	rect:RxC    R rows by C columns
func ParseFootprint(spec string) (rank.Footprint, error) {
	kind, arg, ok := strings.Cut(strings.ToLower(strings.TrimSpace(spec)), ":")
	if !ok || arg == "" {
		return rank.Footprint{}, fmt.Errorf("invalid footprint %q: expected kind:size", spec)
	}
	switch kind {
	case "disk", "diamond", "square":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return rank.Footprint{}, fmt.Errorf("invalid footprint size %q: %w", arg, err)
		}
		switch kind {
		case "disk":
			if n < 0 {
				return rank.Footprint{}, fmt.Errorf("disk radius must be >= 0, got %d", n)
			}
			return rank.Disk(n), nil
		case "diamond":
			if n < 0 {
				return rank.Footprint{}, fmt.Errorf("diamond radius must be >= 0, got %d", n)
			}
			return rank.Diamond(n), nil
		default:
			if n <= 0 {
				return rank.Footprint{}, fmt.Errorf("square size must be > 0, got %d", n)
			}
			return rank.Square(n), nil
		}
	case "rect", "rectangle":
		rs, cs, ok := strings.Cut(arg, "x")
		if !ok {
			return rank.Footprint{}, fmt.Errorf("invalid rectangle %q: expected RxC", arg)
		}
		r, err := strconv.Atoi(rs)
		if err != nil {
			return rank.Footprint{}, fmt.Errorf("invalid rectangle rows %q: %w", rs, err)
		}
		c, err := strconv.Atoi(cs)
		if err != nil {
			return rank.Footprint{}, fmt.Errorf("invalid rectangle cols %q: %w", cs, err)
		}
		if r <= 0 || c <= 0 {
			return rank.Footprint{}, fmt.Errorf("rectangle sides must be > 0, got %dx%d", r, c)
		}
		return rank.Rectangle(r, c), nil
	}
	return rank.Footprint{}, fmt.Errorf("unknown footprint kind %q", kind)
}
