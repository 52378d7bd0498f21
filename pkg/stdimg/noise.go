package stdimg

import (
	"math/rand"
	"strings"

	"github.com/Fepozopo/pctrank/pkg/rank"
)

// AddNoise adds noise to src. typ may be "GAUSSIAN", "UNIFORM" or "IMPULSE".
// amount controls strength: stddev for gaussian and max deviation for
// uniform (both in sample units), the fraction of pixels forced to 0 or the
// depth maximum for impulse. seed allows deterministic output for tests
// (seed==0 uses a fixed seed).
func AddNoise(src *rank.Image, typ string, amount float64, seed int64) *rank.Image {
	if src == nil {
		return nil
	}
	out := CloneRank(src)
	if amount <= 0 {
		return out
	}
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))
	top := float64(src.Depth.Max())

	switch strings.ToUpper(typ) {
	case "IMPULSE", "SALTPEPPER":
		for i := range out.Pix {
			if rng.Float64() >= amount {
				continue
			}
			if rng.Intn(2) == 0 {
				out.Pix[i] = 0
			} else {
				out.Pix[i] = uint16(top)
			}
		}
	case "UNIFORM":
		for i, v := range out.Pix {
			delta := (rng.Float64()*2 - 1) * amount
			out.Pix[i] = uint16(clampFloat(float64(v)+delta+0.5, 0, top))
		}
	default:
		for i, v := range out.Pix {
			out.Pix[i] = uint16(clampFloat(float64(v)+rng.NormFloat64()*amount+0.5, 0, top))
		}
	}
	return out
}
