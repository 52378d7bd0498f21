package stdimg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Fepozopo/pctrank/pkg/rank"
)

// slowBins is the bin count above which a 16-bit run is reported as slow:
// every located percentile scans the whole histogram.
const slowBins = 1 << 12

// Env carries the per-run settings that are not command arguments.
type Env struct {
	Mask          []bool
	Workers       int
	MaxBinCeiling int
	Logger        *zerolog.Logger
}

func (e Env) log() *zerolog.Logger {
	if e.Logger == nil {
		l := zerolog.Nop()
		return &l
	}
	return e.Logger
}

// KernelArgs are the parsed arguments shared by every kernel command.
type KernelArgs struct {
	Footprint      rank.Footprint
	P0, P1         float64
	ShiftX, ShiftY int
}

// ParseKernelArgs parses [footprint] [p0] [p1] [shiftX] [shiftY]; p1 is
// omitted for single-fraction kernels. Empty strings take the defaults.
func ParseKernelArgs(k rank.Kernel, args []string) (KernelArgs, error) {
	ka := KernelArgs{Footprint: rank.Disk(1), P0: 0, P1: 1}
	arg := func(i int) string {
		if i < len(args) {
			return strings.TrimSpace(args[i])
		}
		return ""
	}
	i := 0
	if s := arg(i); s != "" {
		fp, err := ParseFootprint(s)
		if err != nil {
			return ka, err
		}
		ka.Footprint = fp
	}
	i++
	if s := arg(i); s != "" {
		v, err := ParseFraction(s)
		if err != nil {
			return ka, fmt.Errorf("invalid p0: %w", err)
		}
		ka.P0 = v
	}
	i++
	if !k.SingleFraction() {
		if s := arg(i); s != "" {
			v, err := ParseFraction(s)
			if err != nil {
				return ka, fmt.Errorf("invalid p1: %w", err)
			}
			ka.P1 = v
		}
		i++
	}
	if s := arg(i); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return ka, fmt.Errorf("invalid shiftX: %w", err)
		}
		ka.ShiftX = v
	}
	i++
	if s := arg(i); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return ka, fmt.Errorf("invalid shiftY: %w", err)
		}
		ka.ShiftY = v
	}
	return ka, nil
}

// ParseFraction accepts "0.25" or "25%" and returns the fraction.
func ParseFraction(s string) (float64, error) {
	s = strings.TrimSpace(s)
	raw, percent := strings.CutSuffix(s, "%")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid fraction %q", s)
	}
	if percent {
		v /= 100
	}
	return v, nil
}

// RunKernel resolves max_bin for src and applies kernel k.
func RunKernel(src *rank.Image, k rank.Kernel, ka KernelArgs, env Env) (*rank.Image, error) {
	log := env.log()
	maxBin, err := rank.ResolveMaxBin(src, env.MaxBinCeiling)
	if err != nil {
		return nil, err
	}
	if maxBin > slowBins {
		log.Warn().Int("max_bin", maxBin).Msg("large 16-bit histogram, filtering will be slow")
	}
	opts := rank.Options{
		Mask:    env.Mask,
		ShiftX:  ka.ShiftX,
		ShiftY:  ka.ShiftY,
		P0:      ka.P0,
		P1:      ka.P1,
		MaxBin:  maxBin,
		Workers: env.Workers,
	}
	log.Debug().
		Stringer("kernel", k).
		Stringer("depth", src.Depth).
		Int("max_bin", maxBin).
		Int("footprint_rows", ka.Footprint.Rows).
		Int("footprint_cols", ka.Footprint.Cols).
		Int("footprint_cells", ka.Footprint.Len()).
		Float64("p0", ka.P0).
		Float64("p1", ka.P1).
		Int("workers", env.Workers).
		Msg("applying rank filter")
	out, err := rank.Filter(k, src, ka.Footprint, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", k, err)
	}
	return out, nil
}

// ApplyCommand applies a registry command to src and returns a new image.
// args are positional, as listed in Commands.
func ApplyCommand(src *rank.Image, commandName string, args []string, env Env) (*rank.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	if k, ok := kernelCommands[commandName]; ok {
		ka, err := ParseKernelArgs(k, args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", commandName, err)
		}
		return RunKernel(src, k, ka, env)
	}

	switch commandName {
	case "localThreshold":
		// localThreshold [footprint] [p0] [p1] [offset] [invert]
		ka, err := ParseKernelArgs(rank.KernelMean, args[:min(len(args), 3)])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", commandName, err)
		}
		if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
			ka.Footprint = rank.Square(15)
		}
		offset := 0.0
		if len(args) >= 4 && args[3] != "" {
			v, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid offset: %w", err)
			}
			offset = v
		}
		invert := false
		if len(args) >= 5 && args[4] != "" {
			v, err := strconv.ParseBool(args[4])
			if err != nil {
				return nil, fmt.Errorf("invalid invert: %w", err)
			}
			invert = v
		}
		return LocalThreshold(src, ka.Footprint, ka.P0, ka.P1, offset, invert, env.Workers)

	case "median":
		// median requires 1 arg: radius
		if len(args) != 1 {
			return nil, fmt.Errorf("median requires 1 arg: radius")
		}
		radius, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid radius: %w", err)
		}
		return MedianFilter(src, radius, env.Workers)

	case "despeckle":
		// despeckle [radius]
		radius := 1
		if len(args) >= 1 && args[0] != "" {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("invalid radius: %w", err)
			}
			radius = v
		}
		return Despeckle(src, radius, env.Workers)

	case "noise":
		// noise [type] [amount] [seed]
		typ := "IMPULSE"
		amt := 0.05
		seed := int64(0)
		if len(args) >= 1 && args[0] != "" {
			typ = args[0]
		}
		if len(args) >= 2 && args[1] != "" {
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid amount: %w", err)
			}
			amt = v
		}
		if len(args) >= 3 && args[2] != "" {
			v, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid seed: %w", err)
			}
			seed = v
		}
		return AddNoise(src, typ, amt, seed), nil

	default:
		return nil, fmt.Errorf("unsupported command: %s", commandName)
	}
}
