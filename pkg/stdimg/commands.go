// Package stdimg: authoritative registry of rank-filter commands.
//
// This file mirrors the commands implemented in ApplyCommand in
// pkg/stdimg/engine.go. Keep this list up-to-date when you add or
// modify commands so callers (CLI, docs, help text) can read a single
// source of truth.

package stdimg

import "github.com/Fepozopo/pctrank/pkg/rank"

// ArgSpec describes a single argument for a command. Fields are textual
// and intended for help/validation UI; Min/Max, when set, are enforced by
// the CLI argument normaliser.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float", "bool", "string", "percent", "enum", "footprint"
	Required    bool
	Default     string // textual default (for help only)
	Description string
	Min, Max    *float64
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
}

func bound(v float64) *float64 { return &v }

func footprintArg() ArgSpec {
	return ArgSpec{Name: "footprint", Type: "footprint", Default: "disk:1", Description: "disk:R, diamond:R, square:N or rect:RxC"}
}

func fractionArg(name, def, desc string) ArgSpec {
	return ArgSpec{Name: name, Type: "percent", Default: def, Description: desc, Min: bound(0), Max: bound(1)}
}

func shiftArg(name string) ArgSpec {
	return ArgSpec{Name: name, Type: "int", Default: "0", Description: "offset added to the footprint centre"}
}

func kernelCommand(k rank.Kernel, name, desc string) CommandSpec {
	args := []ArgSpec{footprintArg(), fractionArg("p0", "0", "lower percentile (0..1 or N%)")}
	usage := name + " [footprint] [p0]"
	if !k.SingleFraction() {
		args = append(args, fractionArg("p1", "1", "upper percentile (0..1 or N%)"))
		usage += " [p1]"
	}
	args = append(args, shiftArg("shiftX"), shiftArg("shiftY"))
	usage += " [shiftX] [shiftY]"
	return CommandSpec{Name: name, Args: args, Usage: usage, Description: desc}
}

// kernelCommands maps command names to the rank kernel they run.
var kernelCommands = map[string]rank.Kernel{
	"autolevel":       rank.KernelAutolevel,
	"gradient":        rank.KernelGradient,
	"mean":            rank.KernelMean,
	"subtractMean":    rank.KernelSubtractMean,
	"enhanceContrast": rank.KernelEnhanceContrast,
	"percentile":      rank.KernelPercentile,
	"pop":             rank.KernelPop,
	"sum":             rank.KernelSum,
	"threshold":       rank.KernelThreshold,
}

// KernelFor returns the rank kernel behind a kernel command.
func KernelFor(name string) (rank.Kernel, bool) {
	k, ok := kernelCommands[name]
	return k, ok
}

// Commands is the authoritative list of commands implemented by the engine.
// Keep this synchronized with ApplyCommand in pkg/stdimg/engine.go.
var Commands = []CommandSpec{
	kernelCommand(rank.KernelAutolevel, "autolevel", "Stretch each pixel between the local p0 and p1 levels to the full range."),
	kernelCommand(rank.KernelGradient, "gradient", "Local span between the p0 and p1 levels."),
	kernelCommand(rank.KernelMean, "mean", "Local mean of the levels between p0 and p1."),
	kernelCommand(rank.KernelSubtractMean, "subtractMean", "Pixel minus the clipped local mean, offset to mid-range."),
	kernelCommand(rank.KernelEnhanceContrast, "enhanceContrast", "Replace each pixel by the nearer of the local p0 and p1 levels."),
	kernelCommand(rank.KernelPercentile, "percentile", "Local p0 percentile level."),
	kernelCommand(rank.KernelPop, "pop", "Number of neighbourhood pixels between p0 and p1."),
	kernelCommand(rank.KernelSum, "sum", "Sum of the levels between p0 and p1, saturated to the image depth."),
	kernelCommand(rank.KernelThreshold, "threshold", "Binary: max where the pixel exceeds the local p0 level, else 0."),
	{
		Name: "localThreshold",
		Args: []ArgSpec{
			{Name: "footprint", Type: "footprint", Default: "square:15", Description: "window for the local mean"},
			fractionArg("p0", "0", "lower percentile of the mean (0..1 or N%)"),
			fractionArg("p1", "1", "upper percentile of the mean (0..1 or N%)"),
			{Name: "offset", Type: "float", Default: "0", Description: "subtracted from the local mean"},
			{Name: "invert", Type: "bool", Default: "false", Description: "mark pixels at or below the threshold instead"},
		},
		Usage:       "localThreshold [footprint] [p0] [p1] [offset] [invert]",
		Description: "Binary: max where the pixel exceeds the clipped local mean minus offset, else 0.",
	},
	{
		Name:        "median",
		Args:        []ArgSpec{{Name: "radius", Type: "int", Required: true, Description: "disk radius", Min: bound(0)}},
		Usage:       "median <radius>",
		Description: "Median filter (sliding-window histogram, p0=0.5 on a disk).",
	},
	{
		Name:        "despeckle",
		Args:        []ArgSpec{{Name: "radius", Type: "int", Default: "1", Description: "optional radius", Min: bound(0)}},
		Usage:       "despeckle [radius]",
		Description: "Despeckle (wrapper around median filter).",
	},
	{
		Name: "noise",
		Args: []ArgSpec{
			{Name: "noiseType", Type: "enum", Default: "IMPULSE", Description: "GAUSSIAN|UNIFORM|IMPULSE"},
			{Name: "amount", Type: "float", Default: "0.05", Description: "sigma, deviation or impulse fraction", Min: bound(0)},
			{Name: "seed", Type: "int", Default: "0", Description: "random seed"},
		},
		Usage:       "noise [type] [amount] [seed]",
		Description: "Add synthetic noise (useful to compare clipped and unclipped filters).",
	},
}

// LookupCommand returns the spec for name.
func LookupCommand(name string) (CommandSpec, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandSpec{}, false
}
