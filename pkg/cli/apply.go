package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/pctrank/pkg/rank"
	"github.com/Fepozopo/pctrank/pkg/stdimg"
)

func (a *app) applyCommand() *cobra.Command {
	var (
		footprint      string
		p0, p1         float64
		shiftX, shiftY int
		maskPath       string
		depth          int
	)
	cmd := &cobra.Command{
		Use:   "apply <kernel> <in> <out>",
		Short: "Apply a percentile rank kernel to an image",
		Long: "Apply one of the percentile kernels (see 'pctrank kernels') to the grey levels of <in>\n" +
			"and write the result to <out>. 16-bit PNG and TIFF inputs are filtered at 16 bits.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := rank.ParseKernel(args[0])
			if err != nil {
				return err
			}
			d, err := parseDepth(depth)
			if err != nil {
				return err
			}
			if footprint == "" {
				footprint = a.cfg.Footprint
			}
			fp, err := stdimg.ParseFootprint(footprint)
			if err != nil {
				return err
			}
			if k.SingleFraction() && cmd.Flags().Changed("p1") {
				a.log.Warn().Stringer("kernel", k).Msg("--p1 is ignored by single-percentile kernels")
			}

			src, format, err := stdimg.LoadRank(args[1], d)
			if err != nil {
				return err
			}
			a.log.Debug().Str("path", args[1]).Str("format", format).Stringer("depth", src.Depth).Msg("loaded image")

			var mask []bool
			if maskPath != "" {
				if mask, err = stdimg.LoadMask(maskPath, src.Width, src.Height); err != nil {
					return err
				}
			}

			ka := stdimg.KernelArgs{Footprint: fp, P0: p0, P1: p1, ShiftX: shiftX, ShiftY: shiftY}
			out, err := stdimg.RunKernel(src, k, ka, a.env(mask))
			if err != nil {
				return err
			}
			if err := stdimg.SaveRank(args[2], out); err != nil {
				return err
			}
			a.log.Info().Stringer("kernel", k).Str("out", args[2]).Str("info", stdimg.Info(out)).Msg("filtered")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&footprint, "footprint", "f", "", "structuring element: disk:R, diamond:R, square:N or rect:RxC (default $PCTRANK_FOOTPRINT or disk:1)")
	f.Float64Var(&p0, "p0", 0, "lower percentile in [0,1]")
	f.Float64Var(&p1, "p1", 1, "upper percentile in [0,1]")
	f.IntVar(&shiftX, "shift-x", 0, "footprint centre column offset")
	f.IntVar(&shiftY, "shift-y", 0, "footprint centre row offset")
	f.StringVarP(&maskPath, "mask", "m", "", "image whose non-zero pixels take part in the histograms")
	f.IntVar(&depth, "depth", 0, "filter at 8 or 16 bits (default: the input's depth)")
	return cmd
}

func parseDepth(d int) (rank.Depth, error) {
	switch d {
	case 0, 8, 16:
		return rank.Depth(d), nil
	}
	return 0, fmt.Errorf("%w: --depth must be 8 or 16, got %d", rank.ErrDepth, d)
}
