package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/pctrank/pkg/stdimg"
)

func (a *app) runCommand() *cobra.Command {
	var maskPath string
	var depth int
	cmd := &cobra.Command{
		Use:   "run <command> <in> <out> [args...]",
		Short: "Run a registry command with positional arguments",
		Long: "Run any command listed by 'pctrank kernels' with its positional arguments, validated\n" +
			"against the registry. Use -- before negative shifts, e.g. run mean in.png out.png -- disk:2 0 1 -1.",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			store := NewMetaStoreFromStdimg(stdimg.Commands)
			norm, err := NormalizeArgsFromStd(store, name, args[3:])
			if err != nil {
				return err
			}
			if _, ok := stdimg.KernelFor(name); ok && norm[0] == "" {
				norm[0] = a.cfg.Footprint
			}
			d, err := parseDepth(depth)
			if err != nil {
				return err
			}
			src, _, err := stdimg.LoadRank(args[1], d)
			if err != nil {
				return err
			}
			var mask []bool
			if maskPath != "" {
				if mask, err = stdimg.LoadMask(maskPath, src.Width, src.Height); err != nil {
					return err
				}
			}
			a.log.Debug().Str("command", name).Strs("args", norm).Msg("running command")
			out, err := stdimg.ApplyCommand(src, name, norm, a.env(mask))
			if err != nil {
				return err
			}
			if err := stdimg.SaveRank(args[2], out); err != nil {
				return err
			}
			a.log.Info().Str("command", name).Str("out", args[2]).Msg("done")
			return nil
		},
	}
	cmd.Flags().StringVarP(&maskPath, "mask", "m", "", "image whose non-zero pixels take part in the histograms")
	cmd.Flags().IntVar(&depth, "depth", 0, "filter at 8 or 16 bits (default: the input's depth)")
	return cmd
}

func (a *app) kernelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kernels [command]",
		Short: "List the registry commands and their arguments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := NewMetaStoreFromStdimg(stdimg.Commands)
			w := cmd.OutOrStdout()
			if len(args) == 1 {
				tip, rules, err := store.GetCommandHelp(args[0])
				if err != nil {
					return err
				}
				c, _ := stdimg.LookupCommand(args[0])
				fmt.Fprintf(w, "%s\n\n%s\n", c.Usage, tip)
				names := make([]string, 0, len(rules))
				for n := range rules {
					names = append(names, n)
				}
				sort.Strings(names)
				for _, n := range names {
					r := rules[n]
					line := fmt.Sprintf("  %s: %s", n, r.Type)
					if r.Min != nil {
						line += fmt.Sprintf(" min=%v", *r.Min)
					}
					if r.Max != nil {
						line += fmt.Sprintf(" max=%v", *r.Max)
					}
					if r.Unit != "" {
						line += " (" + r.Unit + ")"
					}
					if len(r.EnumOptions) > 0 {
						line += " one of " + strings.Join(r.EnumOptions, "|")
					}
					if r.Pattern != "" {
						line += " as " + r.Pattern
					}
					fmt.Fprintln(w, line)
				}
				return nil
			}
			for _, c := range stdimg.Commands {
				fmt.Fprintf(w, "%-16s %s\n", c.Name, c.Description)
			}
			return nil
		},
	}
}

func (a *app) histogramCommand() *cobra.Command {
	var width, height int
	var p0, p1 float64
	var fontPath string
	var fontSize float64
	var noLabels bool
	cmd := &cobra.Command{
		Use:   "histogram <in> <out.png>",
		Short: "Render the global grey-level histogram of an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := stdimg.LoadRank(args[0], 0)
			if err != nil {
				return err
			}
			bins := 0
			if src.Depth.Max() > 0xff {
				// match the bin count the filters would use
				bins = src.MaxValue() + 1
			}
			hist := stdimg.ComputeHistogram(src, bins)
			img := stdimg.RenderHistogramImage(hist, width, height, p0, p1)
			if !noLabels {
				face, err := stdimg.LoadFace(fontPath, fontSize)
				if err != nil {
					a.log.Warn().Err(err).Msg("falling back to the built-in font")
					face, _ = stdimg.LoadFace("", 0)
				}
				stdimg.LabelHistogram(img, hist, p0, p1, face)
			}
			if err := stdimg.SaveImage(args[1], img); err != nil {
				return err
			}
			a.log.Info().
				Int("bins", len(hist)).
				Int("p0_level", stdimg.Quantile(hist, p0)).
				Int("p1_level", stdimg.Quantile(hist, p1)).
				Str("out", args[1]).
				Msg("histogram written")
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&width, "width", 512, "output width")
	f.IntVar(&height, "height", 120, "output height")
	f.Float64Var(&p0, "p0", -1, "mark this percentile (negative disables)")
	f.Float64Var(&p1, "p1", -1, "mark this percentile (negative disables)")
	f.StringVar(&fontPath, "font", "", "TTF/OTF font for the marker labels (default: built-in 7x13)")
	f.Float64Var(&fontSize, "font-size", 12, "label size in points when --font is set")
	f.BoolVar(&noLabels, "no-labels", false, "draw markers without level labels")
	return cmd
}
