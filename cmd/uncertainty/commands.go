// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/uncertainty/uncertainty"
)

// source selects where a command reads its table from.
type source struct {
	file   string
	format string
}

func (s *source) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "read this table file instead of the model directory")
	cmd.Flags().StringVar(&s.format, "from", "", "encoding of --file: text, binary or buffer (default: by extension)")
}

// load reads the table named by --file, or the canonical table for the
// configured phase and attribute from the model directory.
func (s *source) load(a *app) (*uncertainty.Grid, error) {
	if s.file != "" {
		return readGrid(s.file, s.format, a.phase, a.attribute, a.options()...)
	}
	g, err := uncertainty.OpenDir(a.cfg.ModelDir, a.phase, a.attribute, a.options()...)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("no %s table for phase %s in %s", a.attribute, a.phase, a.cfg.ModelDir)
	}

	return g, nil
}

func newQueryCmd(a *app) *cobra.Command {
	var (
		src       source
		distances []float64
		depths    []float64
		variance  bool
	)
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Interpolate a table at distance/depth points",
		Long: `Interpolate a table at one or more (distance, depth) points. Distances are
given in degrees and depths in km; results are printed in file units, one
line per point.

Example:
  uncertainty query --phase Sn --attribute SH --distance 12.5 --depth 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(depths) == 1 && len(distances) > 1 {
				for len(depths) < len(distances) {
					depths = append(depths, depths[0])
				}
			}
			g, err := src.load(a)
			if err != nil {
				return err
			}

			q := uncertainty.QuantityValue
			if variance {
				q = uncertainty.QuantityVariance
			}
			scale := a.attribute.ToFile()
			rads := make([]float64, len(distances))
			for i, d := range distances {
				rads[i] = d * math.Pi / 180
			}
			out, err := g.EvaluateAll(cmd.Context(), q, rads, depths)
			if err != nil {
				return err
			}
			a.log.Debug("query answered", zap.Stringer("quantity", q), zap.Int("points", len(out)))

			w := cmd.OutOrStdout()
			for i, v := range out {
				fmt.Fprintf(w, "%g %g %.*f\n", distances[i], depths[i], a.attribute.Precision(), v*scale)
			}

			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().Float64SliceVar(&distances, "distance", nil, "epicentral distance in degrees (repeatable)")
	cmd.Flags().Float64SliceVar(&depths, "depth", []float64{0}, "source depth in km (repeatable, or one for all distances)")
	cmd.Flags().BoolVar(&variance, "variance", false, "report the variance instead of the value")
	_ = cmd.MarkFlagRequired("distance")

	return cmd
}

// gridView is the structured (JSON/YAML) view of a grid, values in file units.
type gridView struct {
	Phase     string      `json:"phase" yaml:"phase"`
	Attribute string      `json:"attribute" yaml:"attribute"`
	Units     string      `json:"units" yaml:"units"`
	Source    string      `json:"source" yaml:"source"`
	Distances []float64   `json:"distances" yaml:"distances,flow"`
	Depths    []float64   `json:"depths" yaml:"depths,flow"`
	Values    [][]float64 `json:"values" yaml:"values"`
}

func toView(g *uncertainty.Grid) gridView {
	a := g.Attribute()
	v := gridView{
		Phase:     g.Phase().String(),
		Attribute: a.String(),
		Units:     a.Unit(),
		Source:    g.Source(),
		Distances: g.Distances(),
		Depths:    g.Depths(),
		Values:    make([][]float64, g.NumRows()),
	}
	if v.Depths == nil {
		v.Depths = []float64{}
	}
	for i := range v.Values {
		row, _ := g.Row(i)
		for j := range row {
			row[j] *= a.ToFile()
		}
		v.Values[i] = row
	}

	return v
}

func newShowCmd(a *app) *cobra.Command {
	var (
		src    source
		format string
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := src.load(a)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch format {
			case "table":
				_, err = fmt.Fprint(w, g.TableString())
			case "file":
				_, err = fmt.Fprint(w, g.FileString())
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				err = enc.Encode(toView(g))
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err = enc.Encode(toView(g)); err == nil {
					err = enc.Close()
				}
			default:
				return fmt.Errorf("unknown output format %q: want table, file, json or yaml", format)
			}

			return err
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, file, json or yaml")

	return cmd
}

func newConvertCmd(a *app) *cobra.Command {
	var in, out, from, to string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Re-encode a table file",
		Long: `Re-encode a table between the text, binary and buffer encodings. Paths
ending in .gz are compressed or decompressed on the fly.

Example:
  uncertainty convert --in Uncertainty_Pn_TT.txt --out Pn_TT.bin.gz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGrid(in, from, a.phase, a.attribute, a.options()...)
			if err != nil {
				return err
			}
			if err := writeGrid(g, out, to); err != nil {
				return err
			}
			a.log.Info("table converted", zap.String("in", in), zap.String("out", out))

			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input table file")
	cmd.Flags().StringVar(&out, "out", "", "output table file")
	cmd.Flags().StringVar(&from, "from", "", "input encoding (default: by extension)")
	cmd.Flags().StringVar(&to, "to", "", "output encoding (default: by extension)")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		src source
		dir string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a table under its canonical name into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := src.load(a)
			if err != nil {
				return err
			}
			path, err := g.WriteDir(dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Clean(path))

			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&dir, "out", "", "destination directory")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
