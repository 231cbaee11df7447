package main

import (
	"fmt"
	"strconv"

	"github.com/philipparndt/godefects/pkg/geometry"
	"github.com/philipparndt/godefects/pkg/samples"
	"github.com/spf13/cobra"
)

var nearestCmd = &cobra.Command{
	Use:   "nearest [file] [x] [y] [z]",
	Short: "Find the sample point closest to a coordinate",
	Args:  cobra.ExactArgs(4),
	RunE:  runNearest,
}

func init() {
	rootCmd.AddCommand(nearestCmd)
}

func runNearest(cmd *cobra.Command, args []string) error {
	var coords [3]float64
	for i, arg := range args[1:] {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", arg, err)
		}
		coords[i] = v
	}
	query := geometry.NewVector3(coords[0], coords[1], coords[2])

	imp, err := samples.ParseFile(args[0])
	if err != nil {
		return err
	}
	store, err := samples.NewStore(imp.Faces)
	if err != nil {
		return err
	}

	hit, ok := samples.NewIndex(store).Nearest(query)
	if !ok {
		return fmt.Errorf("%s has no sample points", args[0])
	}
	face, _ := store.Face(hit.Face)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, face.Title())
	fmt.Fprintf(out, "  %s\n", samples.PointLabel(hit.Index, hit.Point))
	fmt.Fprintf(out, "Distance: %.6f\n", hit.Distance)
	return nil
}
