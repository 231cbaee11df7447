package main

import (
	"fmt"
	"strings"

	"github.com/philipparndt/godefects/pkg/analysis"
	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/samples"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a sample file",
	Long:  "Show the model name, entity and point counts, the bounding box and every sampled face.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	imp, err := samples.ParseFile(filename)
	if err != nil {
		return err
	}
	if err := imp.Validate(); err != nil {
		return err
	}
	store, err := samples.NewStore(imp.Faces)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Sample File Information")
	fmt.Fprintln(out, "=======================")
	if imp.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", imp.Name)
	}
	fmt.Fprintf(out, "File: %s\n\n", filename)

	result := analysis.Analyze(store.Faces())

	fmt.Fprintln(out, "Statistics:")
	fmt.Fprintf(out, "  Entities: %d\n", len(imp.Shapes))
	fmt.Fprintf(out, "  Sampled faces: %d\n", result.FaceCount)
	fmt.Fprintf(out, "  Points: %d\n\n", result.PointCount)

	if result.PointCount > 0 {
		fmt.Fprintln(out, "Bounding Box:")
		fmt.Fprintf(out, "  Min: %s\n", result.Bounds.Min)
		fmt.Fprintf(out, "  Max: %s\n", result.Bounds.Max)
		fmt.Fprintf(out, "  Center: %s\n\n", result.Bounds.Center())

		fmt.Fprintln(out, "Dimensions:")
		fmt.Fprintf(out, "  Width (X): %s\n", analysis.FormatMeasurement(result.Dimensions.X))
		fmt.Fprintf(out, "  Depth (Y): %s\n", analysis.FormatMeasurement(result.Dimensions.Y))
		fmt.Fprintf(out, "  Height (Z): %s\n\n", analysis.FormatMeasurement(result.Dimensions.Z))
	}

	if result.Spacing.Count > 0 {
		fmt.Fprintln(out, "Sample Spacing:")
		fmt.Fprintf(out, "  Minimum: %s\n", analysis.FormatMeasurement(result.Spacing.Min))
		fmt.Fprintf(out, "  Maximum: %s\n", analysis.FormatMeasurement(result.Spacing.Max))
		fmt.Fprintf(out, "  Average: %s\n\n", analysis.FormatMeasurement(result.Spacing.Avg))
	}

	fmt.Fprintln(out, "Entities:")
	for i, entity := range imp.Entities {
		points, _ := store.Points(samples.FaceID(i))
		fmt.Fprintf(out, "  [%d] %s (%s, %d points)\n", i, entity.Label, imp.Shapes[i], len(points))
		entity.Walk(func(child brep.Entity, depth int) {
			if depth > 0 {
				fmt.Fprintf(out, "  %s- %s\n", strings.Repeat("  ", depth), child.Label)
			}
		})
	}
	return nil
}
