package main

import (
	"fmt"

	"github.com/philipparndt/godefects/pkg/analysis"
	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/defects"
	"github.com/philipparndt/godefects/pkg/registry"
	"github.com/philipparndt/godefects/pkg/samples"
	"github.com/spf13/cobra"
)

var (
	perturbFace   int
	perturbShape  string
	perturbOutput string
	perturbFlags  defectFlags
)

var perturbCmd = &cobra.Command{
	Use:   "perturb [file]",
	Short: "Displace the sample points of one face by a random offset",
	Long: `Select one face, either by its face number or by picking its shape id, and
move each of its sample points by a random vector whose length lies between
--min and --max. The result is saved as a snapshot next to the input unless
--output names another file (.pcs or .json).`,
	Args: cobra.ExactArgs(1),
	RunE: runPerturb,
}

func init() {
	perturbCmd.Flags().IntVarP(&perturbFace, "face", "f", 0, "Face number to displace")
	perturbCmd.Flags().StringVarP(&perturbShape, "shape", "s", "", "Shape id to pick, as if clicked in the viewer")
	perturbCmd.Flags().StringVarP(&perturbOutput, "output", "o", "", "Output file (default <file>.defects.json)")
	perturbCmd.MarkFlagsMutuallyExclusive("face", "shape")
	perturbFlags.register(perturbCmd)
	rootCmd.AddCommand(perturbCmd)
}

func runPerturb(cmd *cobra.Command, args []string) error {
	filename := args[0]

	r, dist, seed, err := perturbFlags.resolve(cmd)
	if err != nil {
		return err
	}

	var source picks
	if perturbShape != "" {
		source = picks{brep.Face(perturbShape)}
	}
	session, err := openSession(filename, nil, source)
	if err != nil {
		return err
	}

	var entry registry.Entry[brep.Shape]
	switch {
	case perturbShape != "":
		var ok bool
		if entry, ok = session.SelectEntity(); !ok {
			return fmt.Errorf("shape %q matches no entity", perturbShape)
		}
	case perturbFace != 0:
		id, ok := faceEntity(session.Store(), perturbFace)
		if !ok {
			return fmt.Errorf("no sampled face #%d", perturbFace)
		}
		if err := session.Select(id); err != nil {
			return err
		}
		entry, _ = session.Selected()
	}

	before := session.Store().Faces()
	if err := session.ApplyRandomization(r, dist, defects.NewSource(seed)); err != nil {
		return err
	}
	displacements, err := analysis.CompareFaces(before, session.Store().Faces())
	if err != nil {
		return err
	}

	imp, err := session.Import()
	if err != nil {
		return err
	}
	output := perturbOutput
	if output == "" {
		output = samples.SnapshotPath(filename)
	}
	if err := saveImport(output, imp); err != nil {
		return fmt.Errorf("failed to save %s: %w", output, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Randomized %s with offsets [%g, %g] mm (%s, seed %d)\n", entry.Label, r.Min, r.Max, dist, seed)
	for _, d := range analysis.Moved(displacements) {
		fmt.Fprintf(out, "  Face %d: %d points, offset min %s, max %s, avg %s\n", int(d.Face), d.Offsets.Count,
			analysis.FormatMeasurement(d.Offsets.Min), analysis.FormatMeasurement(d.Offsets.Max), analysis.FormatMeasurement(d.Offsets.Avg))
	}
	fmt.Fprintf(out, "Saved: %s\n", output)
	return nil
}

// faceEntity maps a face number to the registry entry of that face
func faceEntity(store *samples.Store, number int) (registry.EntryID, bool) {
	for _, face := range store.Faces() {
		if face.Number() == number {
			return registry.EntryID(face.ID), true
		}
	}
	return 0, false
}
