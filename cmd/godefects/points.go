package main

import (
	"fmt"

	"github.com/philipparndt/godefects/pkg/cloud"
	"github.com/philipparndt/godefects/pkg/samples"
	"github.com/spf13/cobra"
)

var pointsFace int

var pointsCmd = &cobra.Command{
	Use:   "points [file]",
	Short: "List the labelled sample points",
	Long:  "Print the point list grouped by face, as shown in the viewer's label tree.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPoints,
}

func init() {
	pointsCmd.Flags().IntVarP(&pointsFace, "face", "f", 0, "Only list the face with this number")
	rootCmd.AddCommand(pointsCmd)
}

func runPoints(cmd *cobra.Command, args []string) error {
	imp, err := samples.ParseFile(args[0])
	if err != nil {
		return err
	}
	store, err := samples.NewStore(imp.Faces)
	if err != nil {
		return err
	}
	c, err := cloud.Build(store.Faces())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	shown := 0
	for _, group := range c.Groups() {
		face, _ := store.Face(group.Face)
		if pointsFace != 0 && face.Number() != pointsFace {
			continue
		}
		shown++
		fmt.Fprintln(out, group.Title)
		for _, label := range group.Points {
			fmt.Fprintf(out, "  %s\n", label)
		}
	}
	if pointsFace != 0 && shown == 0 {
		return fmt.Errorf("no sampled face #%d", pointsFace)
	}
	return nil
}
