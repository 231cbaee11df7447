package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/godefects/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	snapshotOutput    string
	snapshotWidth     int
	snapshotHeight    int
	snapshotPointSize int
	snapshotRotX      float64
	snapshotRotY      float64
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [file]",
	Short: "Render the point cloud to a PNG image",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "", "Output PNG (default <file>.png)")
	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", 0, "Image width (default from config)")
	snapshotCmd.Flags().IntVar(&snapshotHeight, "height", 0, "Image height (default from config)")
	snapshotCmd.Flags().IntVar(&snapshotPointSize, "point-size", 0, "Point size in pixels (default from config)")
	snapshotCmd.Flags().Float64Var(&snapshotRotX, "rot-x", 0.4, "Camera pitch in radians")
	snapshotCmd.Flags().Float64Var(&snapshotRotY, "rot-y", 0.6, "Camera yaw in radians")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	filename := args[0]

	width, height := cfg.Viewer.Width, cfg.Viewer.Height
	if snapshotWidth > 0 {
		width = snapshotWidth
	}
	if snapshotHeight > 0 {
		height = snapshotHeight
	}

	renderer := viewer.NewRasterRenderer(width, height)
	renderer.SetPointSize(int(cfg.Viewer.PointSize))
	if snapshotPointSize > 0 {
		renderer.SetPointSize(snapshotPointSize)
	}
	renderer.SetRotation(snapshotRotX, snapshotRotY)

	if _, err := openSession(filename, renderer, nil); err != nil {
		return err
	}

	output := snapshotOutput
	if output == "" {
		output = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".png"
	}
	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := renderer.WritePNG(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s (%dx%d)\n", output, width, height)
	return nil
}
