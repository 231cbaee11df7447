package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/godefects/internal/app"
	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/cloud"
	"github.com/philipparndt/godefects/pkg/defects"
	"github.com/philipparndt/godefects/pkg/samples"
	"github.com/spf13/cobra"
)

// picks is a fixed viewer selection for headless sessions
type picks []brep.Shape

func (p picks) SelectedShapes() []brep.Shape { return p }

// openSession loads file into a session drawing through renderer
func openSession(file string, renderer cloud.Renderer, source app.SelectionSource, opts ...app.Option) (*app.App, error) {
	if renderer == nil {
		renderer = cloud.NewLogRenderer(logger)
	}
	opts = append([]app.Option{app.WithLogger(logger)}, opts...)
	session := app.New(renderer, source, opts...)
	if err := session.LoadFile(file); err != nil {
		return nil, err
	}
	return session, nil
}

// defectFlags are the randomization settings, defaulting to the config file
type defectFlags struct {
	min, max     float64
	seed         uint64
	distribution string
}

func (f *defectFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.min, "min", 0, "Minimum offset in mm (default from config)")
	cmd.Flags().Float64Var(&f.max, "max", 0, "Maximum offset in mm (default from config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Random seed (default from config)")
	cmd.Flags().StringVar(&f.distribution, "distribution", "", "Offset distribution: magnitude or volume (default from config)")
}

// resolve merges changed flags over the loaded config
func (f *defectFlags) resolve(cmd *cobra.Command) (defects.Range, defects.Distribution, uint64, error) {
	d := cfg.Defects
	if cmd.Flags().Changed("min") {
		d.Min = f.min
	}
	if cmd.Flags().Changed("max") {
		d.Max = f.max
	}
	if cmd.Flags().Changed("seed") {
		d.Seed = f.seed
	}
	if cmd.Flags().Changed("distribution") {
		d.Distribution = f.distribution
	}

	r := d.Range()
	if err := r.Validate(); err != nil {
		return r, 0, 0, err
	}
	dist, err := d.Dist()
	return r, dist, d.Seed, err
}

// saveImport writes imp as a .pcs file or a JSON snapshot, by extension
func saveImport(path string, imp *samples.Import) error {
	if strings.EqualFold(filepath.Ext(path), ".pcs") {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := samples.WritePCS(file, imp); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}
	return samples.SaveSnapshotFile(path, imp)
}
