package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/godefects/internal/app"
	"github.com/philipparndt/godefects/internal/config"
	"github.com/philipparndt/godefects/internal/logging"
	"github.com/philipparndt/godefects/internal/ui"
	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/defects"
	"github.com/philipparndt/godefects/pkg/samples"
	"github.com/philipparndt/godefects/pkg/viewer"
	"github.com/philipparndt/godefects/pkg/watcher"
	"github.com/philipparndt/godefects/version"
	"github.com/rs/zerolog"
)

// GUI is the main window: the cloud viewer with the defects panel on the right
type GUI struct {
	window  fyne.Window
	cfg     config.Config
	log     zerolog.Logger
	view    *viewer.CloudView
	session *app.App
	panel   *ui.DefectsPanel
	watcher *watcher.FileWatcher
	file    string
	status  *widget.Label
	dist    defects.Distribution
}

func main() {
	cfg, err := config.Load(os.Getenv("GODEFECTS_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	dist, err := cfg.Defects.Dist()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := fyneapp.New()
	w := a.NewWindow("GoDefects " + version.GetVersion())

	gui := &GUI{window: w, cfg: cfg, log: log, dist: dist}
	gui.setupMainUI()

	if len(os.Args) > 1 {
		gui.loadFile(os.Args[1])
	}

	w.SetOnClosed(gui.close)
	w.Resize(fyne.NewSize(float32(cfg.Viewer.Width), float32(cfg.Viewer.Height)))
	w.ShowAndRun()
}

func (g *GUI) setupMainUI() {
	g.view = viewer.NewCloudView()
	g.view.SetPointSize(g.cfg.Viewer.PointSize)

	g.status = widget.NewLabel("Open a sample file to begin")
	g.status.Wrapping = fyne.TextWrapWord

	g.session = app.New(g.view, g.view,
		app.WithLogger(g.log),
		app.WithLabelCallback(func(label string) { g.panel.SetEntityLabel(label) }),
	)
	g.view.SetOnSelect(func(shape brep.Shape) {
		g.status.SetText("Picked " + shape.String() + ", press Add selected entity")
	})
	g.panel = ui.NewDefectsPanel(g.session, g.view, ui.Options{
		Range:        g.cfg.Defects.Range(),
		Distribution: g.dist,
		Source:       defects.NewSource(g.cfg.Defects.Seed),
		OnError: func(err error) {
			dialog.ShowError(err, g.window)
		},
		OnApplied: func() {
			g.status.SetText("Randomization applied")
		},
		OnStatus: g.status.SetText,
	})

	openButton := widget.NewButton("Open File", g.showFileDialog)
	saveButton := widget.NewButton("Save Snapshot", g.saveSnapshot)
	resetButton := widget.NewButton("Reset View", g.view.ResetCamera)

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click on a point to pick its face\n" +
			"• Drag to rotate the view\n" +
			"• Scroll to zoom in/out",
	)
	instructions.Wrapping = fyne.TextWrapWord

	sidePanel := container.NewVBox(
		g.panel.Content(),
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		g.status,
		layout.NewSpacer(),
		openButton,
		saveButton,
		resetButton,
	)
	sideScroll := container.NewVScroll(sidePanel)
	sideScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		sideScroll, // right
		g.view,     // center
	)
	g.window.SetContent(content)
}

func (g *GUI) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		g.loadFile(reader.URI().Path())
	}, g.window)
}

// loadFile loads a model and watches it for changes
func (g *GUI) loadFile(filename string) {
	if err := g.reload(filename); err != nil {
		dialog.ShowError(fmt.Errorf("failed to load %s: %w", filename, err), g.window)
		return
	}
	g.file = filename
	g.view.ResetCamera()
	g.watch(filename)
}

// reload replaces the session contents; the viewer picks and panel label belong
// to the previous model and are cleared
func (g *GUI) reload(filename string) error {
	if err := g.session.LoadFile(filename); err != nil {
		return err
	}
	g.view.ClearSelection()
	g.panel.Reset()
	g.status.SetText(fmt.Sprintf("%s\n%d entities, %d points",
		filename, len(g.session.Entries()), g.session.Store().PointCount()))
	return nil
}

func (g *GUI) watch(filename string) {
	if g.watcher != nil {
		g.watcher.Close()
		g.watcher = nil
	}

	fw, err := watcher.NewFileWatcher(g.cfg.Watch.Debounce, g.log)
	if err != nil {
		g.log.Warn().Err(err).Msg("file watching disabled")
		return
	}
	files, err := samples.SourceFiles(filename)
	if err != nil {
		fw.Close()
		g.log.Warn().Err(err).Msg("file watching disabled")
		return
	}
	err = fw.Watch(files, func(string) {
		fyne.Do(func() {
			if err := g.reload(filename); err != nil {
				g.log.Error().Err(err).Str("file", filename).Msg("reload failed")
			}
		})
	})
	if err != nil {
		fw.Close()
		g.log.Warn().Err(err).Msg("file watching disabled")
		return
	}
	fw.Start()
	g.watcher = fw
}

func (g *GUI) saveSnapshot() {
	imp, err := g.session.Import()
	if err != nil {
		dialog.ShowError(err, g.window)
		return
	}
	path := samples.SnapshotPath(g.file)
	if err := samples.SaveSnapshotFile(path, imp); err != nil {
		dialog.ShowError(err, g.window)
		return
	}
	g.status.SetText("Saved: " + path)
}

func (g *GUI) close() {
	if g.watcher != nil {
		g.watcher.Close()
	}
	g.session.Close()
}
