package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/godefects/pkg/samples"
	"github.com/philipparndt/godefects/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Reload a sample file whenever it changes",
	Long:  "Load the file, then reload it on every change until interrupted. Each reload starts a new session and clears the selection.",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	session, err := openSession(filename, nil, nil)
	if err != nil {
		return err
	}
	defer session.Close()
	fmt.Fprintf(out, "Loaded %s: %d points\n", filename, session.Store().PointCount())

	fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	files, err := samples.SourceFiles(filename)
	if err != nil {
		return err
	}
	changes := make(chan string, 1)
	if err := fw.Watch(files, func(path string) {
		select {
		case changes <- path:
		default:
		}
	}); err != nil {
		return err
	}
	fw.Start()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			if err := session.LoadFile(filename); err != nil {
				logger.Error().Err(err).Str("file", filename).Msg("reload failed")
				continue
			}
			fmt.Fprintf(out, "Reloaded %s: %d points\n", filename, session.Store().PointCount())
		}
	}
}
