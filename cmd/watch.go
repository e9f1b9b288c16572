package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"snapdate/internal"
)

var (
	inboxFlag       string
	watchExifTool   bool
	watchDryRunFlag bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Watch a folder and rename images as they arrive",
	Long: `Continuously watch an inbox folder. Each newly created JPEG/HEIC file
is renamed to its capture date as soon as it lands. Uses the folder
from config when no argument is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}
		if watchExifTool {
			conf.UseExifTool = true
		}

		inbox := conf.Inbox
		if len(args) == 1 {
			inbox = args[0]
		}
		if inboxFlag != "" {
			inbox = inboxFlag
		}

		info, err := os.Stat(inbox)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("inbox does not exist or is not a directory: %s", inbox)
		}

		logger, err := internal.NewLogger("snapdate.log")
		if err != nil {
			return err
		}
		defer logger.Close()

		decoder, err := internal.NewMetadataDecoder(conf.UseExifTool)
		if err != nil {
			return err
		}
		defer decoder.Close()

		watcher, err := internal.NewWatcher(inbox)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", inbox, err)
		}
		defer watcher.Close()

		fmt.Printf("Watching %s for new images (Ctrl-C to stop)\n", inbox)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		for {
			select {
			case event := <-watcher.Events():
				switch event.Type {
				case internal.EventCreate:
					renameArrival(event.Path, decoder, logger, watchDryRunFlag)
				case internal.EventDelete:
					// Keep an audit trail of images leaving the inbox.
					logger.Log("removed from inbox: %s", event.Path)
				}

			case err := <-watcher.Errors():
				logger.Log("watcher error: %v", err)
				fmt.Printf("Watcher error: %v\n", err)

			case <-sig:
				fmt.Println("\nStopping watcher")
				return nil
			}
		}
	},
}

// renameArrival runs the pipeline on a single newly created file.
// Each arrival is its own batch: the collision ledger is batch-scoped,
// so disk-level fallback naming handles clashes with files already in
// the inbox.
func renameArrival(path string, decoder internal.MetadataDecoder, logger *internal.Logger, dryRun bool) {
	in, err := internal.BuildInput(path, decoder)
	if err != nil {
		logger.Log("skipping %s: %v", path, err)
		return
	}

	result := internal.ProcessBatch([]internal.FileInput{in}, internal.BatchOptions{})
	a := result.Assignments[0]
	if a.Status != internal.StatusResolved {
		entry := internal.NewProblemEntry(a)
		logger.Log("needs attention: %s (%s)", a.Input.Name, entry.Problem)
		fmt.Printf("⚠️  %s: %s\n", a.Input.Name, entry.Reason)
		return
	}

	dir := filepath.Dir(path)
	if _, _, err := internal.ApplyAssignment(dir, a, dryRun); err != nil {
		logger.Log("error renaming %s: %v", path, err)
		fmt.Printf("Error renaming %s: %v\n", path, err)
	}
}

func init() {
	watchCmd.Flags().StringVar(&inboxFlag, "inbox", "", "Folder to watch (overrides config)")
	watchCmd.Flags().BoolVar(&watchExifTool, "exiftool", false, "Force to use exiftool binary for metadata")
	watchCmd.Flags().BoolVar(&watchDryRunFlag, "dry-run", false, "Log renames without touching files")

	rootCmd.AddCommand(watchCmd)
}
