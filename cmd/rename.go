package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"snapdate/internal"
)

var (
	dryRunFlag     bool
	useExifTool    bool
	formatFlag     string
	manualDateFlag string
	noSessionFlag  bool
)

var renameCmd = &cobra.Command{
	Use:   "rename [folder]",
	Short: "Rename image files in a folder to their capture date",
	Long: `Scan a folder for JPEG/HEIC files and rename each to YYYY-MM-DD[-NN].<ext>.
The date comes from the filename if it embeds one, else from the EXIF
metadata, else from the file's modification time. Files processed in
sorted filename order; the first file for a date gets the bare name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]

		info, err := os.Stat(folder)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("folder does not exist or is not a directory: %s", folder)
		}

		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}
		if useExifTool {
			conf.UseExifTool = true
		}

		opts := internal.BatchOptions{}
		if manualDateFlag != "" {
			t, err := time.Parse("2006-01-02", manualDateFlag)
			if err != nil {
				return fmt.Errorf("invalid --manual-date (want YYYY-MM-DD): %s", manualDateFlag)
			}
			ev, err := internal.ManualEvidence(t.Year(), int(t.Month()), t.Day())
			if err != nil {
				return err
			}
			opts.ManualDate = &ev
		}

		logger, err := internal.NewLogger("snapdate.log")
		if err != nil {
			return err
		}
		defer logger.Close()

		files, err := internal.ScanImageFiles(folder, conf)
		if err != nil {
			return err
		}

		fmt.Printf("Found %d image files\n", len(files))
		if dryRunFlag {
			fmt.Println("Dry run mode: no files will be renamed")
		}

		decoder, err := internal.NewMetadataDecoder(conf.UseExifTool)
		if err != nil {
			return err
		}
		defer decoder.Close()

		inputs := internal.BuildInputs(files, decoder, logger)
		result := internal.ProcessBatch(inputs, opts)

		report := internal.NewBatchReport(result)
		if err := internal.DisplayReport(report, &internal.ReportOptions{Format: formatFlag}); err != nil {
			return err
		}

		var session *internal.RenameSession
		if conf.SessionLog && !noSessionFlag && !dryRunFlag {
			session, err = internal.NewRenameSession(folder)
			if err != nil {
				return err
			}
			defer session.Close()
			session.LogSessionStart(len(inputs))
		}

		stats := internal.ApplyBatch(folder, result, session, logger, dryRunFlag)
		if session != nil {
			session.LogSessionEnd(stats)
		}

		fmt.Printf("\nRenamed %d, skipped %d, %d need attention, %d errors\n",
			stats.Renamed, stats.SkippedSame, stats.NeedsAttention, stats.Errors)

		return nil
	},
}

func init() {
	renameCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show renames without touching files")
	renameCmd.Flags().BoolVar(&useExifTool, "exiftool", false, "Force to use exiftool binary for metadata")
	renameCmd.Flags().StringVar(&formatFlag, "format", "table", "Output format: table, json")
	renameCmd.Flags().StringVar(&manualDateFlag, "manual-date", "", "Date (YYYY-MM-DD) to apply to files with no resolvable date")
	renameCmd.Flags().BoolVar(&noSessionFlag, "no-session", false, "Skip writing the session manifest")

	rootCmd.AddCommand(renameCmd)
}
