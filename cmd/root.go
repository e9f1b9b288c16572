package cmd

import (
	"github.com/spf13/cobra"
)

// Version is overridden from the embedded VERSION file at startup.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "snapdate",
	Short:   "Snapdate batch image renamer",
	Long:    "Rename JPEG and HEIC photos to their capture date (YYYY-MM-DD), resolved from the filename, embedded metadata, or the file timestamp.",
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

// ApplyVersion re-applies the Version var to the root command after
// the embedded VERSION file has been loaded.
func ApplyVersion() {
	rootCmd.Version = Version
}
