// Package cli implements the filecompare command line.
//
// The root command itself performs the comparison. Paths and the chunk size
// come from positional arguments; when fewer than two paths are given the
// missing values are asked for interactively.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"FileComparator/internal/compare"
)

// Set from main at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

type rootFlags struct {
	chunkSize  int
	configPath string
	jsonOutput bool
	verbose    bool
	progress   bool
}

func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "filecompare [left right [chunk-size]]",
		Short: "Check whether two files are byte-for-byte identical",
		Long: `filecompare compares two files byte-for-byte and reports whether they are
identical together with the time the comparison took.

File sizes are compared first; the content is only read when the sizes
match. When fewer than two paths are given, the missing values are read
interactively from standard input. A positional chunk size that starts with
a dash is read as a flag unless it follows "--".

Examples:
  filecompare a.iso b.iso
  filecompare a.iso b.iso 1048576
  filecompare --json --chunk-size 65536 a.iso b.iso
  filecompare`,

		Args: cobra.MaximumNArgs(3),

		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, flags, args)
		},
	}

	cmd.Flags().IntVarP(&flags.chunkSize, "chunk-size", "c", compare.DefaultChunkSize,
		"Number of bytes read from each file per step")
	cmd.Flags().StringVar(&flags.configPath, "config", "",
		"Path to a YAML config file (default $XDG_CONFIG_HOME/filecompare/config.yaml)")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Output the result as JSON")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log comparison details and print stats to stderr")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Show a progress bar when stdout is a terminal")

	return cmd
}

// Execute runs rootCmd and returns the exit status for the process.
func Execute(rootCmd *cobra.Command) int {
	err := rootCmd.Execute()
	if err == nil {
		return int(ExitSuccess)
	}
	printError(rootCmd.ErrOrStderr(), err)
	return int(ExitCodeOf(err))
}

func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}
