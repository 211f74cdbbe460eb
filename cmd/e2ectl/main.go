package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/embedsafe/e2e-go/pkg/e2e"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	var verbose bool
	var frameDebug bool

	rootCmd := &cobra.Command{
		Use:   "e2ectl",
		Short: "Protect and check frames with AUTOSAR E2E profiles",
		Long: `e2ectl drives end-to-end protection engines from a YAML stream
catalog: it stamps protection headers onto frames, verifies received
frames, and validates catalog files without any network I/O.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				e2e.SetLogLevel(e2e.LevelDebug)
			}
			e2e.EnableFrameDebug(frameDebug)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&frameDebug, "frame-debug", false, "Hex dump every frame")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newProtectCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "e2ectl version %s\n", version)
			fmt.Fprintf(os.Stdout, "commit: %s\n", commit)
			fmt.Fprintf(os.Stdout, "date: %s\n", date)
		},
	}
}
