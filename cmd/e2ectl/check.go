package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/embedsafe/e2e-go/pkg/e2e"
)

type checkFlags struct {
	catalog string
	stream  string
}

func newCheckCmd() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check <hex frame> [hex frame...]",
		Short: "Verify received frames against a stream",
		Long: `Check builds the named stream's engine from the catalog and verifies
each given frame in order, sharing counter state across frames. One
status line is printed per frame. The exit status is nonzero if any
frame fails to verify as OK or OK_SOME_LOST.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.catalog, "catalog", "", "Stream catalog YAML file (required)")
	cmd.Flags().StringVar(&flags.stream, "stream", "", "Stream name from the catalog (required)")

	return cmd
}

func runCheck(flags *checkFlags, args []string) error {
	p, err := loadStream(flags.catalog, flags.stream)
	if err != nil {
		return err
	}

	rejected := 0
	for i, arg := range args {
		data, err := parseFrame(arg)
		if err != nil {
			return err
		}
		e2e.LogFrame("rx", data)

		status, err := p.Check(data)
		if err != nil {
			return fmt.Errorf("check frame %d: %w", i, err)
		}
		fmt.Fprintf(os.Stdout, "frame %d: %s\n", i, status)
		if !status.Valid() {
			rejected++
		}
	}

	if rejected > 0 {
		return fmt.Errorf("%d of %d frames rejected", rejected, len(args))
	}
	return nil
}
