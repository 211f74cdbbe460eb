package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/embedsafe/e2e-go/pkg/registry"
)

func newValidateCmd() *cobra.Command {
	var catalog string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a stream catalog file",
		Long: `Validate loads a stream catalog, attempts to construct every engine,
and reports a per-stream result. The exit status is nonzero if any
stream fails to build.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(catalog)
		},
	}

	cmd.Flags().StringVar(&catalog, "catalog", "", "Stream catalog YAML file (required)")

	return cmd
}

func runValidate(catalog string) error {
	if catalog == "" {
		return fmt.Errorf("required flag --catalog not set")
	}

	file, err := registry.Load(catalog)
	if err != nil {
		return err
	}

	failed := 0
	for _, s := range file.Streams {
		if _, err := s.Build(); err != nil {
			fmt.Fprintf(os.Stdout, "%-20s profile %-3s FAIL: %v\n", s.Name, s.Profile, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "%-20s profile %-3s OK\n", s.Name, s.Profile)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d streams invalid", failed, len(file.Streams))
	}
	fmt.Fprintf(os.Stdout, "%d streams valid\n", len(file.Streams))
	return nil
}
