package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/embedsafe/e2e-go/pkg/e2e"
)

type protectFlags struct {
	catalog string
	stream  string
	repeat  int
}

func newProtectCmd() *cobra.Command {
	flags := &protectFlags{}

	cmd := &cobra.Command{
		Use:   "protect <hex frame>",
		Short: "Stamp a protection header onto a frame",
		Long: `Protect builds the named stream's engine from the catalog, writes the
protection header into the given frame, and prints the result as hex.
With --repeat the same payload is protected repeatedly, advancing the
alive counter each time and printing one frame per line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProtect(flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.catalog, "catalog", "", "Stream catalog YAML file (required)")
	cmd.Flags().StringVar(&flags.stream, "stream", "", "Stream name from the catalog (required)")
	cmd.Flags().IntVar(&flags.repeat, "repeat", 1, "Number of frames to emit")

	return cmd
}

func runProtect(flags *protectFlags, arg string) error {
	if flags.repeat < 1 {
		return fmt.Errorf("--repeat must be at least 1")
	}

	p, err := loadStream(flags.catalog, flags.stream)
	if err != nil {
		return err
	}
	data, err := parseFrame(arg)
	if err != nil {
		return err
	}

	for i := 0; i < flags.repeat; i++ {
		if err := p.Protect(data); err != nil {
			return fmt.Errorf("protect frame %d: %w", i, err)
		}
		e2e.LogFrame("tx", data)
		fmt.Fprintln(os.Stdout, formatFrame(data))
	}
	return nil
}
