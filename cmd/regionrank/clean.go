package main

import (
	"fmt"
	"io"
	"os"

	"orderstats/internal/adapters/out/csvfile"
	"orderstats/internal/core/domain/services"

	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean IN OUT",
		Short: "Clean a raw orders file the way imports do and write the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd.OutOrStdout(), args[0], args[1], services.NewOrderCleaner())
		},
	}
}

func runClean(out io.Writer, in, dst string, cleaner *services.OrderCleaner) error {
	src, err := os.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	rows, err := csvfile.ReadRawOrders(src)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	result, err := cleaner.Clean(rows)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return err
	}

	if err = csvfile.WriteOrders(f, result.Orders); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "rows=%d duplicates=%d written=%d\n", result.Rows, result.Duplicates, len(result.Orders))
	return err
}
