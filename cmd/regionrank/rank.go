package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"orderstats/internal/adapters/out/csvfile"
	"orderstats/internal/core/domain/model/order"
	"orderstats/internal/core/domain/model/ranking"
	"orderstats/internal/core/domain/services"

	"github.com/spf13/cobra"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

type rankOptions struct {
	workers int
	limit   int
	format  string
}

func newRankCmd() *cobra.Command {
	opts := rankOptions{}

	cmd := &cobra.Command{
		Use:   "rank FILE...",
		Short: "Rank regions across one or more orders CSV files",
		Long: `Reads the Region and OrderValue columns of each file ("-" for stdin),
groups the orders by region and prints the regions from the highest average
order value to the lowest.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(cmd.InOrStdin(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "goroutines used to accumulate large inputs")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "print at most n regions (0 prints all)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "output format: table or json")
	return cmd
}

func runRank(stdin io.Reader, out io.Writer, files []string, opts rankOptions) error {
	if opts.format != formatTable && opts.format != formatJSON {
		return fmt.Errorf("unknown format %q (use %s or %s)", opts.format, formatTable, formatJSON)
	}
	if opts.limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	records := make([]order.Record, 0)
	for _, name := range files {
		recs, err := readRecordsFile(stdin, name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		records = append(records, recs...)
	}

	ranker := services.NewRegionAverageRanker(services.WithWorkers(opts.workers))
	regions, err := ranker.Rank(records)
	if err != nil {
		return err
	}

	if opts.limit > 0 && len(regions) > opts.limit {
		regions = regions[:opts.limit]
	}

	if opts.format == formatJSON {
		return writeJSON(out, regions)
	}
	return writeTable(out, regions)
}

func readRecordsFile(stdin io.Reader, name string) ([]order.Record, error) {
	if name == "-" {
		return csvfile.ReadRecords(stdin)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return csvfile.ReadRecords(f)
}

type regionRow struct {
	Region          string       `json:"region"`
	AverageSpending *json.Number `json:"averageSpending"`
	OrderCount      int          `json:"orderCount"`
}

func writeJSON(out io.Writer, regions []ranking.RegionAverage) error {
	rows := make([]regionRow, len(regions))
	for i, r := range regions {
		rows[i] = regionRow{Region: r.Region, OrderCount: r.OrderCount}
		if r.AverageSpending.Valid {
			n := json.Number(r.AverageSpending.Decimal.String())
			rows[i].AverageSpending = &n
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeTable(out io.Writer, regions []ranking.RegionAverage) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REGION\tAVERAGE_SPENDING\tORDERS")
	for _, r := range regions {
		average := "NULL"
		if r.AverageSpending.Valid {
			average = r.AverageSpending.Decimal.StringFixed(2)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", r.Region, average, r.OrderCount)
	}
	return tw.Flush()
}
