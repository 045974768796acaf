package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/freightlens/freightlens/dataset"
	"github.com/freightlens/freightlens/engine"
	"github.com/freightlens/freightlens/ingest"
)

func inspectCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a spreadsheet export without rendering a view",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, file)
			if err != nil {
				return err
			}
			v, err := s.Unfiltered()
			if err != nil {
				return err
			}

			fmt.Printf("File: %s\n", file)
			fmt.Printf("Rows: %d\n", v.Len())
			fmt.Printf("Weighted shipments: %.1f\n", engine.WeightedTotal(v))
			fmt.Printf("Customers: %d\n", engine.DistinctCount(v, func(r *dataset.Row) string { return r.CustomerName }))

			fmt.Println("\nColumns present:")
			for _, f := range s.Caps().Fields() {
				fmt.Printf("  %s\n", f)
			}

			months := engine.AvailableMonths(v)
			if len(months) > 0 {
				fmt.Printf("\nMonths: %s .. %s (%d)\n", months[len(months)-1], months[0], len(months))
			}
			weeks := engine.AvailableWeeks(v)
			if len(weeks) > 0 {
				fmt.Printf("Weeks:  %s .. %s (%d)\n", weeks[len(weeks)-1], weeks[0], len(weeks))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "spreadsheet export to inspect (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func filesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List spreadsheet files in the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = viper.GetString("data.dir")
			}
			files, err := ingest.ScanDir(dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Printf("no spreadsheet files in %s\n", dir)
				return nil
			}
			for _, f := range files {
				fmt.Println(f)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory to scan (default from config data.dir)")
	return cmd
}
