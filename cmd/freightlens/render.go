package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/freightlens/freightlens/engine"
	"github.com/freightlens/freightlens/session"
	"github.com/freightlens/freightlens/views"
)

func renderCmd() *cobra.Command {
	var (
		file         string
		viewName     string
		format       string
		filterTerms  []string
		from, to     string
		topN         int
		granularity  string
		rollingWeeks int
		regionSide   string
		monthLabel   string
		weekLabel    string
		baseLabel    string
		compareLabel string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a view from a spreadsheet export",
		Example: `  freightlens render --file orders.xlsx --view overview
  freightlens render --file orders.xlsx --view customers --top 15 --filter "Market=Benelux"
  freightlens render --file orders.xlsx --view compare --base 2025-06 --compare 2025-05 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, file)
			if err != nil {
				return err
			}
			filters, err := parseFilters(filterTerms, from, to)
			if err != nil {
				return err
			}
			s.SetFilters(filters)

			if baseLabel != "" {
				m, err := engine.ParseMonth(baseLabel)
				if err != nil {
					return err
				}
				s.SelectBaseMonth(m)
			}
			if compareLabel != "" {
				m, err := engine.ParseMonth(compareLabel)
				if err != nil {
					return err
				}
				s.SelectCompareMonth(m)
			}

			page, err := renderView(s, viewName, renderOptions{
				topN:         topN,
				granularity:  granularity,
				rollingWeeks: rollingWeeks,
				regionSide:   regionSide,
				monthLabel:   monthLabel,
				weekLabel:    weekLabel,
			})
			if err != nil {
				return err
			}

			if format == "json" {
				out, err := json.MarshalIndent(page, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}
			printPage(page)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "spreadsheet export to load (required)")
	cmd.Flags().StringVar(&viewName, "view", "overview", "view to render (overview, intake, customers, geography, operations, new-month, new-week, compare)")
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty, json)")
	cmd.Flags().StringArrayVar(&filterTerms, "filter", nil, `sidebar filter, repeatable ("Header=Value")`)
	cmd.Flags().StringVar(&from, "from", "", "order placed from date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "order placed to date (YYYY-MM-DD, inclusive)")
	cmd.Flags().IntVar(&topN, "top", 0, "customer cut for the customers view")
	cmd.Flags().StringVar(&granularity, "granularity", "week", "intake cumulative granularity (week, month)")
	cmd.Flags().IntVar(&rollingWeeks, "rolling-weeks", 4, "intake smoothing window in weeks")
	cmd.Flags().StringVar(&regionSide, "region-side", "load", "geography region drill-down side (load, unload)")
	cmd.Flags().StringVar(&monthLabel, "month", "", "month for the new-month view (YYYY-MM)")
	cmd.Flags().StringVar(&weekLabel, "week", "", "week for the new-week view (YYYY-Wnn)")
	cmd.Flags().StringVar(&baseLabel, "base", "", "comparison base month (YYYY-MM)")
	cmd.Flags().StringVar(&compareLabel, "compare", "", "comparison month (YYYY-MM)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

type renderOptions struct {
	topN         int
	granularity  string
	rollingWeeks int
	regionSide   string
	monthLabel   string
	weekLabel    string
}

func renderView(s *session.Session, name string, opts renderOptions) (views.Page, error) {
	switch name {
	case "overview":
		return views.Overview(s), nil
	case "intake":
		return views.OrderIntake(s, views.IntakeOptions{
			Granularity:  opts.granularity,
			RollingWeeks: opts.rollingWeeks,
		}), nil
	case "customers":
		return views.Customers(s, opts.topN), nil
	case "geography":
		return views.Geography(s, views.RegionSide(opts.regionSide)), nil
	case "operations":
		return views.Operations(s), nil
	case "new-month":
		var month *engine.Month
		if opts.monthLabel != "" {
			m, err := engine.ParseMonth(opts.monthLabel)
			if err != nil {
				return views.Page{}, err
			}
			month = &m
		}
		return views.NewBusinessMonth(s, month), nil
	case "new-week":
		var week *engine.Week
		if opts.weekLabel != "" {
			w, err := engine.ParseWeek(opts.weekLabel)
			if err != nil {
				return views.Page{}, err
			}
			week = &w
		}
		return views.NewBusinessWeek(s, week), nil
	case "compare":
		return views.Comparison(s), nil
	default:
		return views.Page{}, fmt.Errorf("unknown view %q", name)
	}
}

// printPage writes a page as readable text: metrics, section summaries, full
// tables, and notices. Charts are summarized, not drawn.
func printPage(page views.Page) {
	fmt.Printf("== %s ==\n", page.Title)
	for _, m := range page.Metrics {
		fmt.Printf("  %s: %s\n", m.Label, m.Value)
	}
	for _, sec := range page.Sections {
		fmt.Printf("\n-- %s --\n", sec.Title)
		for _, m := range sec.Metrics {
			fmt.Printf("  %s: %s\n", m.Label, m.Value)
		}
		if sec.Chart != nil {
			fmt.Printf("  [%s chart, %d series]\n", sec.Chart.ChartType, len(sec.Chart.Series))
		}
		if sec.Table != nil {
			printTable(sec.Table)
		}
	}
	for _, n := range page.Notices {
		fmt.Printf("\n[%s] %s\n", n.Level, n.Message)
	}
}

func printTable(table *views.TableData) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for i, col := range table.Columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col.Label)
	}
	fmt.Fprintln(w)
	for _, row := range table.Rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}
