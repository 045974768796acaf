package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/freightlens/freightlens/dataset"
	"github.com/freightlens/freightlens/engine"
	"github.com/freightlens/freightlens/ingest"
	"github.com/freightlens/freightlens/session"
)

// openSession authenticates against the configured shared secret and loads
// the given file into a fresh session.
func openSession(cmd *cobra.Command, file string) (*session.Session, error) {
	s := session.New(viper.GetString("auth.password"))
	if !s.Authenticated() {
		password, _ := cmd.Flags().GetString("password")
		if err := s.Authenticate(password); err != nil {
			return nil, err
		}
	}

	table, err := ingest.NewLoader().Load(file)
	if err != nil {
		return nil, err
	}
	s.Load(table)
	return s, nil
}

// parseFilters builds the sidebar filter set from CLI flags: repeated
// "Header=Value" terms plus an optional order-placed date range.
func parseFilters(terms []string, from, to string) (engine.Filters, error) {
	f := engine.Filters{Terms: make(map[dataset.Field][]string)}

	for _, term := range terms {
		header, value, ok := strings.Cut(term, "=")
		if !ok {
			return f, fmt.Errorf("invalid filter %q, expected Header=Value", term)
		}
		field := dataset.FieldForHeader(strings.TrimSpace(header))
		if field == dataset.FieldUnknown {
			return f, fmt.Errorf("unknown filter column %q", header)
		}
		f.Terms[field] = append(f.Terms[field], value)
	}

	if from != "" || to != "" {
		dr := &engine.DateRange{
			From: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2099, 12, 31, 23, 59, 59, 0, time.UTC),
		}
		if from != "" {
			t, err := time.Parse("2006-01-02", from)
			if err != nil {
				return f, fmt.Errorf("invalid --from date %q", from)
			}
			dr.From = t
		}
		if to != "" {
			t, err := time.Parse("2006-01-02", to)
			if err != nil {
				return f, fmt.Errorf("invalid --to date %q", to)
			}
			dr.To = t.Add(24*time.Hour - time.Second)
		}
		f.OrderPlaced = dr
	}
	return f, nil
}
