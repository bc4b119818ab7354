package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"ticker-search/search"
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Rank instruments for a query",
		Example: `  ticker-search query apple
  ticker-search query mircosoft --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			matcher := search.NewMatcher(cat, search.WithLimit(limit))
			results := matcher.Search(strings.Join(args, " "))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			if len(results) == 0 {
				fmt.Fprintln(out, "no matches")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tSYMBOL\tNAME\tSECTOR\tTIER\tSCORE")
			for i, r := range results {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.3f\n", i+1, r.Instrument.Symbol, r.Instrument.Name, r.Instrument.Sector, r.Tier, r.Score)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print candidates as JSON")
	cmd.Flags().IntVar(&limit, "limit", search.MaxResults, "maximum number of results")
	return cmd
}
