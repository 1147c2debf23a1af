package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/cloudscape-mcp/internal/searcher"
)

type searchFlags struct {
	category  string
	tags      []string
	limit     int
	offset    int
	fuzzy     bool
	threshold float64
	sortBy    string
	order     string
	json      bool
}

func newSearchCmd(opts *options) *cobra.Command {
	f := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search components by relevance",
		Long: `Search the component catalogue the way the search_components tool does.
An empty query lists every component that passes the filters.`,
		Example: `  cloudscape-mcp search button
  cloudscape-mcp search --category layout --sort-by name
  cloudscape-mcp search buton --fuzzy --json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.order != searcher.SortAsc && f.order != searcher.SortDesc {
				return fmt.Errorf("--order must be %q or %q", searcher.SortAsc, searcher.SortDesc)
			}

			srv, err := openCatalog(cmd, opts)
			if err != nil {
				return err
			}
			defer srv.Close()

			results := searcher.New(srv.Registry()).Search(searcher.SearchOptions{
				Query:          strings.Join(args, " "),
				Category:       f.category,
				Tags:           f.tags,
				Limit:          &f.limit,
				Offset:         f.offset,
				FuzzyMatch:     f.fuzzy,
				FuzzyThreshold: &f.threshold,
				SortBy:         f.sortBy,
				SortOrder:      f.order,
			})

			if f.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			return printResults(cmd, results)
		},
	}

	cmd.Flags().StringVarP(&f.category, "category", "c", "", "only components in this category")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "only components with any of these tags (repeatable)")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", searcher.DefaultLimit, "maximum results")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "results to skip")
	cmd.Flags().BoolVar(&f.fuzzy, "fuzzy", false, "match by edit-distance similarity")
	cmd.Flags().Float64Var(&f.threshold, "threshold", searcher.DefaultFuzzyThreshold, "fuzzy similarity threshold")
	cmd.Flags().StringVar(&f.sortBy, "sort-by", string(searcher.FieldRelevance), "relevance, name or category")
	cmd.Flags().StringVar(&f.order, "order", searcher.SortDesc, "asc or desc")
	cmd.Flags().BoolVar(&f.json, "json", false, "print results as JSON")
	return cmd
}

func printResults(cmd *cobra.Command, results *searcher.SearchResults) error {
	out := cmd.OutOrStdout()
	if len(results.Results) == 0 {
		_, err := fmt.Fprintln(out, "No components found.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tRELEVANCE\tDESCRIPTION")
	for _, r := range results.Results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", r.ID, r.Name, r.Category, r.Relevance, r.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\n%d of %d results\n", len(results.Results), results.TotalResults)
	return err
}
