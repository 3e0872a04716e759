package main

import (
	"context"

	"github.com/spf13/cobra"

	linkup "github.com/raezil/linkup-go/linkup"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		req    linkup.SearchRequest
		depth  string
		output string
		schema string
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the web",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Depth = linkup.Depth(depth)
			req.OutputType = linkup.OutputType(output)
			if schema != "" {
				req.StructuredOutputSchema = &schema
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			resp, err := a.client.Search(ctx, req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, a.format)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&req.Q, "query", "q", "", "query text")
	f.StringVar(&depth, "depth", string(linkup.DepthStandard), "depth: standard|deep")
	f.StringVar(&output, "output", string(linkup.OutputSearchResults), "output: sourcedAnswer|searchResults|structured")
	f.StringVar(&req.FromDate, "from", "", "from date YYYY-MM-DD")
	f.StringVar(&req.ToDate, "to", "", "to date YYYY-MM-DD")
	f.StringSliceVar(&req.IncludeDomains, "include", nil, "comma-separated include domains")
	f.StringSliceVar(&req.ExcludeDomains, "exclude", nil, "comma-separated exclude domains")
	f.BoolVar(&req.IncludeImages, "images", false, "include images")
	f.BoolVar(&req.IncludeInlineCitations, "inline", false, "include inline citations")
	f.BoolVar(&req.IncludeSources, "sources", false, "include sources in structured response")
	f.StringVar(&schema, "schema", "", "structured output schema (JSON string)")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}
