package main

import (
	"context"

	"github.com/spf13/cobra"

	linkup "github.com/raezil/linkup-go/linkup"
)

func newFetchCmd(a *app) *cobra.Command {
	var req linkup.FetchRequest
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a web page as markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			resp, err := a.client.Fetch(ctx, req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, a.format)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.URL, "url", "", "URL to fetch")
	f.BoolVar(&req.IncludeRawHTML, "rawhtml", false, "include raw HTML")
	f.BoolVar(&req.RenderJS, "render", false, "render JavaScript")
	f.BoolVar(&req.ExtractImages, "images", false, "extract images")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
