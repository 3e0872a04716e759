package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the remaining credits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			bal, err := a.client.GetBalance(ctx)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), bal, a.format)
		},
	}
}
