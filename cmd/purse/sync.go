package main

import (
	"fmt"

	"github.com/Veraticus/coinpurse/internal/cli"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch wallets, categories, and transactions from the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, true, func(a *app) error {
				bar := progressbar.NewOptions(3,
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("Syncing"),
					progressbar.OptionClearOnFinish(),
				)
				err := a.coord.LoadAll(ctx, func(kind string) {
					bar.Describe("Synced " + kind)
					_ = bar.Add(1)
				})
				_ = bar.Finish()
				if err != nil {
					return err
				}

				s := a.coord.Store()
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
					"Synced %d wallets, %d categories, %d transactions",
					s.Wallets.Len(), s.Categories.Len(), s.Transactions.Len())))
				return nil
			})
		},
	}
}
