package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/coinpurse/internal/cli"
	"github.com/spf13/cobra"
)

func walletsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wallets",
		Short: "List wallets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, true, func(a *app) error {
				if err := a.coord.LoadWallets(ctx); err != nil {
					return err
				}

				wallets := a.coord.Store().Wallets.List()
				if len(wallets) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No wallets found."))
					return nil
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				defer w.Flush()
				fmt.Fprintf(w, "%s\t%s\t\n", cli.BoldStyle.Render("ID"), cli.BoldStyle.Render("Name"))
				for _, wallet := range wallets {
					fmt.Fprintf(w, "%s\t%s\t\n", wallet.ID, wallet.Name)
				}
				return nil
			})
		},
	}
}
