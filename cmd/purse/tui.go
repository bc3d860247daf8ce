package main

import (
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/Veraticus/coinpurse/internal/tui"
	"github.com/Veraticus/coinpurse/internal/tui/themes"
	"github.com/spf13/cobra"
)

func tuiCmd() *cobra.Command {
	var themeName string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive interface",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, false, func(a *app) error {
				return tui.Run(ctx,
					tui.WithCoordinator(a.coord),
					tui.WithAuth(a.client, a.client),
					tui.WithLoginHook(func(res model.AuthResult) error {
						return a.saveLogin(ctx, res)
					}),
					tui.WithLoggedIn(a.loggedIn()),
					tui.WithTheme(themes.GetTheme(themeName)),
				)
			})
		},
	}

	cmd.Flags().StringVar(&themeName, "theme", "default", "color theme (default, catppuccin-mocha)")
	return cmd
}
