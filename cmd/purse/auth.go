package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/coinpurse/internal/cli"
	"github.com/Veraticus/coinpurse/internal/form"
	"github.com/Veraticus/coinpurse/internal/recovery"
	"github.com/Veraticus/coinpurse/internal/validation"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginFlags = fieldFlags{
	{name: "email", usage: "account email", field: validation.Email},
	{name: "password", usage: "account password", field: validation.Password},
}

var registerFlags = fieldFlags{
	{name: "name", usage: "display name", field: validation.Name},
	{name: "email", usage: "account email", field: validation.Email},
	{name: "password", usage: "account password", field: validation.Password},
	{name: "confirm", usage: "repeat the password", field: validation.ConfirmPassword},
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		Long: `Log in to the finance API. Without flags you are prompted for your email
and password.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, false, func(a *app) error {
				f := form.NewLoginForm()
				if err := fill(ctx, cmd, loginFlags, f); err != nil {
					return err
				}

				err := submit(ctx, cmd.ErrOrStderr(), f, func(ctx context.Context, v form.Values[validation.Field]) error {
					res, err := a.client.Login(ctx, strings.TrimSpace(v[validation.Email]), v[validation.Password])
					if err != nil {
						return err
					}
					return a.saveLogin(ctx, res)
				})
				if err != nil {
					return err
				}

				cur, _ := a.holder.Current()
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged in as "+cur.User.Email))
				return nil
			})
		},
	}
	loginFlags.register(cmd)
	return cmd
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, false, func(a *app) error {
				f := form.NewRegisterForm()
				if err := fill(ctx, cmd, registerFlags, f); err != nil {
					return err
				}

				err := submit(ctx, cmd.ErrOrStderr(), f, func(ctx context.Context, v form.Values[validation.Field]) error {
					res, err := a.client.Register(ctx,
						strings.TrimSpace(v[validation.Name]),
						strings.TrimSpace(v[validation.Email]),
						v[validation.Password])
					if err != nil {
						return err
					}
					return a.saveLogin(ctx, res)
				})
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Account created"))
				return nil
			})
		},
	}
	registerFlags.register(cmd)
	return cmd
}

// fill takes values from flags when any were given and prompts otherwise.
func fill(ctx context.Context, cmd *cobra.Command, flags fieldFlags, f *form.Controller[validation.Field]) error {
	given := false
	for _, ff := range flags {
		given = given || cmd.Flags().Changed(ff.name)
	}
	if given {
		return flags.apply(cmd, f.OnChange)
	}
	return newPrompter(cmd).Fill(ctx, f)
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, false, func(a *app) error {
				if err := a.sessions.Clear(ctx); err != nil {
					return err
				}
				a.holder.Clear()
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged out"))
				return nil
			})
		},
	}
}

func recoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recover",
		Short: "Reset a forgotten password",
		Long: `Walk through password recovery: request a verification code by email,
enter the code, then choose a new password.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			handler := cli.NewInterruptHandler(cmd.OutOrStdout())
			ctx, cancel := handler.HandleInterrupts(cmd.Context(), "Run 'purse recover' to start over.")
			defer cancel()

			return withApp(ctx, false, func(a *app) error {
				p := newPrompter(cmd)
				err := p.RunRecovery(ctx, recovery.NewWizard(a.client))
				if handler.WasInterrupted() {
					return nil
				}
				return err
			})
		},
	}
}

// newPrompter reads passwords without echo when input is a terminal.
func newPrompter(cmd *cobra.Command) *cli.Prompter {
	in := cmd.InOrStdin()
	p := cli.NewPrompter(in, cmd.OutOrStdout())
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.SetSecretReader(cli.TerminalSecretReader(int(f.Fd())))
	}
	return p
}
