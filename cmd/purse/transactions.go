package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/coinpurse/internal/cli"
	"github.com/Veraticus/coinpurse/internal/filter"
	"github.com/Veraticus/coinpurse/internal/form"
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/Veraticus/coinpurse/internal/store"
	"github.com/Veraticus/coinpurse/internal/validation"
	"github.com/spf13/cobra"
)

// The type flag comes first so switching type clears the category before a
// new one is applied.
var transactionFlags = fieldFlags{
	{name: "type", usage: "income, expense, or transfer", field: validation.TransactionType},
	{name: "amount", usage: "positive amount, e.g. 42.50", field: validation.Amount},
	{name: "wallet", usage: "wallet id (income and expense)", field: validation.WalletID},
	{name: "category", usage: "category id (income and expense)", field: validation.CategoryID},
	{name: "from", usage: "source wallet id (transfer)", field: validation.FromWalletID},
	{name: "to", usage: "destination wallet id (transfer)", field: validation.ToWalletID},
	{name: "date", usage: "date as YYYY-MM-DD (default today)", field: validation.Date},
	{name: "notes", usage: "free-form notes", field: validation.Notes},
	{name: "attachment", usage: "receipt reference", field: validation.Attachment},
}

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(updateTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var typeFilter, windowFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := filter.ParseTypeSelection(typeFilter)
			if err != nil {
				return err
			}
			window, err := filter.ParseWindow(windowFilter)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return withApp(ctx, true, func(a *app) error {
				if err := a.coord.LoadAll(ctx, nil); err != nil {
					return err
				}

				s := a.coord.Store()
				txns := filter.Transactions(s.Transactions.List(), sel, window, time.Now())
				if len(txns) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No transactions match the current filters."))
					return nil
				}
				printTransactions(cmd.OutOrStdout(), s, txns)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&typeFilter, "type", string(filter.TypeAll), "filter by type (all, income, expense, transfer)")
	cmd.Flags().StringVar(&windowFilter, "window", string(filter.WindowAll), "filter by time (all, today, week, month)")
	return cmd
}

func printTransactions(out io.Writer, s *store.Store, txns []model.Transaction) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
		cli.BoldStyle.Render("ID"),
		cli.BoldStyle.Render("Date"),
		cli.BoldStyle.Render("Type"),
		cli.BoldStyle.Render("Amount"),
		cli.BoldStyle.Render("Category"),
		cli.BoldStyle.Render("Wallet"),
		cli.BoldStyle.Render("Notes"))
	for _, t := range txns {
		category, wallet := "", s.WalletName(t.WalletID)
		if t.Type.IsTransfer() {
			wallet = s.WalletName(t.FromWalletID) + " → " + s.WalletName(t.ToWalletID)
		} else if c, ok := s.Category(t.CategoryID); ok {
			category = c.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			t.ID, t.Date.Format(validation.DateLayout), t.Type,
			cli.FormatAmount(t.Type, t.Amount), category, wallet, t.Notes)
	}
}

func addTransactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, true, func(a *app) error {
				// Categories are needed to check the category matches the type.
				if err := a.coord.LoadAll(ctx, nil); err != nil {
					return err
				}
				f := form.NewTransactionForm(a.coord.Store().Category)
				if err := transactionFlags.apply(cmd, f.OnChange); err != nil {
					return err
				}
				return saveTransaction(ctx, cmd, a, f, "")
			})
		},
	}
	transactionFlags.register(cmd)
	return cmd
}

func updateTransactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withApp(ctx, true, func(a *app) error {
				if err := a.coord.LoadAll(ctx, nil); err != nil {
					return err
				}
				existing, ok := a.coord.Store().Transactions.Get(args[0])
				if !ok {
					return fmt.Errorf("transaction %q not found", args[0])
				}

				f := form.NewTransactionForm(a.coord.Store().Category)
				f.LoadTransaction(existing)
				if err := transactionFlags.apply(cmd, f.OnChange); err != nil {
					return err
				}
				return saveTransaction(ctx, cmd, a, f, existing.ID)
			})
		},
	}
	transactionFlags.register(cmd)
	return cmd
}

func saveTransaction(ctx context.Context, cmd *cobra.Command, a *app, f *form.TransactionForm, id string) error {
	var saved model.Transaction
	err := submit(ctx, cmd.ErrOrStderr(), f.Controller, func(ctx context.Context, v form.Values[validation.Field]) error {
		in, err := form.TransactionInput(v, time.Now())
		if err != nil {
			return err
		}
		if id == "" {
			saved, err = a.coord.CreateTransaction(ctx, in)
		} else {
			saved, err = a.coord.UpdateTransaction(ctx, id, in)
		}
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved %s %s (%s)", saved.Type, saved.Amount.StringFixed(2), saved.ID)))
	return nil
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withApp(ctx, true, func(a *app) error {
				if err := a.coord.DeleteTransaction(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Transaction deleted"))
				return nil
			})
		},
	}
}
