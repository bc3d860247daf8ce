package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/coinpurse/internal/aggregate"
	"github.com/Veraticus/coinpurse/internal/cli"
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show income, expense, and category totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, true, func(a *app) error {
				if err := a.coord.LoadAll(ctx, nil); err != nil {
					return err
				}
				s := a.coord.Store()
				printSummary(cmd.OutOrStdout(),
					aggregate.Summarize(s.Transactions.List()),
					aggregate.CountCategories(s.Categories.List()))
				return nil
			})
		},
	}
}

func printSummary(w io.Writer, sum aggregate.Summary, counts aggregate.CategoryCounts) {
	net := cli.FormatAmount(model.TransactionTypeIncome, sum.Net)
	if sum.Net.IsNegative() {
		net = cli.FormatAmount(model.TransactionTypeExpense, sum.Net.Neg())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-14s %s\n", "Income:", cli.FormatAmount(model.TransactionTypeIncome, sum.Income))
	fmt.Fprintf(&b, "%-14s %s\n", "Expense:", cli.FormatAmount(model.TransactionTypeExpense, sum.Expense))
	fmt.Fprintf(&b, "%-14s %s\n", "Net:", net)
	fmt.Fprintf(&b, "%-14s %d\n\n", "Transactions:", sum.Count)
	fmt.Fprintf(&b, "%-14s %d income, %d expense", "Categories:", counts.Income, counts.Expense)

	fmt.Fprintln(w, cli.RenderBox("Summary", b.String()))
}
