package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Veraticus/coinpurse/internal/cli"
	"github.com/Veraticus/coinpurse/internal/filter"
	"github.com/Veraticus/coinpurse/internal/form"
	"github.com/Veraticus/coinpurse/internal/icons"
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/Veraticus/coinpurse/internal/validation"
	"github.com/spf13/cobra"
)

var categoryFlags = fieldFlags{
	{name: "name", usage: "category name", field: validation.CategoryName},
	{name: "type", usage: "income or expense", field: validation.CategoryType},
	{name: "icon", usage: "icon key (food, transport, shopping, ...)", field: validation.Icon},
	{name: "color", usage: "hex color, e.g. #6366F1", field: validation.Color},
}

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage income and expense categories",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := filter.ParseCategorySelection(typeFilter)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return withApp(ctx, true, func(a *app) error {
				if err := a.coord.LoadCategories(ctx); err != nil {
					return err
				}

				categories := filter.Categories(a.coord.Store().Categories.List(), sel)
				if len(categories) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No categories found. Use 'purse categories add' to create one."))
					return nil
				}
				printCategories(cmd.OutOrStdout(), categories)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&typeFilter, "type", string(filter.TypeAll), "filter by type (all, income, expense)")
	return cmd
}

func printCategories(out io.Writer, categories []model.Category) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
		cli.BoldStyle.Render("ID"),
		cli.BoldStyle.Render(" "),
		cli.BoldStyle.Render("Name"),
		cli.BoldStyle.Render("Type"),
		cli.BoldStyle.Render("Color"))
	for _, c := range categories {
		name := c.Name
		if c.IsDefault {
			name += cli.SubtleStyle.Render(" (default)")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", c.ID, icons.Resolve(c.Icon).Glyph, name, c.Type, c.Color)
	}
}

func addCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, true, func(a *app) error {
				f := form.NewCategoryForm()
				if err := categoryFlags.apply(cmd, f.OnChange); err != nil {
					return err
				}
				return saveCategory(ctx, cmd, a, f, "")
			})
		},
	}
	categoryFlags.register(cmd)
	return cmd
}

func updateCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withApp(ctx, true, func(a *app) error {
				if err := a.coord.LoadCategories(ctx); err != nil {
					return err
				}
				existing, ok := a.coord.Store().Category(args[0])
				if !ok {
					return fmt.Errorf("category %q not found", args[0])
				}

				f := form.NewCategoryForm()
				form.LoadCategory(f, existing)
				if err := categoryFlags.apply(cmd, f.OnChange); err != nil {
					return err
				}
				return saveCategory(ctx, cmd, a, f, existing.ID)
			})
		},
	}
	categoryFlags.register(cmd)
	return cmd
}

func saveCategory(ctx context.Context, cmd *cobra.Command, a *app, f *form.Controller[validation.Field], id string) error {
	var saved model.Category
	err := submit(ctx, cmd.ErrOrStderr(), f, func(ctx context.Context, v form.Values[validation.Field]) error {
		var err error
		if id == "" {
			saved, err = a.coord.CreateCategory(ctx, form.CategoryInput(v))
		} else {
			saved, err = a.coord.UpdateCategory(ctx, id, form.CategoryInput(v))
		}
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved category %s %s (%s)", icons.Resolve(saved.Icon).Glyph, saved.Name, saved.ID)))
	return nil
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long:  `Delete a category. Default categories cannot be deleted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withApp(ctx, true, func(a *app) error {
				// Loading first lets the default-category guard see the flag.
				if err := a.coord.LoadCategories(ctx); err != nil {
					return err
				}
				if err := a.coord.DeleteCategory(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Category deleted"))
				return nil
			})
		},
	}
}
