package main

import (
	"context"
	"io"

	"github.com/Veraticus/coinpurse/internal/cli"
	"github.com/Veraticus/coinpurse/internal/form"
	"github.com/Veraticus/coinpurse/internal/validation"
	"github.com/spf13/cobra"
)

// fieldFlag binds a form field to the flag that fills it.
type fieldFlag struct {
	name  string
	usage string
	field validation.Field
}

// fieldFlags are applied in order, so a type flag listed first is set
// before the fields that depend on it.
type fieldFlags []fieldFlag

func (ff fieldFlags) register(cmd *cobra.Command) {
	for _, f := range ff {
		cmd.Flags().String(f.name, "", f.usage)
	}
}

// apply copies every flag the user set into the form. Unset flags keep the
// form's current value so edits only touch what was asked for.
func (ff fieldFlags) apply(cmd *cobra.Command, set func(validation.Field, string)) error {
	for _, f := range ff {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		value, err := cmd.Flags().GetString(f.name)
		if err != nil {
			return err
		}
		set(f.field, value)
	}
	return nil
}

// submit runs a form submission and prints inline field errors, if any.
func submit(ctx context.Context, w io.Writer, f *form.Controller[validation.Field], fn func(context.Context, form.Values[validation.Field]) error) error {
	err := f.Submit(ctx, fn)
	cli.PrintFieldErrors(w, err)
	return err
}
