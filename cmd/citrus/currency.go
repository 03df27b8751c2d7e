package main

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/spf13/cobra"

	"github.com/citrushq/citrus-ledger/internal/cli"
)

func currencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currency [code]",
		Short: "Show or set the display currency",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if len(args) == 0 {
				code, err := eng.Currency(ctx)
				if err != nil {
					return err
				}
				fmt.Println(code)
				return nil
			}

			code := strings.ToUpper(args[0])
			if money.GetCurrency(code) == nil {
				return fmt.Errorf("unknown currency code %q", code)
			}
			if err := eng.SetCurrency(ctx, code); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Display currency set to " + code))
			return nil
		},
	}
}
