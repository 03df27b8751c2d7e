package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/citrushq/citrus-ledger/internal/cli"
	"github.com/citrushq/citrus-ledger/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage vault accounts",
		Long:  `List, add, rename, and delete the vault accounts in your ledger.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(updateAccountCmd())
	cmd.AddCommand(deleteAccountCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			accounts := eng.Accounts()
			if len(accounts) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No accounts yet. Use 'citrus accounts add' to create one."))
				return nil
			}

			code, err := eng.Currency(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() {
				_ = w.Flush()
			}()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Balance"))

			for _, acc := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					acc.ID, acc.Name, acc.Type, formatMoney(acc.Balance, code))
			}

			return nil
		},
	}
}

func addAccountCmd() *cobra.Command {
	var (
		balanceStr  string
		accountType string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			balance, err := decimal.NewFromString(balanceStr)
			if err != nil {
				return fmt.Errorf("invalid balance %q: %w", balanceStr, err)
			}

			eng, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			account, err := eng.AddAccount(ctx, model.AccountDraft{
				Name:    strings.TrimSpace(args[0]),
				Balance: balance,
				Type:    accountType,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added account %s (%s)", account.Name, account.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&balanceStr, "balance", "0", "opening balance")
	cmd.Flags().StringVar(&accountType, "type", "type-3", "account type id")

	return cmd
}

func updateAccountCmd() *cobra.Command {
	var (
		name        string
		accountType string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an account's name or type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := eng.UpdateAccount(ctx, args[0], model.AccountDraft{Name: name, Type: accountType}); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Account updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new account name")
	cmd.Flags().StringVar(&accountType, "type", "", "new account type id")

	return cmd
}

func deleteAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account and all of its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := eng.DeleteAccount(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Account and its transactions deleted"))
			return nil
		},
	}
}
