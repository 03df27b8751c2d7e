package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/citrushq/citrus-ledger/internal/cli"
	"github.com/citrushq/citrus-ledger/internal/model"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
		Long:    `Add, list, and delete income and expense transactions.`,
	}

	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(deleteTransactionCmd())
	cmd.AddCommand(clearTransactionsCmd())

	return cmd
}

func addTransactionCmd() *cobra.Command {
	var (
		accountID   string
		txType      string
		amountStr   string
		category    string
		description string
		dateStr     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountStr, err)
			}
			if txType != string(model.TypeIncome) && txType != string(model.TypeExpense) {
				return fmt.Errorf("invalid type %q: must be income or expense", txType)
			}

			var date time.Time
			if dateStr != "" {
				date, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", dateStr, err)
				}
			}

			eng, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			txn, err := eng.AddTransaction(ctx, model.TransactionDraft{
				AccountID:   accountID,
				Type:        model.TransactionType(txType),
				Amount:      amount,
				Category:    category,
				Description: description,
				Date:        date,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s (%s)", txn.Type, amountStr, txn.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account id (required)")
	cmd.Flags().StringVar(&txType, "type", "expense", "transaction type (income, expense)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "positive amount (required)")
	cmd.Flags().StringVar(&category, "category", "General", "category label")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	cmd.Flags().StringVar(&dateStr, "date", "", "date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			transactions := eng.Transactions()
			if len(transactions) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions yet."))
				return nil
			}
			if limit > 0 && len(transactions) > limit {
				transactions = transactions[:limit]
			}

			code, err := eng.Currency(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() {
				_ = w.Flush()
			}()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Account"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Amount"))

			for _, txn := range transactions {
				amount := formatMoney(txn.Amount, code)
				if txn.Type == model.TypeExpense {
					amount = "-" + amount
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					txn.ID, txn.Date.Format("2006-01-02"), txn.AccountID, txn.Type, txn.Category, amount)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 25, "maximum rows to show (0 for all)")

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete one or more transactions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if len(args) == 1 {
				err = eng.DeleteTransaction(ctx, args[0])
			} else {
				err = eng.BulkDeleteTransactions(ctx, args)
			}
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %d transaction(s)", len(args))))
			return nil
		},
	}
}

func clearTransactionsCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !confirmed {
				return fmt.Errorf("refusing to delete all transactions without --yes")
			}

			eng, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := eng.DeleteAllTransactions(ctx); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("All transactions deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deletion of every transaction")

	return cmd
}
