package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/citrushq/citrus-ledger/internal/cli"
	"github.com/citrushq/citrus-ledger/internal/projection"
)

func statsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		Long:  `Display the total balance, this month's income and expenses, and a daily spending series. Transfers are excluded from all aggregates.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			code, err := eng.Currency(ctx)
			if err != nil {
				return err
			}

			now := time.Now()
			stats := projection.ComputeStats(eng.Accounts(), eng.Transactions(), now)

			fmt.Println(cli.FormatTitle("Citrus Ledger"))
			fmt.Printf("Total balance:    %s\n", formatMoney(stats.TotalBalance, code))
			fmt.Printf("Income (month):   %s\n", cli.SuccessStyle.Render(formatMoney(stats.MonthlyIncome, code)))
			fmt.Printf("Expenses (month): %s\n", cli.ErrorStyle.Render(formatMoney(stats.MonthlyExpenses, code)))

			series := projection.ComputeSeries(eng.Transactions(), days, 1, now)
			if len(series) == 0 {
				return nil
			}

			fmt.Println()
			for _, bucket := range series {
				fmt.Printf("%-8s in %-14s out %s\n",
					bucket.Label,
					formatMoney(bucket.Income, code),
					formatMoney(bucket.Expenses, code))
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "number of daily buckets in the series")

	return cmd
}
