package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/citrushq/citrus-ledger/internal/cli"
	"github.com/citrushq/citrus-ledger/internal/common"
	"github.com/citrushq/citrus-ledger/internal/model"
)

func transferCmd() *cobra.Command {
	var (
		source      string
		target      string
		amountStr   string
		description string
		dateStr     string
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move funds between two accounts",
		Long:  `Create a balance-neutral transfer: an expense on the source account and an income on the target account.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountStr, err)
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

			err = eng.TransferFunds(ctx, model.TransferDraft{
				SourceAccountID: source,
				TargetAccountID: target,
				Amount:          amount,
				Date:            date,
				Description:     description,
			})
			if err != nil {
				var ve *common.ValidationError
				if errors.As(err, &ve) {
					fmt.Println(cli.FormatWarning(ve.Err.Error()))
					return nil
				}
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Transferred %s from %s to %s", amountStr, source, target)))
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "from", "", "source account id (required)")
	cmd.Flags().StringVar(&target, "to", "", "target account id (required)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "positive amount (required)")
	cmd.Flags().StringVar(&description, "description", "", "transfer description")
	cmd.Flags().StringVar(&dateStr, "date", "", "date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
