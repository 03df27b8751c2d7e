package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/citrushq/citrus-ledger/internal/cli"
)

func resetCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe the ledger",
		Long:  `Delete all data. Authenticated sessions wipe the backend and refetch; guest sessions clear the local snapshot.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !confirmed {
				return fmt.Errorf("refusing to reset without --yes")
			}

			eng, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := eng.ResetData(ctx); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Ledger reset"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm wiping all data")

	return cmd
}
