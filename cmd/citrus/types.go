package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/citrushq/citrus-ledger/internal/cli"
	"github.com/citrushq/citrus-ledger/internal/model"
)

func typesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Manage account types",
		Long:  `List, add, and delete account types. The four built-in types cannot be deleted.`,
	}

	cmd.AddCommand(listTypesCmd())
	cmd.AddCommand(addTypeCmd())
	cmd.AddCommand(deleteTypeCmd())

	return cmd
}

func listTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List account types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() {
				_ = w.Flush()
			}()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Label"),
				cli.TableHeaderStyle.Render("Theme"),
				cli.TableHeaderStyle.Render(""))

			for _, t := range eng.AccountTypes() {
				marker := ""
				if model.IsDefaultAccountType(t.ID) {
					marker = cli.SubtleStyle.Render("built-in")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Label, t.Theme, marker)
			}

			return nil
		},
	}
}

func addTypeCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add a custom account type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			accountType, err := eng.AddAccountType(ctx, args[0], theme)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added type %s (%s)", accountType.Label, accountType.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "blue", "visual theme tag")

	return cmd
}

func deleteTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom account type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := eng.DeleteAccountType(ctx, args[0]); err != nil {
				return err
			}

			// Built-in defaults are silently ignored upstream, so a plain
			// confirmation is all there is to report.
			fmt.Println(cli.FormatSuccess("Done"))
			return nil
		},
	}
}
