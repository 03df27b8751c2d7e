package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/citrushq/citrus-ledger/internal/cli"
	"github.com/citrushq/citrus-ledger/internal/common"
	"github.com/citrushq/citrus-ledger/internal/engine"
	"github.com/citrushq/citrus-ledger/internal/remote"
	"github.com/citrushq/citrus-ledger/internal/snapshot"
)

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push guest data into your account",
		Long: `Run the guest-to-account handshake: locally stored guest data is pushed to
the backend once, then the authoritative ledger is fetched. On failure the
guest data is kept so nothing is lost; run sync again to retry.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			user := identity()
			if user == nil {
				return fmt.Errorf("%w: api.token is required to sync", common.ErrMissingConfig)
			}

			path, err := snapshotPath()
			if err != nil {
				return err
			}
			store, err := snapshot.NewStore(path)
			if err != nil {
				return fmt.Errorf("failed to open snapshot store: %w", err)
			}
			defer func() {
				_ = store.Close()
			}()

			client := remote.NewClient(viper.GetString("api.url"), viper.GetString("api.token"))
			eng := engine.New(client, store)

			// The handshake only fires on a guest-to-account transition, so
			// start the session in guest mode before logging in.
			if err := eng.Activate(ctx, nil); err != nil {
				return err
			}
			if err := eng.Activate(ctx, user); err != nil {
				if errors.Is(err, common.ErrSyncFailed) {
					fmt.Println(cli.FormatWarning("Sync failed; guest data kept for a later retry"))
					return nil
				}
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Synced. Ledger now has %d account(s) and %d transaction(s)",
				len(eng.Accounts()), len(eng.Transactions()))))
			return nil
		},
	}
}
