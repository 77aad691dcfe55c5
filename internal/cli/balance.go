package cli

import (
	"encoding/json"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/api"
	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
)

func balanceCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <group-id>",
		Short: "Print a group's balance as JSON from the local database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.New(opts.cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := service.NewLedgerService(store, nil)
			resp, err := svc.GetGroupBalance(cmd.Context(), connect.NewRequest(&api.GetGroupBalanceRequest{GroupId: args[0]}))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp.Msg)
		},
	}
}
