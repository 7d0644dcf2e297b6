package commands

import (
	"fmt"

	"github.com/SscSPs/coop_savings_app/internal/utils"
	"github.com/spf13/cobra"
)

const apiKeyBytes = 32

func newAPIKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apikey",
		Short: "Generate a service API key and the hash to add to SERVICE_API_KEY_HASHES",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := utils.NewServiceAPIKey(apiKeyBytes)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "key:  %s\n", k.Key)
			fmt.Fprintf(out, "hash: %s\n", k.Hash)
			return nil
		},
	}
}
