package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/coop_savings_app/internal/core/services"
	"github.com/SscSPs/coop_savings_app/internal/platform/metrics"
	"github.com/SscSPs/coop_savings_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/coop_savings_app/pkg/database"
	"github.com/spf13/cobra"
)

// errBalancesDrifted makes the command exit non-zero so schedulers can alert on it.
var errBalancesDrifted = errors.New("stored balances differ from the ledger")

func newReconcileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Compare every stored balance with the sum of its transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}

			dbPool, err := openPool(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer database.ClosePgxPool(dbPool, logger)

			repos := pgsql.NewRepositoryProvider(dbPool, metrics.New(), cfg.TxMaxRetries)
			reconciliation := services.NewReconciliationService(repos.AccountRepo)

			mismatches, err := reconciliation.Reconcile(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, mm := range mismatches {
				fmt.Fprintf(out, "%s\t%s\t%s\tstored=%s\tledger=%s\n",
					mm.AccountID, mm.MemberID, mm.AccountType, mm.StoredBalance, mm.LedgerBalance)
			}
			if len(mismatches) > 0 {
				logger.Error("Reconciliation found drift", slog.Int("accounts", len(mismatches)))
				return errBalancesDrifted
			}
			fmt.Fprintln(out, "all balances match the ledger")
			return nil
		},
	}
}
