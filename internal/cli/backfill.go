package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eudistrict/chancery/internal/records"
	"github.com/eudistrict/chancery/internal/storage"
	"github.com/eudistrict/chancery/internal/workflow"
)

// NewBackfillCommand creates the backfill-ids command.
func NewBackfillCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-ids [worksheet...]",
		Short: "Give an id to every hand-entered row that lacks one",
		Long: `Rows typed straight into a worksheet have no id and cannot be
approved or advanced until they get one. With no arguments every
worksheet is processed.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			store, err := openStore(cfg, nil)
			if err != nil {
				return err
			}
			defer store.Close()
			return runBackfill(cmd, store, args)
		},
	}
}

func runBackfill(cmd *cobra.Command, store storage.Store, tables []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if len(tables) == 0 {
		tables = records.Names()
	}

	engine := workflow.New(store)
	for _, table := range tables {
		if _, ok := records.Headers[table]; !ok {
			return fmt.Errorf("unknown worksheet %q", table)
		}
		n, err := engine.BackfillIDs(ctx, operator, table)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d id(s) written\n", table, n)
	}
	return nil
}
