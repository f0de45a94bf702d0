package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eudistrict/chancery/internal/records"
	"github.com/eudistrict/chancery/internal/storage"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Test the record store connection and list registered users",
		Long: `Open the users worksheet and print every row with the password
hidden. A failure prints the underlying error so credentials, sharing
and spreadsheet ids can be fixed.`,
		Args:         cobra.NoArgs,
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
			return runCheck(cmd, store)
		},
	}
}

func runCheck(cmd *cobra.Command, store storage.Store) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ws, err := store.Worksheet(ctx, records.Users)
	if err != nil {
		return fmt.Errorf("connection failed: %w", storage.Wrap("open", records.Users, err))
	}
	header, rows, err := storage.ReadRecords(ctx, ws)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	if err := records.CheckHeader(records.Users, header); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "connected: %d user row(s)\n", len(rows))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tUSERNAME\tNAME\tROLE\tPASSWORD")
	for _, r := range rows {
		password := ""
		if r.Get("password") != "" {
			password = "********"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Row, r.Get("username"), r.Get("name"), r.Get("role"), password)
	}
	return tw.Flush()
}
