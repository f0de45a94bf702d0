package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/models"
	"github.com/eudistrict/chancery/internal/records"
	"github.com/eudistrict/chancery/internal/storage"
)

// SeedOptions holds the flags of the seed command.
type SeedOptions struct {
	Username string
	Password string
	Name     string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create missing worksheets and the first admin account",
		Long: `Create every worksheet that does not exist yet and write its header.
Worksheets that already have a header are left alone.

When the users worksheet has no rows, an admin account is added with a
bcrypt-hashed password.`,
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
			return runSeed(cmd, store, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Username, "admin-username", "admin", "login name of the first admin")
	cmd.Flags().StringVar(&opts.Password, "admin-password", "", "password of the first admin (required on an empty users worksheet)")
	cmd.Flags().StringVar(&opts.Name, "admin-name", "Administrator", "display name of the first admin")

	return cmd
}

func runSeed(cmd *cobra.Command, store storage.Store, opts *SeedOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	for _, name := range records.Names() {
		ws, err := storage.OpenOrCreate(ctx, store, name)
		if err != nil {
			return err
		}
		header, _ := records.Header(name)
		if err := storage.EnsureHeader(ctx, ws, header); err != nil {
			return err
		}
		fmt.Fprintf(out, "worksheet %-10s ok\n", name)
	}

	users, err := store.Worksheet(ctx, records.Users)
	if err != nil {
		return storage.Wrap("open", records.Users, err)
	}
	_, rows, err := storage.ReadRecords(ctx, users)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		fmt.Fprintf(out, "users worksheet has %d row(s); no admin added\n", len(rows))
		return nil
	}

	if opts.Password == "" {
		return errors.New("--admin-password is required to create the first admin")
	}
	hash, err := auth.HashPassword(opts.Password)
	if err != nil {
		return err
	}
	admin := models.User{
		ID:       uuid.New().String(),
		Username: opts.Username,
		Password: hash,
		Name:     opts.Name,
		Role:     models.RoleAdmin,
	}
	if err := users.AppendRow(ctx, records.EncodeUser(admin)); err != nil {
		return storage.Wrap("append", records.Users, err)
	}
	fmt.Fprintf(out, "admin %q created\n", admin.Username)
	return nil
}
