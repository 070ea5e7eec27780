package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"loanlink-backend/internal/adapter/repository/mysql"
	"loanlink-backend/internal/config"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/infrastructure/auth"
	"loanlink-backend/internal/infrastructure/db"
	userUC "loanlink-backend/internal/usecase/user"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// operator is the actor tooling commands run as.
var operator = user.Actor{Email: "operator@loanlink.local", Role: user.RoleAdmin}

func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*gorm.DB, func(), error) {
	conn, err := db.Connect(ctx, cfg.DB, db.LogLevel(cfg.App.LogLevel), nil)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return conn, closeFn, nil
}

func printJSON(w io.Writer, v any) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users, loans and applications tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			conn, closeFn, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()
			if err := db.Migrate(conn); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for an email",
		Long: `Mint an HS256 bearer token signed with AUTH_JWT_SECRET.

The token only carries the email; the role is read from the user store on
every request.

Examples:
  loanlinkctl token --email ann@example.com
  loanlinkctl token --email ann@example.com --ttl 1h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return fmt.Errorf("AUTH_JWT_SECRET is not set")
			}
			if ttl > 0 {
				cfg.Auth.TokenTTL = ttl
			}
			tok, err := auth.Mint(cfg.Auth, time.Now(), email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email the token identifies")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to AUTH_TOKEN_TTL)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Administer users",
	}
	cmd.AddCommand(userRoleCmd(), userSuspendCmd())
	return cmd
}

// withUsers runs fn against the user use case over a fresh connection.
func withUsers(cmd *cobra.Command, fn func(ctx context.Context, uc *userUC.Usecase) (*userUC.UserDTO, error)) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	conn, closeFn, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	dto, err := fn(cmd.Context(), userUC.NewUsecase(mysql.NewUserRepository(conn)))
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), dto)
}

func userRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "role <user_id> <user|manager|admin>",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUsers(cmd, func(ctx context.Context, uc *userUC.Usecase) (*userUC.UserDTO, error) {
				return uc.SetUserRole(ctx, operator, args[0], user.Role(args[1]))
			})
		},
	}
}

func userSuspendCmd() *cobra.Command {
	var (
		reason string
		lift   bool
	)
	cmd := &cobra.Command{
		Use:   "suspend <user_id>",
		Short: "Suspend a user, or lift a suspension with --lift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUsers(cmd, func(ctx context.Context, uc *userUC.Usecase) (*userUC.UserDTO, error) {
				return uc.SetUserSuspended(ctx, operator, args[0], !lift, reason)
			})
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "reason recorded with the suspension")
	cmd.Flags().BoolVar(&lift, "lift", false, "lift an existing suspension")
	return cmd
}
