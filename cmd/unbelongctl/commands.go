package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"unbelong-api/config"
	"unbelong-api/database"
	"unbelong-api/internal/app/auth"
	"unbelong-api/internal/app/logging"
	"unbelong-api/internal/domain/media"
	"unbelong-api/internal/domain/pages"
	"unbelong-api/internal/domain/works"
	"unbelong-api/internal/infra/store"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func openStore() (*gorm.DB, error) {
	config.LoadDatabaseEnv()
	return database.Open(config.DB_URL, logging.New(config.LOG_LEVEL))
}

func closeStore(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed the author profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(db)

			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema migrated (%s)\n", db.Dialector.Name())
			return nil
		},
	}
}

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash to use as ADMIN_PASSWORD_HASH",
		Long:  "Hashes the argument, or the first line of stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given")
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password must not be empty")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newIssueTokenCommand() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Mint an admin bearer token without logging in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadAdminEnv()
			if ttl <= 0 {
				ttl = time.Duration(config.ADMIN_TOKEN_TTL_HOURS) * time.Hour
			}
			tokens := auth.TokenService{
				Secret:   []byte(config.ADMIN_JWT_SECRET),
				Issuer:   logging.ServiceName,
				Duration: ttl,
			}
			token, err := tokens.Issue(config.ADMIN_USERNAME, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to ADMIN_TOKEN_TTL_HOURS)")
	return cmd
}

func newPagesCommand() *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "pages <episode>",
		Short: "Show the images an episode renders, in reading order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lookup, ok := works.ResolveAs(args[0], by)
			if !ok {
				return fmt.Errorf("--by must be id or slug, got %q", by)
			}

			db, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(db)

			ep, err := store.New[works.Episode](db, "Episode").Find(cmd.Context(), lookup.Column(), lookup.Token)
			if err != nil {
				return err
			}

			resolve := media.NewURLBuilder(config.IMAGE_BASE_URL).Resolver(media.Options{Width: config.VIEWER_IMAGE_WIDTH})
			res := pages.Default(resolve).Decode(ep.Content)

			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s (%s)\n", ep.ID, ep.EpisodeNumber, ep.Title, res.Format)
			writePages(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "Match the episode by id or slug instead of guessing")
	return cmd
}
