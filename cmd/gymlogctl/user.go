package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/pkg"

	"github.com/spf13/cobra"
)

const minPasswordLen = 8

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := pkg.HashPassword(args[0])
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			cmd.Println(hash)
			return nil
		},
	}
}

func newUserCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage gymlog users",
	}

	cmd.AddCommand(newUserAddCmd(opts))

	return cmd
}

func newUserAddCmd(opts *rootOptions) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username = strings.TrimSpace(username)
			if username == "" {
				return errors.New("username must not be empty")
			}
			if len(password) < minPasswordLen {
				return fmt.Errorf("password must have at least %d characters", minPasswordLen)
			}

			hash, err := pkg.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			ctx := context.Background()
			pool, err := opts.openDB(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			user, err := auth.NewPsqlUsersRepo(pool).Create(ctx, username, hash)
			if err != nil {
				return err
			}
			cmd.Printf("created user %s with id %d\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "plain text password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
