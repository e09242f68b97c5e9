// commands.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mentora-hub/models"
	"mentora-hub/services"
	"mentora-hub/store"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			return runServer(ctx, app)
		},
	}
}

func promoteCmd() *cobra.Command {
	var uid string
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Grant the admin role to a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setRole(cmd.Context(), uid, models.RoleAdmin)
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "user id to promote")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}

func demoteCmd() *cobra.Command {
	var uid string
	cmd := &cobra.Command{
		Use:   "demote",
		Short: "Return a user to the student role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setRole(cmd.Context(), uid, models.RoleStudent)
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "user id to demote")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}

// setRole edits users/{uid} directly. The dashboard's self-demotion guard
// does not apply here since the CLI has no signed-in actor.
func setRole(ctx context.Context, uid string, role models.Role) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s := openStore(ctx, cfg)
	if d, off := s.(store.Disabled); off {
		return fmt.Errorf("cannot change roles: %s", d.Reason)
	}

	users := services.NewUserService(s, nil)
	if err := users.SetRole(ctx, uid, role); err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	fmt.Printf("%s is now %s\n", uid, role)
	return nil
}
