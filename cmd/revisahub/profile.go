package main

import (
	"context"

	"github.com/revisahub/revisahub/internal/cli"
	"github.com/spf13/cobra"
)

func newProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or reset the learner profile",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the stored profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := newEnvironment()
				if err != nil {
					return err
				}
				return env.run(cmd.Context(), func(context.Context) error {
					return cli.RunProfileShow(cmd.OutOrStdout(), env.store)
				})
			},
		},
		&cobra.Command{
			Use:   "sync",
			Short: "Replace the stored profile with the one kept by the backend",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := newEnvironment()
				if err != nil {
					return err
				}
				return env.run(cmd.Context(), func(ctx context.Context) error {
					return cli.RunProfileSync(ctx, cmd.OutOrStdout(), env.client, env.store)
				})
			},
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the stored profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := newEnvironment()
				if err != nil {
					return err
				}
				return env.run(cmd.Context(), func(context.Context) error {
					return cli.RunProfileLogout(cmd.OutOrStdout(), env.store)
				})
			},
		},
	)
	return cmd
}
