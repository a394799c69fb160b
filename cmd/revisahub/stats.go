package main

import (
	"context"

	"github.com/revisahub/revisahub/internal/cli"
	"github.com/spf13/cobra"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show study progress and streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			return env.run(cmd.Context(), func(ctx context.Context) error {
				return cli.RunStats(ctx, cmd.OutOrStdout(), env.client, env.store)
			})
		},
	}
}
