package main

import (
	"context"
	"fmt"

	"github.com/revisahub/revisahub/internal/app"
	"github.com/revisahub/revisahub/internal/cli"
	"github.com/revisahub/revisahub/internal/onboarding"
	"github.com/revisahub/revisahub/internal/profile"
	"github.com/spf13/cobra"
)

func newStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Open the tutor: onboarding on the first visit, the chat afterwards",
		Args:  cobra.NoArgs,
		RunE:  runStart,
	}
}

func runStart(cmd *cobra.Command, args []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	return env.run(cmd.Context(), func(ctx context.Context) error {
		steps, err := onboarding.CatalogByName(env.cfg.Onboarding.Catalog)
		if err != nil {
			return fmt.Errorf("onboarding.CatalogByName() > %w", err)
		}
		renderer, err := env.renderer()
		if err != nil {
			return err
		}

		appController := app.NewController(env.store, profile.NewCreator(env.client, env.store))
		appController.Bootstrap()
		session := cli.NewTutorSession(
			cmd.InOrStdin(),
			cmd.OutOrStdout(),
			renderer,
			appController,
			env.client,
			steps,
			env.cfg.Storage.ExportDirectory,
		)
		return session.Run(ctx, session)
	})
}
