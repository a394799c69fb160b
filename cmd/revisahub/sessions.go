package main

import (
	"context"

	"github.com/revisahub/revisahub/internal/cli"
	"github.com/spf13/cobra"
)

func newSessionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Browse past conversations",
	}
	cmd.AddCommand(
		newSessionsListCommand(),
		newSessionsShowCommand(),
		newSessionsExportCommand(),
	)
	return cmd
}

func newSessionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conversations, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			return env.run(cmd.Context(), func(ctx context.Context) error {
				return cli.RunSessionsList(ctx, cmd.OutOrStdout(), env.client, env.store)
			})
		},
	}
}

func newSessionsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print the messages of a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			return env.run(cmd.Context(), func(ctx context.Context) error {
				renderer, err := env.renderer()
				if err != nil {
					return err
				}
				return cli.RunSessionShow(ctx, cmd.OutOrStdout(), renderer, env.client, env.store, args[0])
			})
		},
	}
}

func newSessionsExportCommand() *cobra.Command {
	var pdf bool
	var outputDir string

	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Write a conversation to a Markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = env.cfg.Storage.ExportDirectory
			}
			return env.run(cmd.Context(), func(ctx context.Context) error {
				return cli.RunSessionExport(ctx, cmd.OutOrStdout(), env.client, env.store, args[0], outputDir, pdf)
			})
		},
	}

	cmd.Flags().BoolVar(&pdf, "pdf", false, "Also convert the Markdown file to PDF")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the exported files (default: storage.export_directory)")
	return cmd
}
