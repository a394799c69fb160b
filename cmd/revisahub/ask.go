package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/revisahub/revisahub/internal/chat"
	"github.com/revisahub/revisahub/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Subject is a subject flag holding a catalog subject id.
type Subject chat.Subject

func (s *Subject) Set(val string) error {
	subject, ok := chat.FindSubjectByID(val)
	if !ok {
		return fmt.Errorf("invalid subject: %s", val)
	}
	*s = Subject(subject)
	return nil
}

func (s Subject) String() string {
	return s.ID
}

func (s *Subject) Type() string {
	return "subject"
}

var _ pflag.Value = (*Subject)(nil)

func subjectIDs() []string {
	var ids []string
	for _, subject := range chat.Subjects() {
		ids = append(ids, subject.ID)
	}
	return ids
}

func newAskCommand() *cobra.Command {
	var subject Subject
	var imagePath string

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask one question in a new conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject.ID == "" {
				return fmt.Errorf("--subject is required, possible values are %v", subjectIDs())
			}
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" && imagePath == "" {
				return fmt.Errorf("a question or --image is required")
			}

			env, err := newEnvironment()
			if err != nil {
				return err
			}
			return env.run(cmd.Context(), func(ctx context.Context) error {
				renderer, err := env.renderer()
				if err != nil {
					return err
				}
				return cli.RunAsk(ctx, cmd.OutOrStdout(), renderer, env.client, env.store, chat.Subject(subject), text, imagePath)
			})
		},
	}

	cmd.Flags().Var(&subject, "subject", fmt.Sprintf("Subject of the question. Possible values are %v", subjectIDs()))
	cmd.Flags().StringVar(&imagePath, "image", "", "Image to send with the question")
	return cmd
}
