package cli

import (
	"github.com/revisahub/revisahub/internal/chat"
	"github.com/revisahub/revisahub/internal/profile"
)

func (cli *InteractiveCLI) printMessage(p profile.Profile, message chat.Message) {
	if message.Role == chat.RoleUser {
		_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s:", p.Initials())
		if message.HasImage {
			_, _ = cli.faint.Fprint(cli.stdoutWriter, " [Imagem enviada]")
		}
		cli.println()
		if message.Content != "" {
			cli.println(message.Content)
		}
		cli.println()
		return
	}

	_, _ = cli.accent.Fprintln(cli.stdoutWriter, "Mindly:")
	if message.IsErrorPlaceholder() {
		cli.printNotice("%s", message.Content)
	} else {
		cli.printMarkdown(message.Content)
	}
	cli.println()
}

func (cli *InteractiveCLI) printMessages(p profile.Profile, messages []chat.Message) {
	for _, message := range messages {
		cli.printMessage(p, message)
	}
}
