package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Renderer turns assistant markdown into terminal text.
type Renderer interface {
	Render(markdown string) (string, error)
}

type plainRenderer struct{}

func (plainRenderer) Render(markdown string) (string, error) {
	return markdown, nil
}

// NewRenderer returns a glamour renderer, or one that prints markdown verbatim when disabled.
func NewRenderer(markdown bool, wordWrap int) (Renderer, error) {
	if !markdown {
		return plainRenderer{}, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, fmt.Errorf("glamour.NewTermRenderer() > %w", err)
	}
	return renderer, nil
}
