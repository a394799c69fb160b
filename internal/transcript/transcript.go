// Package transcript exports a chat session as Markdown or PDF.
package transcript

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mandolyte/mdtopdf"
	"github.com/revisahub/revisahub/internal/chat"
)

type Transcript struct {
	SessionID   string
	Title       string
	Subject     string
	LearnerName string
	Messages    []chat.Message
}

const timestampLayout = "02/01/2006 15:04"

// Markdown renders the transcript. Assistant messages are already Markdown and are kept as is.
func (transcript Transcript) Markdown() []byte {
	var buf bytes.Buffer

	title := transcript.Title
	if title == "" {
		title = transcript.SessionID
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)
	if transcript.Subject != "" {
		fmt.Fprintf(&buf, "- Matéria: %s\n", transcript.Subject)
	}
	fmt.Fprintf(&buf, "- Sessão: `%s`\n\n", transcript.SessionID)

	for _, message := range transcript.Messages {
		buf.WriteString("---\n\n")
		author := "Mindly"
		if message.Role == chat.RoleUser {
			author = "Você"
			if transcript.LearnerName != "" {
				author = transcript.LearnerName
			}
		}
		if message.Timestamp.IsZero() {
			fmt.Fprintf(&buf, "### %s\n\n", author)
		} else {
			fmt.Fprintf(&buf, "### %s (%s)\n\n", author, message.Timestamp.In(time.Local).Format(timestampLayout))
		}
		if message.HasImage {
			buf.WriteString("_Imagem enviada_\n\n")
		}
		content := strings.TrimSpace(message.Content)
		if content != "" {
			buf.WriteString(content)
			buf.WriteString("\n\n")
		}
	}
	return buf.Bytes()
}

// WriteMarkdown writes the transcript to path, creating parent directories.
func WriteMarkdown(path string, transcript Transcript) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, transcript.Markdown(), 0o644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}

// ConvertMarkdownToPDF converts a markdown file to a PDF next to it and returns the PDF path.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(latin1(content)); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}

// latin1 drops characters the PDF core fonts cannot draw, such as emoji.
func latin1(content []byte) []byte {
	return []byte(strings.Map(func(r rune) rune {
		if r > 0xff {
			return -1
		}
		return r
	}, string(content)))
}
