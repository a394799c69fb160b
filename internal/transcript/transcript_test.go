package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/revisahub/revisahub/internal/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTranscript() Transcript {
	return Transcript{
		SessionID:   "session-1",
		Title:       "O que é mitose?",
		Subject:     "Biologia",
		LearnerName: "Ana",
		Messages: []chat.Message{
			{ID: "u1", Role: chat.RoleUser, Content: "o que é mitose?", HasImage: true},
			{ID: "m1", Role: chat.RoleAssistant, Content: "**Mitose** é a divisão celular 🧬"},
		},
	}
}

func TestTranscript_Markdown(t *testing.T) {
	got := string(testTranscript().Markdown())

	assert.True(t, strings.HasPrefix(got, "# O que é mitose?\n\n"))
	assert.Contains(t, got, "- Matéria: Biologia\n")
	assert.Contains(t, got, "- Sessão: `session-1`\n")
	assert.Contains(t, got, "### Ana\n\n_Imagem enviada_\n\no que é mitose?\n\n")
	assert.Contains(t, got, "### Mindly\n\n**Mitose** é a divisão celular 🧬\n\n")
	assert.Less(t, strings.Index(got, "### Ana"), strings.Index(got, "### Mindly"))
}

func TestTranscript_MarkdownDefaults(t *testing.T) {
	transcript := Transcript{
		SessionID: "session-2",
		Messages: []chat.Message{
			{Role: chat.RoleUser, Content: "oi", Timestamp: time.Date(2025, 3, 1, 10, 20, 0, 0, time.Local)},
		},
	}
	got := string(transcript.Markdown())

	assert.True(t, strings.HasPrefix(got, "# session-2\n\n"))
	assert.NotContains(t, got, "Matéria")
	assert.Contains(t, got, "### Você (01/03/2025 10:20)\n\noi\n\n")
}

func TestWriteMarkdownAndConvert(t *testing.T) {
	mdPath := filepath.Join(t.TempDir(), "exports", "session-1.md")
	require.NoError(t, WriteMarkdown(mdPath, testTranscript()))

	content, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Equal(t, testTranscript().Markdown(), content)

	pdfPath, err := ConvertMarkdownToPDF(mdPath)
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(pdfPath))
	_, err = os.Stat(pdfPath)
	assert.NoError(t, err)
}

func TestConvertMarkdownToPDF_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantErrMsg string
	}{
		{name: "invalid extension", path: "session.txt", wantErrMsg: "input file must have .md extension"},
		{name: "file not found", path: filepath.Join(t.TempDir(), "missing.md"), wantErrMsg: "os.ReadFile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertMarkdownToPDF(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrMsg)
		})
	}
}

func TestLatin1(t *testing.T) {
	assert.Equal(t, "Matéria: Física ", string(latin1([]byte("Matéria: Física ⚡"))))
}
