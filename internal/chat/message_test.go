package chat

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWelcomeMessage(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	got := WelcomeMessage(testProfile(), now)

	assert.Equal(t, WelcomeMessageID, got.ID)
	assert.Equal(t, RoleAssistant, got.Role)
	assert.Contains(t, got.Content, "**Ana**")
	assert.Contains(t, got.Content, "**Naruto**")
	assert.Equal(t, now, got.Timestamp)
	assert.False(t, got.IsErrorPlaceholder())
}

func TestNewApologyMessage(t *testing.T) {
	got := newApologyMessage(time.UnixMilli(1700000000123))
	assert.Equal(t, "error-1700000000123", got.ID)
	assert.Equal(t, ApologyContent, got.Content)
	assert.True(t, got.IsErrorPlaceholder())
}

func TestNewSessionID(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	pattern := regexp.MustCompile(`^session-1700000000123-[0-9a-z]{9}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewSessionID(now)
		assert.Regexp(t, pattern, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

func TestFindSubject(t *testing.T) {
	assert.Len(t, Subjects(), 8)

	subject, ok := FindSubjectByID("biologia")
	assert.True(t, ok)
	assert.Equal(t, "Biologia", subject.Label)

	subject, ok = FindSubjectByLabel("Física")
	assert.True(t, ok)
	assert.Equal(t, "fisica", subject.ID)
	assert.Equal(t, "⚡ Física", subject.String())

	_, ok = FindSubjectByLabel("Astronomia")
	assert.False(t, ok)
	_, ok = FindSubjectByID("")
	assert.False(t, ok)
}
