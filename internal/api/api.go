package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/revisahub/revisahub/internal/profile"
)

//go:generate mockgen -source=api.go -destination=../mocks/api/mock_client.go -package=mock_api

// Client is the tutoring backend.
type Client interface {
	CreateProfile(ctx context.Context, answers profile.AnswerSet) (profile.Profile, error)
	GetProfile(ctx context.Context, profileID string) (profile.Profile, error)
	ListSessions(ctx context.Context, profileID string) ([]SessionSummary, error)
	SessionMessages(ctx context.Context, profileID, sessionID string) ([]HistoryMessage, error)
	Chat(ctx context.Context, request ChatRequest) (ChatResponse, error)
	Progress(ctx context.Context, profileID string) (Progress, error)
	Streak(ctx context.Context, profileID string) (Streak, error)
}

// ErrUnexpectedStatus is returned for any non-2xx response.
var ErrUnexpectedStatus = errors.New("unexpected status")

type SessionSummary struct {
	ID        string `json:"id"`
	ProfileID string `json:"profile_id"`
	Title     string `json:"title"`
	Subject   string `json:"subject"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type HistoryMessage struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	ProfileID string `json:"profile_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Subject   string `json:"subject"`
	HasImage  bool   `json:"has_image"`
	Timestamp string `json:"timestamp"`
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	ProfileID string `json:"profile_id"`
	Message   string `json:"message"`
	Subject   string `json:"subject"`
	// ImageBase64 is a data URL such as "data:image/png;base64,...".
	ImageBase64 string `json:"image_base64,omitempty"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	MessageID string `json:"message_id"`
	SessionID string `json:"session_id"`
}

type Streak struct {
	CurrentStreak  int  `json:"current_streak"`
	LongestStreak  int  `json:"longest_streak"`
	TotalStudyDays int  `json:"total_study_days"`
	StudiedToday   bool `json:"studied_today"`
	// StreakCalendar holds the last seven days, oldest first. A day with activity carries
	// its date, an idle day an empty string.
	StreakCalendar []string `json:"streak_calendar"`
}

type Progress struct {
	TotalSessions   int      `json:"total_sessions"`
	TotalMessages   int      `json:"total_messages"`
	SubjectsStudied []string `json:"subjects_studied"`
	FavoriteSubject string   `json:"favorite_subject"`
	LastActivity    string   `json:"last_activity"`
	Streak          Streak   `json:"streak"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses the backend's ISO-8601 timestamps.
// Timestamps without a zone are stored in UTC by the backend.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", value)
}
