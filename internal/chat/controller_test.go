package chat

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/revisahub/revisahub/internal/api"
	mock_api "github.com/revisahub/revisahub/internal/mocks/api"
	"github.com/revisahub/revisahub/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func testProfile() profile.Profile {
	return profile.Profile{
		ID:               "p1",
		Name:             "Ana",
		VarkPrimary:      "visual",
		CulturalInterest: "Naruto",
	}
}

func newTestController(t *testing.T) (*Controller, *mock_api.MockClient) {
	t.Helper()
	client := mock_api.NewMockClient(gomock.NewController(t))
	controller := NewController(client, testProfile())
	controller.now = func() time.Time {
		return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	}
	return controller, client
}

func expectRefresh(client *mock_api.MockClient) {
	client.EXPECT().ListSessions(gomock.Any(), "p1").Return([]api.SessionSummary{{ID: "s1", Subject: "Biologia"}}, nil)
	client.EXPECT().Progress(gomock.Any(), "p1").Return(api.Progress{TotalMessages: 2}, nil)
	client.EXPECT().Streak(gomock.Any(), "p1").Return(api.Streak{CurrentStreak: 1}, nil)
}

func mustSubject(t *testing.T, id string) Subject {
	t.Helper()
	subject, ok := FindSubjectByID(id)
	require.True(t, ok)
	return subject
}

func TestNewController_StartsWithWelcome(t *testing.T) {
	controller, _ := newTestController(t)

	messages := controller.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, WelcomeMessageID, messages[0].ID)
	assert.Equal(t, RoleAssistant, messages[0].Role)
	assert.Contains(t, messages[0].Content, "Ana")
	assert.Contains(t, messages[0].Content, "Naruto")

	_, ok := controller.Subject()
	assert.False(t, ok)
	assert.Equal(t, StateIdle, controller.State())
	assert.Regexp(t, regexp.MustCompile(`^session-\d+-[0-9a-z]{9}$`), controller.SessionID())
}

func TestController_StartNewChat(t *testing.T) {
	controller, client := newTestController(t)
	client.EXPECT().Chat(gomock.Any(), gomock.Any()).Return(api.ChatResponse{MessageID: "m1", Response: "..."}, nil)
	expectRefresh(client)

	_, err := controller.SelectSubject(context.Background(), mustSubject(t, "biologia"))
	require.NoError(t, err)
	_, err = controller.InitiateSend(context.Background(), "o que é mitose?")
	require.NoError(t, err)
	require.Len(t, controller.Messages(), 3)
	previous := controller.SessionID()

	id := controller.StartNewChat()
	assert.Equal(t, id, controller.SessionID())
	assert.NotEqual(t, previous, id)
	messages := controller.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, WelcomeMessageID, messages[0].ID)
	_, ok := controller.Subject()
	assert.False(t, ok)
}

func TestController_SendWithSubject(t *testing.T) {
	controller, client := newTestController(t)
	sessionID := controller.SessionID()

	client.EXPECT().Chat(gomock.Any(), api.ChatRequest{
		SessionID: sessionID,
		ProfileID: "p1",
		Message:   "o que é mitose?",
		Subject:   "Biologia",
	}).Return(api.ChatResponse{MessageID: "m1", Response: "Mitose é...", SessionID: sessionID}, nil)
	expectRefresh(client)

	_, err := controller.SelectSubject(context.Background(), mustSubject(t, "biologia"))
	require.NoError(t, err)

	reply, err := controller.InitiateSend(context.Background(), "o que é mitose?")
	require.NoError(t, err)
	assert.Equal(t, "m1", reply.ID)

	messages := controller.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, RoleUser, messages[1].Role)
	assert.Equal(t, "o que é mitose?", messages[1].Content)
	assert.False(t, messages[1].HasImage)
	assert.Equal(t, RoleAssistant, messages[2].Role)
	assert.Equal(t, "m1", messages[2].ID)
	assert.Equal(t, "Mitose é...", messages[2].Content)

	assert.False(t, controller.Sending())
	assert.Equal(t, StateIdle, controller.State())
	assert.Empty(t, controller.Draft())
	assert.Len(t, controller.Sessions(), 1)
	progress, streak := controller.Stats()
	require.NotNil(t, progress)
	require.NotNil(t, streak)
	assert.Equal(t, 2, progress.TotalMessages)
	assert.Equal(t, 1, streak.CurrentStreak)
}

func TestController_SubjectGating(t *testing.T) {
	controller, client := newTestController(t)
	image, err := NewImage("questao.png", pngHeader)
	require.NoError(t, err)
	controller.StageImage(image)

	// No Chat expectation yet: reaching the backend here fails the test.
	_, err = controller.InitiateSend(context.Background(), "resolve essa")
	assert.ErrorIs(t, err, ErrSubjectRequired)
	assert.Equal(t, StateSubjectPending, controller.State())
	pending, ok := controller.Pending()
	require.True(t, ok)
	assert.Equal(t, "resolve essa", pending.Text)
	require.NotNil(t, pending.Image)
	assert.Len(t, controller.Messages(), 1)

	client.EXPECT().Chat(gomock.Any(), api.ChatRequest{
		SessionID:   controller.SessionID(),
		ProfileID:   "p1",
		Message:     "resolve essa",
		Subject:     "Física",
		ImageBase64: image.DataURL(),
	}).Return(api.ChatResponse{MessageID: "m1", Response: "..."}, nil).Times(1)
	expectRefresh(client)

	reply, err := controller.SelectSubject(context.Background(), mustSubject(t, "fisica"))
	require.NoError(t, err)
	assert.Equal(t, "m1", reply.ID)

	_, ok = controller.Pending()
	assert.False(t, ok)
	_, ok = controller.StagedImage()
	assert.False(t, ok)
	subject, ok := controller.Subject()
	require.True(t, ok)
	assert.Equal(t, "fisica", subject.ID)

	messages := controller.Messages()
	require.Len(t, messages, 3)
	assert.True(t, messages[1].HasImage)
}

func TestController_CancelSubjectSelection(t *testing.T) {
	controller, _ := newTestController(t)

	assert.ErrorIs(t, controller.CancelSubjectSelection(), ErrNothingPending)

	_, err := controller.InitiateSend(context.Background(), "oi")
	require.ErrorIs(t, err, ErrSubjectRequired)
	require.NoError(t, controller.CancelSubjectSelection())
	assert.Equal(t, StateComposing, controller.State())
	assert.Equal(t, "oi", controller.Draft())

	// Selecting a subject afterwards sends nothing.
	reply, err := controller.SelectSubject(context.Background(), mustSubject(t, "historia"))
	require.NoError(t, err)
	assert.Empty(t, reply.ID)
}

func TestController_SubjectIsFixed(t *testing.T) {
	controller, _ := newTestController(t)

	_, err := controller.SelectSubject(context.Background(), mustSubject(t, "quimica"))
	require.NoError(t, err)
	_, err = controller.SelectSubject(context.Background(), mustSubject(t, "quimica"))
	require.NoError(t, err)
	_, err = controller.SelectSubject(context.Background(), mustSubject(t, "fisica"))
	assert.ErrorIs(t, err, ErrSubjectLocked)

	subject, _ := controller.Subject()
	assert.Equal(t, "quimica", subject.ID)
}

func TestController_SendFailure(t *testing.T) {
	tests := []struct {
		name          string
		priorMessages int
	}{
		{name: "first message", priorMessages: 0},
		{name: "after a conversation", priorMessages: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, client := newTestController(t)
			_, err := controller.SelectSubject(context.Background(), mustSubject(t, "matematica"))
			require.NoError(t, err)

			for i := 0; i < tt.priorMessages; i++ {
				client.EXPECT().Chat(gomock.Any(), gomock.Any()).Return(api.ChatResponse{MessageID: "ok", Response: "..."}, nil)
				expectRefresh(client)
				_, err := controller.InitiateSend(context.Background(), "pergunta")
				require.NoError(t, err)
			}
			before := len(controller.Messages())

			client.EXPECT().Chat(gomock.Any(), gomock.Any()).Return(api.ChatResponse{}, errors.New("response error 500"))
			reply, err := controller.InitiateSend(context.Background(), "2+2?")
			require.NoError(t, err)
			assert.True(t, reply.IsErrorPlaceholder())

			messages := controller.Messages()
			require.Len(t, messages, before+2)
			last := messages[len(messages)-1]
			assert.Equal(t, RoleAssistant, last.Role)
			assert.Equal(t, ApologyContent, last.Content)
			assert.Regexp(t, `^error-\d+$`, last.ID)
			assert.False(t, controller.Sending())
		})
	}
}

func TestController_ImageOnlyUsesDefaultPrompt(t *testing.T) {
	controller, client := newTestController(t)
	image, err := NewImage("foto.png", pngHeader)
	require.NoError(t, err)

	client.EXPECT().Chat(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, request api.ChatRequest) (api.ChatResponse, error) {
			assert.Equal(t, DefaultImagePrompt, request.Message)
			assert.Equal(t, image.DataURL(), request.ImageBase64)
			return api.ChatResponse{MessageID: "m1", Response: "..."}, nil
		})
	expectRefresh(client)

	_, err = controller.SelectSubject(context.Background(), mustSubject(t, "geografia"))
	require.NoError(t, err)
	controller.StageImage(image)
	assert.Equal(t, StateComposing, controller.State())

	_, err = controller.InitiateSend(context.Background(), "  ")
	require.NoError(t, err)

	messages := controller.Messages()
	require.Len(t, messages, 3)
	assert.True(t, messages[1].HasImage)
	assert.Equal(t, "  ", messages[1].Content)
}

func TestController_EmptyMessageIsIgnored(t *testing.T) {
	controller, _ := newTestController(t)

	_, err := controller.InitiateSend(context.Background(), " \n ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Equal(t, StateIdle, controller.State())
	assert.Len(t, controller.Messages(), 1)

	_, err = controller.SendMessage(context.Background(), "", nil, mustSubject(t, "fisica"))
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestController_OneSendInFlight(t *testing.T) {
	controller, client := newTestController(t)
	_, err := controller.SelectSubject(context.Background(), mustSubject(t, "filosofia"))
	require.NoError(t, err)

	client.EXPECT().Chat(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ api.ChatRequest) (api.ChatResponse, error) {
			assert.Equal(t, StateSending, controller.State())
			_, err := controller.InitiateSend(ctx, "outra pergunta")
			assert.ErrorIs(t, err, ErrSendInFlight)
			return api.ChatResponse{MessageID: "m1", Response: "..."}, nil
		})
	expectRefresh(client)

	_, err = controller.InitiateSend(context.Background(), "o que é ética?")
	require.NoError(t, err)
	assert.Len(t, controller.Messages(), 3)
}

func TestController_DiscardsReplyForClosedSession(t *testing.T) {
	controller, client := newTestController(t)
	_, err := controller.SelectSubject(context.Background(), mustSubject(t, "portugues"))
	require.NoError(t, err)

	var newSessionID string
	client.EXPECT().Chat(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, api.ChatRequest) (api.ChatResponse, error) {
			newSessionID = controller.StartNewChat()
			return api.ChatResponse{MessageID: "m1", Response: "..."}, nil
		})
	expectRefresh(client)

	_, err = controller.InitiateSend(context.Background(), "o que é crase?")
	require.NoError(t, err)

	assert.Equal(t, newSessionID, controller.SessionID())
	messages := controller.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, WelcomeMessageID, messages[0].ID)
	assert.False(t, controller.Sending())
}

func TestController_LoadSession(t *testing.T) {
	history := []api.HistoryMessage{
		{ID: "u1", Role: "user", Content: "o que é mitose?", HasImage: true, Timestamp: "2025-03-01T10:20:30"},
		{ID: "m1", Role: "assistant", Content: "Mitose é...", Timestamp: "2025-03-01T10:20:35.123456"},
		{ID: "u2", Role: "user", Content: "e meiose?", Timestamp: "not a time"},
	}

	controller, client := newTestController(t)
	client.EXPECT().SessionMessages(gomock.Any(), "p1", "s1").Return(history, nil)
	client.EXPECT().Progress(gomock.Any(), "p1").Return(api.Progress{}, nil)
	client.EXPECT().Streak(gomock.Any(), "p1").Return(api.Streak{}, nil)

	subject := mustSubject(t, "biologia")
	require.NoError(t, controller.LoadSession(context.Background(), "s1", &subject))

	assert.Equal(t, "s1", controller.SessionID())
	got, ok := controller.Subject()
	require.True(t, ok)
	assert.Equal(t, subject, got)

	messages := controller.Messages()
	require.Len(t, messages, len(history))
	for i, message := range messages {
		assert.Equal(t, history[i].ID, message.ID)
		assert.Equal(t, history[i].Content, message.Content)
		assert.Equal(t, Role(history[i].Role), message.Role)
	}
	assert.True(t, messages[0].HasImage)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 20, 30, 0, time.UTC), messages[0].Timestamp)
	assert.True(t, messages[2].Timestamp.IsZero())
}

func TestController_LoadSessionFailureKeepsState(t *testing.T) {
	controller, client := newTestController(t)
	client.EXPECT().SessionMessages(gomock.Any(), "p1", "s1").Return(nil, errors.New("connection refused"))

	sessionID := controller.SessionID()
	before := controller.Messages()

	subject := mustSubject(t, "biologia")
	err := controller.LoadSession(context.Background(), "s1", &subject)
	require.Error(t, err)

	assert.Equal(t, sessionID, controller.SessionID())
	assert.Equal(t, before, controller.Messages())
	_, ok := controller.Subject()
	assert.False(t, ok)
}

func TestController_LoadSessionSupersededByNewChat(t *testing.T) {
	controller, client := newTestController(t)

	var newSessionID string
	client.EXPECT().SessionMessages(gomock.Any(), "p1", "s1").DoAndReturn(
		func(context.Context, string, string) ([]api.HistoryMessage, error) {
			newSessionID = controller.StartNewChat()
			return []api.HistoryMessage{{ID: "u1", Role: "user", Content: "velho"}}, nil
		})

	require.NoError(t, controller.LoadSession(context.Background(), "s1", nil))
	assert.Equal(t, newSessionID, controller.SessionID())
	messages := controller.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, WelcomeMessageID, messages[0].ID)
}

func TestController_RefreshFailuresKeepStaleData(t *testing.T) {
	controller, client := newTestController(t)

	client.EXPECT().ListSessions(gomock.Any(), "p1").Return([]api.SessionSummary{{ID: "s1"}}, nil)
	client.EXPECT().Progress(gomock.Any(), "p1").Return(api.Progress{TotalSessions: 1}, nil)
	client.EXPECT().Streak(gomock.Any(), "p1").Return(api.Streak{CurrentStreak: 2}, nil)
	controller.RefreshSessions(context.Background())
	controller.RefreshStats(context.Background())

	client.EXPECT().ListSessions(gomock.Any(), "p1").Return(nil, errors.New("boom"))
	client.EXPECT().Progress(gomock.Any(), "p1").Return(api.Progress{}, errors.New("boom"))
	client.EXPECT().Streak(gomock.Any(), "p1").Return(api.Streak{CurrentStreak: 3}, nil)
	controller.RefreshSessions(context.Background())
	controller.RefreshStats(context.Background())

	assert.Equal(t, []api.SessionSummary{{ID: "s1"}}, controller.Sessions())
	progress, streak := controller.Stats()
	assert.Equal(t, 1, progress.TotalSessions)
	assert.Equal(t, 3, streak.CurrentStreak)
}
