// Package chat holds the state of one open conversation with the tutor: the active session,
// its messages, the subject gate and the staged image.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/revisahub/revisahub/internal/api"
	"github.com/revisahub/revisahub/internal/profile"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyMessage    = errors.New("message has neither text nor image")
	ErrSendInFlight    = errors.New("a message is already being sent")
	ErrSubjectRequired = errors.New("choose a subject to send the message")
	ErrSubjectLocked   = errors.New("session subject is already set")
	ErrNothingPending  = errors.New("no message waiting for a subject")
)

type State int

const (
	StateIdle State = iota
	StateComposing
	StateSubjectPending
	StateSending
)

func (state State) String() string {
	switch state {
	case StateIdle:
		return "idle"
	case StateComposing:
		return "composing"
	case StateSubjectPending:
		return "subject-pending"
	case StateSending:
		return "sending"
	}
	return fmt.Sprintf("State(%d)", int(state))
}

// PendingMessage is a message held back until the learner picks a subject.
type PendingMessage struct {
	Text  string
	Image *Image
}

// Controller owns the chat view state.
// Network calls run without holding the lock. Each result is tagged with the session
// (or load generation) that started it and is dropped when that is no longer current.
type Controller struct {
	client  api.Client
	profile profile.Profile
	now     func() time.Time

	mu         sync.Mutex
	generation uint64
	sessionID  string
	subject    *Subject
	messages   []Message
	draft      string
	image      *Image
	pending    *PendingMessage
	sending    bool
	sessions   []api.SessionSummary
	progress   *api.Progress
	streak     *api.Streak
}

// NewController opens a chat view for the profile, starting with a fresh session.
func NewController(client api.Client, p profile.Profile) *Controller {
	controller := &Controller{
		client:  client,
		profile: p,
		now:     time.Now,
	}
	controller.StartNewChat()
	return controller
}

func (controller *Controller) Profile() profile.Profile {
	return controller.profile
}

// StartNewChat switches to a brand-new local session holding only the welcome message.
// The backend learns about the session with its first message.
func (controller *Controller) StartNewChat() string {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	now := controller.now()
	controller.generation++
	controller.sessionID = NewSessionID(now)
	controller.messages = []Message{WelcomeMessage(controller.profile, now)}
	controller.subject = nil
	controller.pending = nil
	return controller.sessionID
}

// LoadSession replaces the conversation with the stored history of another session.
// On failure the current conversation is left untouched.
func (controller *Controller) LoadSession(ctx context.Context, sessionID string, subject *Subject) error {
	controller.mu.Lock()
	controller.generation++
	generation := controller.generation
	controller.mu.Unlock()

	history, err := controller.client.SessionMessages(ctx, controller.profile.ID, sessionID)
	if err != nil {
		slog.Default().Warn("failed to load session",
			"sessionID", sessionID,
			"error", err)
		return fmt.Errorf("client.SessionMessages(%s) > %w", sessionID, err)
	}

	messages := make([]Message, 0, len(history))
	for _, item := range history {
		messages = append(messages, FromHistory(item))
	}

	controller.mu.Lock()
	if controller.generation != generation {
		controller.mu.Unlock()
		slog.Default().Debug("discarding superseded session load", "sessionID", sessionID)
		return nil
	}
	controller.sessionID = sessionID
	controller.messages = messages
	if subject != nil {
		s := *subject
		controller.subject = &s
	} else {
		controller.subject = nil
	}
	controller.pending = nil
	controller.mu.Unlock()

	controller.RefreshStats(ctx)
	return nil
}

// SetDraft records the text being composed.
func (controller *Controller) SetDraft(text string) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.draft = text
}

// StageImage attaches an image to the next message, replacing any staged one.
func (controller *Controller) StageImage(image Image) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.image = &image
}

func (controller *Controller) ClearImage() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.image = nil
}

// InitiateSend sends the given text with the staged image. When the session has no subject
// yet the message is held and ErrSubjectRequired is returned; SelectSubject sends it.
func (controller *Controller) InitiateSend(ctx context.Context, text string) (Message, error) {
	controller.mu.Lock()
	controller.draft = text
	if strings.TrimSpace(text) == "" && controller.image == nil {
		controller.mu.Unlock()
		return Message{}, ErrEmptyMessage
	}
	if controller.sending {
		controller.mu.Unlock()
		return Message{}, ErrSendInFlight
	}
	image := controller.image
	if controller.subject == nil {
		controller.pending = &PendingMessage{Text: text, Image: image}
		controller.mu.Unlock()
		return Message{}, ErrSubjectRequired
	}
	subject := *controller.subject
	controller.mu.Unlock()

	return controller.SendMessage(ctx, text, image, subject)
}

// SelectSubject fixes the session subject and sends the held message, if any.
// The returned message is the reply to the held message.
func (controller *Controller) SelectSubject(ctx context.Context, subject Subject) (Message, error) {
	controller.mu.Lock()
	if controller.subject != nil && controller.subject.ID != subject.ID {
		controller.mu.Unlock()
		return Message{}, fmt.Errorf("%w: %s", ErrSubjectLocked, controller.subject.Label)
	}
	if controller.sending && controller.pending != nil {
		controller.mu.Unlock()
		return Message{}, ErrSendInFlight
	}
	controller.subject = &subject
	pending := controller.pending
	controller.pending = nil
	controller.mu.Unlock()

	if pending == nil {
		return Message{}, nil
	}
	return controller.SendMessage(ctx, pending.Text, pending.Image, subject)
}

// CancelSubjectSelection drops the held message; the draft and staged image stay.
func (controller *Controller) CancelSubjectSelection() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.pending == nil {
		return ErrNothingPending
	}
	controller.pending = nil
	return nil
}

// SendMessage appends the learner's message right away and then asks the backend.
// A failed request is answered with an apology message instead of an error, so the returned
// message is always the assistant's reply. Errors are only returned when nothing was sent.
func (controller *Controller) SendMessage(ctx context.Context, text string, image *Image, subject Subject) (Message, error) {
	if strings.TrimSpace(text) == "" && image == nil {
		return Message{}, ErrEmptyMessage
	}

	controller.mu.Lock()
	if controller.sending {
		controller.mu.Unlock()
		return Message{}, ErrSendInFlight
	}
	controller.sending = true
	sessionID := controller.sessionID
	controller.messages = append(controller.messages, newUserMessage(text, image != nil, controller.now()))
	controller.draft = ""
	controller.image = nil
	controller.mu.Unlock()

	request := api.ChatRequest{
		SessionID: sessionID,
		ProfileID: controller.profile.ID,
		Message:   text,
		Subject:   subject.Label,
	}
	if strings.TrimSpace(text) == "" {
		request.Message = DefaultImagePrompt
	}
	if image != nil {
		request.ImageBase64 = image.DataURL()
	}

	response, err := controller.client.Chat(ctx, request)

	var reply Message
	if err != nil {
		slog.Default().Warn("failed to send message",
			"sessionID", sessionID,
			"error", err)
		reply = newApologyMessage(controller.now())
	} else {
		reply = Message{
			ID:        response.MessageID,
			Role:      RoleAssistant,
			Content:   response.Response,
			Timestamp: controller.now(),
		}
	}

	controller.mu.Lock()
	controller.sending = false
	current := controller.sessionID == sessionID
	if current {
		controller.messages = append(controller.messages, reply)
	}
	controller.mu.Unlock()

	if !current {
		slog.Default().Debug("discarding reply for a session that is no longer open",
			"sessionID", sessionID)
	}
	if err == nil {
		controller.refresh(ctx)
	}
	return reply, nil
}

// refresh reloads the session list and the stats side by side.
func (controller *Controller) refresh(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		controller.RefreshSessions(ctx)
		return nil
	})
	g.Go(func() error {
		controller.RefreshStats(ctx)
		return nil
	})
	_ = g.Wait()
}

// RefreshSessions reloads the session history list. Failures keep the previous list.
func (controller *Controller) RefreshSessions(ctx context.Context) {
	sessions, err := controller.client.ListSessions(ctx, controller.profile.ID)
	if err != nil {
		slog.Default().Warn("failed to list sessions", "error", err)
		return
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.sessions = sessions
}

// RefreshStats reloads the progress and streak snapshots independently.
// A failed fetch keeps the previous snapshot.
func (controller *Controller) RefreshStats(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		progress, err := controller.client.Progress(ctx, controller.profile.ID)
		if err != nil {
			slog.Default().Warn("failed to fetch progress", "error", err)
			return nil
		}
		controller.mu.Lock()
		defer controller.mu.Unlock()
		controller.progress = &progress
		return nil
	})
	g.Go(func() error {
		streak, err := controller.client.Streak(ctx, controller.profile.ID)
		if err != nil {
			slog.Default().Warn("failed to fetch streak", "error", err)
			return nil
		}
		controller.mu.Lock()
		defer controller.mu.Unlock()
		controller.streak = &streak
		return nil
	})
	_ = g.Wait()
}

func (controller *Controller) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	switch {
	case controller.sending:
		return StateSending
	case controller.pending != nil:
		return StateSubjectPending
	case strings.TrimSpace(controller.draft) != "" || controller.image != nil:
		return StateComposing
	}
	return StateIdle
}

func (controller *Controller) SessionID() string {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.sessionID
}

func (controller *Controller) Subject() (Subject, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.subject == nil {
		return Subject{}, false
	}
	return *controller.subject, true
}

// Messages returns a copy of the conversation in display order.
func (controller *Controller) Messages() []Message {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	result := make([]Message, len(controller.messages))
	copy(result, controller.messages)
	return result
}

func (controller *Controller) Draft() string {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.draft
}

func (controller *Controller) StagedImage() (Image, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.image == nil {
		return Image{}, false
	}
	return *controller.image, true
}

func (controller *Controller) Pending() (PendingMessage, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.pending == nil {
		return PendingMessage{}, false
	}
	return *controller.pending, true
}

func (controller *Controller) Sending() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.sending
}

func (controller *Controller) Sessions() []api.SessionSummary {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	result := make([]api.SessionSummary, len(controller.sessions))
	copy(result, controller.sessions)
	return result
}

func (controller *Controller) Stats() (*api.Progress, *api.Streak) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.progress, controller.streak
}
