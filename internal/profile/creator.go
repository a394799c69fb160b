package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

//go:generate mockgen -source=creator.go -destination=../mocks/profile/mock_registrar.go -package=mock_profile

// Registrar creates profiles on the backend.
type Registrar interface {
	CreateProfile(ctx context.Context, answers AnswerSet) (Profile, error)
}

// Creator turns a completed answer set into the active, persisted profile.
type Creator struct {
	registrar Registrar
	store     Store
	now       func() time.Time
}

func NewCreator(registrar Registrar, store Store) *Creator {
	return &Creator{
		registrar: registrar,
		store:     store,
		now:       time.Now,
	}
}

// Create registers the profile with the backend. When the backend is unavailable a
// local profile with a "local-<unix millis>" identifier is synthesized from the raw answers,
// so the learner always gets a profile back.
// The returned error only reports a failure to persist; the profile is usable either way.
func (creator *Creator) Create(ctx context.Context, answers AnswerSet) (Profile, error) {
	p, err := creator.registrar.CreateProfile(ctx, answers.Clone())
	if err != nil || p.ID == "" {
		slog.Default().Warn("profile creation failed, continuing with a local profile",
			"error", err)
		p = FromAnswers(fmt.Sprintf("%s%d", LocalIDPrefix, creator.now().UnixMilli()), answers)
	}

	if err := creator.store.Save(p); err != nil {
		return p, fmt.Errorf("store.Save() > %w", err)
	}
	return p, nil
}
