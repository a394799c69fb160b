// Package app decides which screen the learner sees.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/revisahub/revisahub/internal/profile"
)

type View int

const (
	ViewLanding View = iota
	ViewOnboarding
	ViewChat
)

func (view View) String() string {
	switch view {
	case ViewLanding:
		return "landing"
	case ViewOnboarding:
		return "onboarding"
	case ViewChat:
		return "chat"
	}
	return fmt.Sprintf("View(%d)", int(view))
}

type Event int

const (
	EventStart Event = iota
	EventOnboardingComplete
	EventLogout
)

func (event Event) String() string {
	switch event {
	case EventStart:
		return "start"
	case EventOnboardingComplete:
		return "onboarding-complete"
	case EventLogout:
		return "logout"
	}
	return fmt.Sprintf("Event(%d)", int(event))
}

var ErrInvalidTransition = errors.New("invalid transition")

var transitions = map[View]map[Event]View{
	ViewLanding: {
		EventStart: ViewOnboarding,
	},
	ViewOnboarding: {
		EventOnboardingComplete: ViewChat,
	},
	ViewChat: {
		EventLogout: ViewLanding,
	},
}

// Next returns the view reached from view by event.
func Next(view View, event Event) (View, error) {
	next, ok := transitions[view][event]
	if !ok {
		return view, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, view)
	}
	return next, nil
}

// ProfileCreator turns completed onboarding answers into the active profile.
type ProfileCreator interface {
	Create(ctx context.Context, answers profile.AnswerSet) (profile.Profile, error)
}

// Controller holds the current view and the active profile.
// The profile is set exactly when the view is ViewChat.
type Controller struct {
	store   profile.Store
	creator ProfileCreator
	view    View
	profile *profile.Profile
}

func NewController(store profile.Store, creator ProfileCreator) *Controller {
	return &Controller{
		store:   store,
		creator: creator,
		view:    ViewLanding,
	}
}

// Bootstrap restores a persisted profile and opens the chat, or falls back to the landing view.
func (controller *Controller) Bootstrap() View {
	p, ok := profile.Restore(controller.store)
	if ok {
		controller.profile = &p
		controller.view = ViewChat
	} else {
		controller.profile = nil
		controller.view = ViewLanding
	}
	return controller.view
}

func (controller *Controller) View() View {
	return controller.view
}

func (controller *Controller) Profile() (profile.Profile, bool) {
	if controller.profile == nil {
		return profile.Profile{}, false
	}
	return *controller.profile, true
}

func (controller *Controller) fire(event Event) error {
	next, err := Next(controller.view, event)
	if err != nil {
		return err
	}
	slog.Default().Debug("view transition",
		"from", controller.view,
		"event", event,
		"to", next)
	controller.view = next
	return nil
}

// Start leaves the landing view for the questionnaire.
func (controller *Controller) Start() error {
	return controller.fire(EventStart)
}

// CompleteOnboarding creates the profile and opens the chat. Profile creation never blocks
// the learner: a backend failure yields a local profile and a persistence failure is logged.
func (controller *Controller) CompleteOnboarding(ctx context.Context, answers profile.AnswerSet) (profile.Profile, error) {
	if _, err := Next(controller.view, EventOnboardingComplete); err != nil {
		return profile.Profile{}, err
	}

	p, err := controller.creator.Create(ctx, answers)
	if err != nil {
		slog.Default().Warn("profile is not persisted", "error", err)
	}
	if err := controller.fire(EventOnboardingComplete); err != nil {
		return profile.Profile{}, err
	}
	controller.profile = &p
	return p, nil
}

// Logout forgets the profile and returns to the landing view.
func (controller *Controller) Logout() error {
	if err := controller.fire(EventLogout); err != nil {
		return err
	}
	controller.profile = nil
	if err := controller.store.Delete(); err != nil {
		return fmt.Errorf("store.Delete() > %w", err)
	}
	return nil
}
