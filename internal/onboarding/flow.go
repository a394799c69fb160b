// Package onboarding implements the questionnaire that produces a learner profile.
package onboarding

import (
	"errors"
	"fmt"

	"github.com/revisahub/revisahub/internal/profile"
)

var (
	ErrCannotAdvance = errors.New("current step has no valid answer")
	ErrAtFirstStep   = errors.New("already at the first step")
	ErrCompleted     = errors.New("onboarding already completed")
	ErrUnknownStep   = errors.New("no step asks this question")
)

// Flow walks a flat, ordered list of steps and accumulates the answer set.
// It performs no I/O: completion hands the answers to the callback and the caller
// decides what to do with them.
type Flow struct {
	steps      []Step
	index      int
	answers    profile.AnswerSet
	answered   map[string]struct{}
	total      int
	completed  bool
	onComplete func(answers profile.AnswerSet)
}

// NewFlow validates the steps and returns a flow positioned on the first one.
func NewFlow(steps []Step, onComplete func(answers profile.AnswerSet)) (*Flow, error) {
	if len(steps) == 0 {
		return nil, errors.New("onboarding needs at least one step")
	}

	seen := make(map[string]struct{})
	total := 0
	for i, step := range steps {
		if !step.IsQuestion() {
			continue
		}
		if step.QuestionID == "" {
			return nil, fmt.Errorf("step %d has no question id", i)
		}
		if _, ok := seen[step.QuestionID]; ok {
			return nil, fmt.Errorf("question %s appears more than once", step.QuestionID)
		}
		if step.Kind == StepSingleSelect && len(step.Options) == 0 {
			return nil, fmt.Errorf("question %s has no options", step.QuestionID)
		}
		seen[step.QuestionID] = struct{}{}
		total++
	}

	return &Flow{
		steps:      steps,
		answers:    make(profile.AnswerSet),
		answered:   make(map[string]struct{}),
		total:      total,
		onComplete: onComplete,
	}, nil
}

func (flow *Flow) Current() Step {
	return flow.steps[flow.index]
}

func (flow *Flow) Index() int {
	return flow.index
}

func (flow *Flow) Len() int {
	return len(flow.steps)
}

func (flow *Flow) IsLast() bool {
	return flow.index == len(flow.steps)-1
}

func (flow *Flow) Completed() bool {
	return flow.completed
}

// Answer stores or overwrites the value of a question. It never moves the flow.
func (flow *Flow) Answer(questionID, value string) error {
	if flow.completed {
		return ErrCompleted
	}
	for _, step := range flow.steps {
		if step.IsQuestion() && step.QuestionID == questionID {
			flow.answers[questionID] = value
			if step.Accepts(value) {
				flow.answered[questionID] = struct{}{}
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownStep, questionID)
}

// AnswerCurrent answers the question on the current step.
func (flow *Flow) AnswerCurrent(value string) error {
	step := flow.Current()
	if !step.IsQuestion() {
		return nil
	}
	return flow.Answer(step.QuestionID, value)
}

// Value returns the stored answer for a question.
func (flow *Flow) Value(questionID string) (string, bool) {
	value, ok := flow.answers[questionID]
	return value, ok
}

// CanAdvance reports whether the current step's answer constraint holds.
func (flow *Flow) CanAdvance() bool {
	if flow.completed {
		return false
	}
	step := flow.Current()
	if !step.IsQuestion() {
		return true
	}
	return step.Accepts(flow.answers[step.QuestionID])
}

// Advance moves to the next step. On the last step it completes the flow and
// emits the answer set to the completion callback exactly once.
func (flow *Flow) Advance() error {
	if flow.completed {
		return ErrCompleted
	}
	if !flow.CanAdvance() {
		return ErrCannotAdvance
	}
	if !flow.IsLast() {
		flow.index++
		return nil
	}

	for _, step := range flow.steps {
		if step.IsQuestion() && !step.Accepts(flow.answers[step.QuestionID]) {
			return fmt.Errorf("%w: %s", ErrCannotAdvance, step.QuestionID)
		}
	}

	flow.completed = true
	if flow.onComplete != nil {
		flow.onComplete(flow.Answers())
	}
	return nil
}

func (flow *Flow) CanRetreat() bool {
	return !flow.completed && flow.index > 0
}

// Retreat moves back one step without validating anything.
func (flow *Flow) Retreat() error {
	if flow.completed {
		return ErrCompleted
	}
	if flow.index == 0 {
		return ErrAtFirstStep
	}
	flow.index--
	return nil
}

// Answers returns a copy of the accumulated answers.
func (flow *Flow) Answers() profile.AnswerSet {
	return flow.answers.Clone()
}

// AnsweredCount counts questions that have received a valid answer.
// Answers are never removed, so the count never decreases.
func (flow *Flow) AnsweredCount() int {
	return len(flow.answered)
}

// TotalQuestions counts question steps; the introduction is not a question.
func (flow *Flow) TotalQuestions() int {
	return flow.total
}

// Progress is AnsweredCount / TotalQuestions, in [0, 1].
func (flow *Flow) Progress() float64 {
	if flow.total == 0 {
		return 1
	}
	return float64(len(flow.answered)) / float64(flow.total)
}
