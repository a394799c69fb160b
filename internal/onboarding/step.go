package onboarding

import (
	"slices"
	"strings"
)

// StepKind tags the variant of a step descriptor.
type StepKind int

const (
	StepIntro StepKind = iota
	StepSingleSelect
	StepTextInput
)

func (kind StepKind) String() string {
	switch kind {
	case StepIntro:
		return "intro"
	case StepSingleSelect:
		return "single-select"
	case StepTextInput:
		return "text-input"
	}
	return "unknown"
}

// Option is one choice of a single-select step.
type Option struct {
	Value string
	Label string
}

// Step is one screen of the questionnaire.
// Intro steps carry no question; every other step asks exactly one.
type Step struct {
	Kind        StepKind
	Block       string
	BlockTitle  string
	QuestionID  string
	Label       string
	Description string
	Placeholder string
	Options     []Option
}

// IsQuestion reports whether the step asks for an answer.
func (step Step) IsQuestion() bool {
	return step.Kind != StepIntro
}

// Accepts reports whether value satisfies the step's answer constraint.
func (step Step) Accepts(value string) bool {
	switch step.Kind {
	case StepIntro:
		return true
	case StepSingleSelect:
		if value == "" {
			return false
		}
		return slices.ContainsFunc(step.Options, func(option Option) bool {
			return option.Value == value
		})
	case StepTextInput:
		return strings.TrimSpace(value) != ""
	}
	return false
}

// OptionLabel returns the label of the option with the given value, or the value itself.
func (step Step) OptionLabel(value string) string {
	for _, option := range step.Options {
		if option.Value == value {
			return option.Label
		}
	}
	return value
}
