// Package profile provides the learner profile, the onboarding answer set it is built from,
// and the durable client-side store that keeps it between runs.
package profile

import (
	"strings"
)

// Question identifiers shared by the onboarding catalog, the answer set and the backend schema.
const (
	QuestionSensoryChannel     = "canal_sensorial"
	QuestionExplanationFormat  = "formato_explicacao"
	QuestionApproach           = "abordagem"
	QuestionSocialInteraction  = "interacao_social"
	QuestionStudyStructure     = "estrutura_estudo"
	QuestionSessionDuration    = "duracao_sessao"
	QuestionStudyEnvironment   = "ambiente_estudo"
	QuestionMotivator          = "motivador_principal"
	QuestionDifficultyStrategy = "estrategia_dificuldade"
	QuestionStudyPlanning      = "planejamento_estudos"
	QuestionCulturalInterest   = "interesse_cultural"
	QuestionName               = "name"
)

// LocalIDPrefix marks profiles synthesized on the client when the backend could not create one.
const LocalIDPrefix = "local-"

// AnswerSet maps a question identifier to the learner's selected or typed value.
type AnswerSet map[string]string

// Clone returns an independent copy.
func (answers AnswerSet) Clone() AnswerSet {
	result := make(AnswerSet, len(answers))
	for k, v := range answers {
		result[k] = v
	}
	return result
}

// Profile identifies a learner and carries the learning-style preferences used to tailor answers.
type Profile struct {
	ID                 string `json:"id" yaml:"id"`
	Name               string `json:"name" yaml:"name"`
	VarkPrimary        string `json:"canal_sensorial" yaml:"canal_sensorial"`
	ExplanationFormat  string `json:"formato_explicacao" yaml:"formato_explicacao"`
	Approach           string `json:"abordagem" yaml:"abordagem"`
	SocialInteraction  string `json:"interacao_social" yaml:"interacao_social"`
	StudyStructure     string `json:"estrutura_estudo,omitempty" yaml:"estrutura_estudo,omitempty"`
	SessionDuration    string `json:"duracao_sessao,omitempty" yaml:"duracao_sessao,omitempty"`
	StudyEnvironment   string `json:"ambiente_estudo,omitempty" yaml:"ambiente_estudo,omitempty"`
	Motivator          string `json:"motivador_principal" yaml:"motivador_principal"`
	DifficultyStrategy string `json:"estrategia_dificuldade,omitempty" yaml:"estrategia_dificuldade,omitempty"`
	StudyPlanning      string `json:"planejamento_estudos,omitempty" yaml:"planejamento_estudos,omitempty"`
	CulturalInterest   string `json:"interesse_cultural" yaml:"interesse_cultural"`
}

// FromAnswers builds a profile with the given identifier from a completed answer set.
func FromAnswers(id string, answers AnswerSet) Profile {
	return Profile{
		ID:                 id,
		Name:               answers[QuestionName],
		VarkPrimary:        answers[QuestionSensoryChannel],
		ExplanationFormat:  answers[QuestionExplanationFormat],
		Approach:           answers[QuestionApproach],
		SocialInteraction:  answers[QuestionSocialInteraction],
		StudyStructure:     answers[QuestionStudyStructure],
		SessionDuration:    answers[QuestionSessionDuration],
		StudyEnvironment:   answers[QuestionStudyEnvironment],
		Motivator:          answers[QuestionMotivator],
		DifficultyStrategy: answers[QuestionDifficultyStrategy],
		StudyPlanning:      answers[QuestionStudyPlanning],
		CulturalInterest:   answers[QuestionCulturalInterest],
	}
}

// Answers converts the profile back into the answer set it was created from.
// Empty optional answers are left out.
func (p Profile) Answers() AnswerSet {
	answers := AnswerSet{
		QuestionName:               p.Name,
		QuestionSensoryChannel:     p.VarkPrimary,
		QuestionExplanationFormat:  p.ExplanationFormat,
		QuestionApproach:           p.Approach,
		QuestionSocialInteraction:  p.SocialInteraction,
		QuestionStudyStructure:     p.StudyStructure,
		QuestionSessionDuration:    p.SessionDuration,
		QuestionStudyEnvironment:   p.StudyEnvironment,
		QuestionMotivator:          p.Motivator,
		QuestionDifficultyStrategy: p.DifficultyStrategy,
		QuestionStudyPlanning:      p.StudyPlanning,
		QuestionCulturalInterest:   p.CulturalInterest,
	}
	for k, v := range answers {
		if v == "" {
			delete(answers, k)
		}
	}
	return answers
}

// IsLocal reports whether the profile was synthesized on the client and never reached the backend.
func (p Profile) IsLocal() bool {
	return strings.HasPrefix(p.ID, LocalIDPrefix)
}

// Initials returns up to two upper-cased leading characters of the name.
func (p Profile) Initials() string {
	runes := []rune(strings.TrimSpace(p.Name))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}
