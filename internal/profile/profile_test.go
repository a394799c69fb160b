package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromAnswers(t *testing.T) {
	answers := AnswerSet{
		QuestionName:              "Ana",
		QuestionSensoryChannel:    "visual",
		QuestionExplanationFormat: "analogias_historias",
		QuestionApproach:          "pratica",
		QuestionSocialInteraction: "sozinho",
		QuestionMotivator:         "desafios_metas",
		QuestionCulturalInterest:  "Naruto",
	}

	got := FromAnswers("local-1700000000000", answers)
	assert.Equal(t, Profile{
		ID:                "local-1700000000000",
		Name:              "Ana",
		VarkPrimary:       "visual",
		ExplanationFormat: "analogias_historias",
		Approach:          "pratica",
		SocialInteraction: "sozinho",
		Motivator:         "desafios_metas",
		CulturalInterest:  "Naruto",
	}, got)
	assert.Equal(t, answers, got.Answers())
}

func TestAnswerSet_Clone(t *testing.T) {
	original := AnswerSet{QuestionName: "Ana"}
	clone := original.Clone()
	clone[QuestionName] = "Bia"
	assert.Equal(t, "Ana", original[QuestionName])
}

func TestProfile_IsLocal(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{id: "local-1700000000000", want: true},
		{id: "5f1c8e0a-7b7e-4d4e-9a51-2f2b3c6d7e8f", want: false},
		{id: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Profile{ID: tt.id}.IsLocal())
		})
	}
}

func TestProfile_Initials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "ana", want: "AN"},
		{name: " Élio ", want: "ÉL"},
		{name: "J", want: "J"},
		{name: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Profile{Name: tt.name}.Initials())
		})
	}
}
