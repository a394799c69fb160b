package onboarding

import (
	"fmt"

	"github.com/revisahub/revisahub/internal/profile"
)

const (
	CatalogFull    = "full"
	CatalogMinimal = "minimal"
)

const (
	blockLearning    = "A"
	blockHabits      = "B"
	blockMotivation  = "C"
	blockPersonal    = "E"
	blockName        = "name"
	titleLearning    = "Como você aprende melhor"
	titleHabits      = "Seu jeito de estudar"
	titleMotivation  = "Motivação e estratégias"
	titlePersonal    = "Personalização"
	titleName        = "Quase lá!"
	introTitle       = "Vamos personalizar sua experiência!"
	introDescription = "Responda algumas perguntas rápidas para mapear seu estilo de aprendizagem e adaptar as explicações ao seu jeito."
	interestLabel    = "Qual filme, jogo, série, anime ou desenho você mais gosta e conhece bem?"
	interestHint     = "Vou usar isso para criar analogias que fazem sentido pra você!"
	interestExample  = "Ex: League of Legends, Naruto, Harry Potter, Marvel..."
	nameLabel        = "Como posso te chamar?"
	namePlaceholder  = "Seu nome ou apelido"
)

func introStep() Step {
	return Step{
		Kind:        StepIntro,
		Block:       "intro",
		BlockTitle:  introTitle,
		Description: introDescription,
	}
}

func sensoryChannelStep() Step {
	return Step{
		Kind:       StepSingleSelect,
		Block:      blockLearning,
		BlockTitle: titleLearning,
		QuestionID: profile.QuestionSensoryChannel,
		Label:      "Quando aprende algo novo, o que te ajuda mais?",
		Options: []Option{
			{Value: "visual", Label: "Ver diagramas, mapas ou imagens"},
			{Value: "auditivo", Label: "Ouvir explicações ou podcasts"},
			{Value: "leitura_escrita", Label: "Ler textos e resumos"},
			{Value: "cinestesico", Label: "Fazer atividades práticas"},
		},
	}
}

func explanationFormatStep() Step {
	return Step{
		Kind:       StepSingleSelect,
		Block:      blockLearning,
		BlockTitle: titleLearning,
		QuestionID: profile.QuestionExplanationFormat,
		Label:      "Você prefere explicações...",
		Options: []Option{
			{Value: "curta_objetiva", Label: "Curtas e objetivas"},
			{Value: "detalhada_aprofundada", Label: "Detalhadas e aprofundadas"},
			{Value: "exemplos_praticos", Label: "Com muitos exemplos práticos"},
			{Value: "analogias_historias", Label: "Com analogias e storytelling"},
		},
	}
}

func approachStep() Step {
	return Step{
		Kind:       StepSingleSelect,
		Block:      blockLearning,
		BlockTitle: titleLearning,
		QuestionID: profile.QuestionApproach,
		Label:      "Você prefere aprender...",
		Options: []Option{
			{Value: "pratica", Label: "Por exemplos e aplicações práticas primeiro"},
			{Value: "teorica", Label: "Pela teoria e conceitos primeiro"},
		},
	}
}

func socialInteractionStep(block, title string) Step {
	return Step{
		Kind:       StepSingleSelect,
		Block:      block,
		BlockTitle: title,
		QuestionID: profile.QuestionSocialInteraction,
		Label:      "Você estuda melhor...",
		Options: []Option{
			{Value: "sozinho", Label: "Sozinho(a)"},
			{Value: "dupla", Label: "Em dupla"},
			{Value: "grupo", Label: "Em grupo"},
			{Value: "tutor", Label: "Com orientação de tutor"},
		},
	}
}

func motivatorStep(block, title string) Step {
	return Step{
		Kind:       StepSingleSelect,
		Block:      block,
		BlockTitle: title,
		QuestionID: profile.QuestionMotivator,
		Label:      "O que mais te motiva?",
		Options: []Option{
			{Value: "desafios_metas", Label: "Desafios e metas claras"},
			{Value: "interesse_pessoal", Label: "Explorar temas de interesse"},
			{Value: "reconhecimento", Label: "Reconhecimento e recompensas"},
			{Value: "utilidade_pratica", Label: "Utilidade prática do conteúdo"},
		},
	}
}

func culturalInterestStep() Step {
	return Step{
		Kind:        StepTextInput,
		Block:       blockPersonal,
		BlockTitle:  titlePersonal,
		QuestionID:  profile.QuestionCulturalInterest,
		Label:       interestLabel,
		Description: interestHint,
		Placeholder: interestExample,
	}
}

func nameStep() Step {
	return Step{
		Kind:        StepTextInput,
		Block:       blockName,
		BlockTitle:  titleName,
		QuestionID:  profile.QuestionName,
		Label:       nameLabel,
		Placeholder: namePlaceholder,
	}
}

// DefaultCatalog is the complete questionnaire: an introduction, three preference blocks,
// the cultural interest used for analogies and the learner's name.
func DefaultCatalog() []Step {
	return []Step{
		introStep(),

		sensoryChannelStep(),
		explanationFormatStep(),
		approachStep(),

		socialInteractionStep(blockHabits, titleHabits),
		{
			Kind:       StepSingleSelect,
			Block:      blockHabits,
			BlockTitle: titleHabits,
			QuestionID: profile.QuestionStudyStructure,
			Label:      "Ao estudar, você prefere...",
			Options: []Option{
				{Value: "estruturado", Label: "Seguir um roteiro estruturado"},
				{Value: "livre", Label: "Ter liberdade total"},
				{Value: "equilibrado", Label: "Equilíbrio entre os dois"},
			},
		},
		{
			Kind:       StepSingleSelect,
			Block:      blockHabits,
			BlockTitle: titleHabits,
			QuestionID: profile.QuestionSessionDuration,
			Label:      "Tempo ideal de sessão de estudo",
			Options: []Option{
				{Value: "menos_15", Label: "Menos de 15 min"},
				{Value: "15_30", Label: "15 a 30 min"},
				{Value: "30_60", Label: "30 a 60 min"},
				{Value: "mais_60", Label: "Mais de 1 hora"},
			},
		},
		{
			Kind:       StepSingleSelect,
			Block:      blockHabits,
			BlockTitle: titleHabits,
			QuestionID: profile.QuestionStudyEnvironment,
			Label:      "Onde você rende mais?",
			Options: []Option{
				{Value: "silencio", Label: "Silêncio total"},
				{Value: "musica", Label: "Com música de fundo"},
				{Value: "movimento", Label: "Lugares com movimento"},
				{Value: "depende", Label: "Depende do dia"},
			},
		},

		motivatorStep(blockMotivation, titleMotivation),
		{
			Kind:       StepSingleSelect,
			Block:      blockMotivation,
			BlockTitle: titleMotivation,
			QuestionID: profile.QuestionDifficultyStrategy,
			Label:      "Quando não entende algo, você...",
			Options: []Option{
				{Value: "procura_sozinho", Label: "Procura sozinho(a) uma solução"},
				{Value: "pede_ajuda", Label: "Pede ajuda"},
				{Value: "autoexplica", Label: "Explica para si mesmo(a)"},
				{Value: "busca_exemplos", Label: "Busca exemplos ou analogias"},
			},
		},
		{
			Kind:       StepSingleSelect,
			Block:      blockMotivation,
			BlockTitle: titleMotivation,
			QuestionID: profile.QuestionStudyPlanning,
			Label:      "Você planeja seus estudos?",
			Options: []Option{
				{Value: "sempre", Label: "Sempre"},
				{Value: "as_vezes", Label: "Às vezes"},
				{Value: "raramente", Label: "Raramente"},
				{Value: "nunca", Label: "Nunca"},
			},
		},

		culturalInterestStep(),
		nameStep(),
	}
}

// MinimalCatalog asks only the questions every profile needs.
func MinimalCatalog() []Step {
	return []Step{
		introStep(),
		sensoryChannelStep(),
		explanationFormatStep(),
		approachStep(),
		socialInteractionStep(blockHabits, titleHabits),
		motivatorStep(blockHabits, titleHabits),
		culturalInterestStep(),
		nameStep(),
	}
}

// CatalogByName resolves a catalog configured by name.
func CatalogByName(name string) ([]Step, error) {
	switch name {
	case "", CatalogFull:
		return DefaultCatalog(), nil
	case CatalogMinimal:
		return MinimalCatalog(), nil
	}
	return nil, fmt.Errorf("unknown onboarding catalog: %s", name)
}
