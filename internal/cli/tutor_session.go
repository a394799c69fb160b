package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/revisahub/revisahub/internal/api"
	"github.com/revisahub/revisahub/internal/app"
	"github.com/revisahub/revisahub/internal/chat"
	"github.com/revisahub/revisahub/internal/onboarding"
	"github.com/revisahub/revisahub/internal/profile"
	"github.com/revisahub/revisahub/internal/statistics"
	"github.com/revisahub/revisahub/internal/transcript"
)

const chatHelp = `Comandos:
  /ajuda              mostra esta ajuda
  /nova               começa uma nova conversa
  /historico          lista as conversas anteriores
  /abrir N            abre a conversa N do histórico
  /imagem CAMINHO     anexa uma imagem à próxima mensagem
  /remover-imagem     remove a imagem anexada
  /progresso          mostra seu progresso e streak
  /perfil             mostra seu perfil
  /exportar [--pdf]   exporta a conversa atual
  /sair               apaga o perfil e volta ao início
  /fechar             fecha o aplicativo`

// TutorSession drives the landing, onboarding and chat screens. Each call of Session
// handles one input line of the current screen.
type TutorSession struct {
	*InteractiveCLI
	app       *app.Controller
	client    api.Client
	steps     []onboarding.Step
	exportDir string

	flow    *onboarding.Flow
	answers profile.AnswerSet
	chat    *chat.Controller
}

func NewTutorSession(
	stdin io.Reader,
	stdout io.Writer,
	renderer Renderer,
	appController *app.Controller,
	client api.Client,
	steps []onboarding.Step,
	exportDir string,
) *TutorSession {
	return &TutorSession{
		InteractiveCLI: NewInteractiveCLI(stdin, stdout, renderer),
		app:            appController,
		client:         client,
		steps:          steps,
		exportDir:      exportDir,
	}
}

func (session *TutorSession) Session(ctx context.Context) error {
	switch session.app.View() {
	case app.ViewLanding:
		return session.landing()
	case app.ViewOnboarding:
		return session.onboarding(ctx)
	case app.ViewChat:
		return session.chatScreen(ctx)
	}
	return fmt.Errorf("unknown view: %s", session.app.View())
}

func (session *TutorSession) landing() error {
	session.chat = nil
	_, _ = session.accent.Fprintln(session.stdoutWriter, "Mindly")
	session.println("Seu tutor de estudos que explica do seu jeito.")
	session.println()
	session.printf("Pressione Enter para começar ou digite /fechar para sair: ")

	line, err := session.readLine()
	if err != nil {
		return err
	}
	switch strings.TrimSpace(line) {
	case "/fechar", "/sair":
		return errEnd
	}

	if err := session.app.Start(); err != nil {
		return fmt.Errorf("app.Start() > %w", err)
	}
	session.answers = nil
	flow, err := onboarding.NewFlow(session.steps, func(answers profile.AnswerSet) {
		session.answers = answers
	})
	if err != nil {
		return fmt.Errorf("onboarding.NewFlow() > %w", err)
	}
	session.flow = flow
	return nil
}

func (session *TutorSession) onboarding(ctx context.Context) error {
	flow := session.flow
	step := flow.Current()
	session.printStep(flow, step)

	line, err := session.readLine()
	if err != nil {
		return err
	}
	input := strings.TrimSpace(line)
	switch input {
	case "/fechar", "/sair":
		return errEnd
	case "/voltar":
		if err := flow.Retreat(); err != nil {
			session.printNotice("Você já está na primeira pergunta.")
		}
		return nil
	}

	if step.IsQuestion() && input != "" {
		value, ok := resolveAnswer(step, input)
		if !ok {
			session.printNotice("Escolha uma das opções pelo número.")
			return nil
		}
		if err := flow.Answer(step.QuestionID, value); err != nil {
			return fmt.Errorf("flow.Answer(%s) > %w", step.QuestionID, err)
		}
	}

	if err := flow.Advance(); err != nil {
		if errors.Is(err, onboarding.ErrCannotAdvance) {
			session.printNotice("Responda a pergunta para continuar.")
			return nil
		}
		return fmt.Errorf("flow.Advance() > %w", err)
	}
	if !flow.Completed() {
		return nil
	}

	p, err := session.app.CompleteOnboarding(ctx, session.answers)
	if err != nil {
		return fmt.Errorf("app.CompleteOnboarding() > %w", err)
	}
	session.flow = nil
	session.openChat(ctx, p)
	return nil
}

func (session *TutorSession) printStep(flow *onboarding.Flow, step onboarding.Step) {
	session.println()
	_, _ = session.bold.Fprintf(session.stdoutWriter, "%s", step.BlockTitle)
	_, _ = session.faint.Fprintf(session.stdoutWriter, "  %d%%\n", int(flow.Progress()*100))

	if !step.IsQuestion() {
		session.println(step.Description)
		session.printf("Pressione Enter para continuar: ")
		return
	}

	session.println(step.Label)
	if step.Description != "" {
		_, _ = session.italic.Fprintln(session.stdoutWriter, step.Description)
	}
	current, _ := flow.Value(step.QuestionID)
	for i, option := range step.Options {
		marker := " "
		if option.Value == current {
			marker = "*"
		}
		session.printf("%s %d. %s\n", marker, i+1, option.Label)
	}
	if step.Kind == onboarding.StepTextInput {
		if current != "" {
			session.printf("(%s)\n", current)
		} else if step.Placeholder != "" {
			_, _ = session.faint.Fprintln(session.stdoutWriter, step.Placeholder)
		}
	}
	if flow.CanRetreat() {
		_, _ = session.faint.Fprintln(session.stdoutWriter, "/voltar para a pergunta anterior")
	}
	session.printf("> ")
}

// resolveAnswer maps the typed input to a step value: an option number or value for
// selections, the trimmed text otherwise.
func resolveAnswer(step onboarding.Step, input string) (string, bool) {
	if step.Kind != onboarding.StepSingleSelect {
		return input, true
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(step.Options) {
			return "", false
		}
		return step.Options[n-1].Value, true
	}
	if step.Accepts(input) {
		return input, true
	}
	return "", false
}

func (session *TutorSession) openChat(ctx context.Context, p profile.Profile) {
	session.chat = chat.NewController(session.client, p)
	session.chat.RefreshSessions(ctx)
	session.chat.RefreshStats(ctx)

	session.println()
	_, _ = session.accent.Fprintf(session.stdoutWriter, "Mindly · %s\n", p.Name)
	if p.IsLocal() {
		session.printNotice("Perfil offline: o servidor não respondeu, suas preferências ficaram só neste computador.")
	}
	_, _ = session.faint.Fprintln(session.stdoutWriter, "Digite /ajuda para ver os comandos.")
	session.println()
	session.printMessages(p, session.chat.Messages())
}

func (session *TutorSession) chatScreen(ctx context.Context) error {
	if session.chat == nil {
		p, ok := session.app.Profile()
		if !ok {
			return errors.New("chat view without a profile")
		}
		session.openChat(ctx, p)
	}
	if session.chat.State() == chat.StateSubjectPending {
		return session.subjectMenu(ctx)
	}

	prompt := "> "
	if image, ok := session.chat.StagedImage(); ok {
		prompt = fmt.Sprintf("[%s] > ", image.Name)
	}
	if subject, ok := session.chat.Subject(); ok {
		prompt = subject.String() + " " + prompt
	}
	session.printf("%s", prompt)

	line, err := session.readLine()
	if err != nil {
		return err
	}
	input := strings.TrimSpace(line)
	if strings.HasPrefix(input, "/") {
		return session.command(ctx, input)
	}

	reply, err := session.chat.InitiateSend(ctx, input)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrSubjectRequired):
		return nil
	case errors.Is(err, chat.ErrSendInFlight):
		session.printNotice("Aguarde a resposta da mensagem anterior.")
		return nil
	case err != nil:
		return fmt.Errorf("chat.InitiateSend() > %w", err)
	}
	session.println()
	session.printMessage(session.chat.Profile(), reply)
	return nil
}

func (session *TutorSession) subjectMenu(ctx context.Context) error {
	session.println()
	_, _ = session.bold.Fprintln(session.stdoutWriter, "Qual é a matéria?")
	subjects := chat.Subjects()
	for i, subject := range subjects {
		session.printf("  %d. %s\n", i+1, subject)
	}
	_, _ = session.faint.Fprintln(session.stdoutWriter, "/cancelar para voltar à mensagem")
	session.printf("> ")

	line, err := session.readLine()
	if err != nil {
		return err
	}
	input := strings.TrimSpace(line)
	if input == "/cancelar" {
		if err := session.chat.CancelSubjectSelection(); err != nil {
			return fmt.Errorf("chat.CancelSubjectSelection() > %w", err)
		}
		return nil
	}

	subject, ok := resolveSubject(subjects, input)
	if !ok {
		session.printNotice("Escolha uma matéria pelo número.")
		return nil
	}
	reply, err := session.chat.SelectSubject(ctx, subject)
	if err != nil {
		if errors.Is(err, chat.ErrSendInFlight) {
			session.printNotice("Aguarde a resposta da mensagem anterior.")
			return nil
		}
		return fmt.Errorf("chat.SelectSubject() > %w", err)
	}
	session.println()
	session.printMessage(session.chat.Profile(), reply)
	return nil
}

func resolveSubject(subjects []chat.Subject, input string) (chat.Subject, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(subjects) {
			return chat.Subject{}, false
		}
		return subjects[n-1], true
	}
	index := slices.IndexFunc(subjects, func(subject chat.Subject) bool {
		return subject.ID == input || strings.EqualFold(subject.Label, input)
	})
	if index < 0 {
		return chat.Subject{}, false
	}
	return subjects[index], true
}

func (session *TutorSession) command(ctx context.Context, input string) error {
	name, argument, _ := strings.Cut(input, " ")
	argument = strings.TrimSpace(argument)
	p := session.chat.Profile()

	switch name {
	case "/ajuda":
		session.println(chatHelp)
	case "/nova":
		session.chat.StartNewChat()
		session.println()
		session.printMessages(p, session.chat.Messages())
	case "/historico":
		session.chat.RefreshSessions(ctx)
		WriteSessionList(session.stdoutWriter, session.chat.Sessions())
	case "/abrir":
		session.openSession(ctx, argument)
	case "/imagem":
		session.stageImage(argument)
	case "/remover-imagem":
		session.chat.ClearImage()
		session.println("Imagem removida.")
	case "/progresso":
		session.chat.RefreshStats(ctx)
		report, ok := statistics.NewReport(session.chat.Stats())
		if !ok {
			session.printNotice("Progresso indisponível no momento.")
			return nil
		}
		WriteStatsReport(session.stdoutWriter, report)
	case "/perfil":
		WriteProfile(session.stdoutWriter, p)
	case "/exportar":
		session.export(argument == "--pdf")
	case "/sair":
		if err := session.app.Logout(); err != nil {
			return fmt.Errorf("app.Logout() > %w", err)
		}
		session.chat = nil
		session.println("Perfil removido. Até logo!")
		session.println()
	case "/fechar":
		return errEnd
	default:
		session.printNotice("Comando desconhecido. Digite /ajuda.")
	}
	return nil
}

func (session *TutorSession) openSession(ctx context.Context, argument string) {
	sessions := session.chat.Sessions()
	if len(sessions) == 0 {
		session.chat.RefreshSessions(ctx)
		sessions = session.chat.Sessions()
	}
	n, err := strconv.Atoi(argument)
	if err != nil || n < 1 || n > len(sessions) {
		session.printNotice("Use /abrir N com um número de /historico.")
		return
	}

	summary := sessions[n-1]
	var subject *chat.Subject
	if s, ok := chat.FindSubjectByLabel(summary.Subject); ok {
		subject = &s
	}
	if err := session.chat.LoadSession(ctx, summary.ID, subject); err != nil {
		session.printNotice("Não foi possível carregar a conversa.")
		return
	}
	session.println()
	session.printMessages(session.chat.Profile(), session.chat.Messages())
}

func (session *TutorSession) stageImage(path string) {
	if path == "" {
		session.printNotice("Use /imagem CAMINHO.")
		return
	}
	image, err := chat.LoadImage(path)
	if err != nil {
		if errors.Is(err, chat.ErrNotAnImage) {
			session.printNotice("Por favor, selecione uma imagem válida")
		} else {
			session.printNotice("Não foi possível ler %s", path)
		}
		return
	}
	session.chat.StageImage(image)
	session.printf("Imagem anexada: %s\n", image.Name)
}

func (session *TutorSession) export(pdf bool) {
	sessionID := session.chat.SessionID()
	t := transcript.Transcript{
		SessionID:   sessionID,
		LearnerName: session.chat.Profile().Name,
		Messages:    session.chat.Messages(),
	}
	if subject, ok := session.chat.Subject(); ok {
		t.Subject = subject.Label
	}
	for _, summary := range session.chat.Sessions() {
		if summary.ID == sessionID {
			t.Title = summary.Title
			break
		}
	}

	path, err := exportTranscript(session.exportDir, t, pdf)
	if err != nil {
		session.printNotice("Não foi possível exportar a conversa: %v", err)
		return
	}
	session.printf("Conversa exportada para %s\n", path)
}
