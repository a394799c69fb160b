package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/revisahub/revisahub/internal/api"
	"github.com/revisahub/revisahub/internal/chat"
	"github.com/revisahub/revisahub/internal/profile"
	"github.com/revisahub/revisahub/internal/statistics"
	"github.com/revisahub/revisahub/internal/transcript"
)

var ErrNoProfile = errors.New("no learner profile yet, run `revisahub start` first")

func loadProfile(store profile.Store) (profile.Profile, error) {
	p, ok := profile.Restore(store)
	if !ok {
		return profile.Profile{}, ErrNoProfile
	}
	return p, nil
}

func RunProfileShow(w io.Writer, store profile.Store) error {
	p, err := loadProfile(store)
	if err != nil {
		return err
	}
	WriteProfile(w, p)
	return nil
}

// RunProfileSync replaces the stored profile with the backend's copy.
func RunProfileSync(ctx context.Context, w io.Writer, client api.Client, store profile.Store) error {
	p, err := loadProfile(store)
	if err != nil {
		return err
	}
	if p.IsLocal() {
		return fmt.Errorf("profile %s was never registered with the backend", p.ID)
	}

	remote, err := client.GetProfile(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("client.GetProfile(%s) > %w", p.ID, err)
	}
	if err := store.Save(remote); err != nil {
		return fmt.Errorf("store.Save() > %w", err)
	}
	WriteProfile(w, remote)
	return nil
}

// RunProfileLogout forgets the stored profile. Logging out without a profile is fine.
func RunProfileLogout(w io.Writer, store profile.Store) error {
	if err := store.Delete(); err != nil {
		return fmt.Errorf("store.Delete() > %w", err)
	}
	fmt.Fprintln(w, "Perfil removido. Até logo!")
	return nil
}

func RunSessionsList(ctx context.Context, w io.Writer, client api.Client, store profile.Store) error {
	p, err := loadProfile(store)
	if err != nil {
		return err
	}
	sessions, err := client.ListSessions(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("client.ListSessions() > %w", err)
	}
	WriteSessionList(w, sessions)
	return nil
}

func RunSessionShow(ctx context.Context, w io.Writer, renderer Renderer, client api.Client, store profile.Store, sessionID string) error {
	p, err := loadProfile(store)
	if err != nil {
		return err
	}
	history, err := client.SessionMessages(ctx, p.ID, sessionID)
	if err != nil {
		return fmt.Errorf("client.SessionMessages(%s) > %w", sessionID, err)
	}

	cli := NewInteractiveCLI(nil, w, renderer)
	for _, item := range history {
		cli.printMessage(p, chat.FromHistory(item))
	}
	return nil
}

// RunSessionExport writes a session transcript as <exportDir>/<sessionID>.md and
// optionally converts it to PDF.
func RunSessionExport(
	ctx context.Context,
	w io.Writer,
	client api.Client,
	store profile.Store,
	sessionID, exportDir string,
	pdf bool,
) error {
	p, err := loadProfile(store)
	if err != nil {
		return err
	}
	history, err := client.SessionMessages(ctx, p.ID, sessionID)
	if err != nil {
		return fmt.Errorf("client.SessionMessages(%s) > %w", sessionID, err)
	}

	t := transcript.Transcript{
		SessionID:   sessionID,
		LearnerName: p.Name,
	}
	for _, item := range history {
		t.Messages = append(t.Messages, chat.FromHistory(item))
	}
	if sessions, err := client.ListSessions(ctx, p.ID); err != nil {
		slog.Default().Warn("exporting without session title", "error", err)
	} else {
		for _, session := range sessions {
			if session.ID == sessionID {
				t.Title = session.Title
				t.Subject = session.Subject
				break
			}
		}
	}

	path, err := exportTranscript(exportDir, t, pdf)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Conversa exportada para %s\n", path)
	return nil
}

func exportTranscript(exportDir string, t transcript.Transcript, pdf bool) (string, error) {
	mdPath := filepath.Join(exportDir, t.SessionID+".md")
	if err := transcript.WriteMarkdown(mdPath, t); err != nil {
		return "", fmt.Errorf("transcript.WriteMarkdown() > %w", err)
	}
	if !pdf {
		return mdPath, nil
	}
	pdfPath, err := transcript.ConvertMarkdownToPDF(mdPath)
	if err != nil {
		return "", fmt.Errorf("transcript.ConvertMarkdownToPDF() > %w", err)
	}
	return pdfPath, nil
}

func RunStats(ctx context.Context, w io.Writer, client api.Client, store profile.Store) error {
	p, err := loadProfile(store)
	if err != nil {
		return err
	}
	progress, err := client.Progress(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("client.Progress() > %w", err)
	}
	streak, err := client.Streak(ctx, p.ID)
	if err != nil {
		slog.Default().Warn("using the streak embedded in the progress", "error", err)
		report, _ := statistics.NewReport(&progress, nil)
		WriteStatsReport(w, report)
		return nil
	}
	report, _ := statistics.NewReport(&progress, &streak)
	WriteStatsReport(w, report)
	return nil
}

// RunAsk sends one message in a new session and prints the reply.
func RunAsk(
	ctx context.Context,
	w io.Writer,
	renderer Renderer,
	client api.Client,
	store profile.Store,
	subject chat.Subject,
	text, imagePath string,
) error {
	p, err := loadProfile(store)
	if err != nil {
		return err
	}

	controller := chat.NewController(client, p)
	if imagePath != "" {
		image, err := chat.LoadImage(imagePath)
		if err != nil {
			return fmt.Errorf("chat.LoadImage() > %w", err)
		}
		controller.StageImage(image)
	}
	if _, err := controller.SelectSubject(ctx, subject); err != nil {
		return fmt.Errorf("controller.SelectSubject() > %w", err)
	}
	reply, err := controller.InitiateSend(ctx, text)
	if err != nil {
		return fmt.Errorf("controller.InitiateSend() > %w", err)
	}

	cli := NewInteractiveCLI(nil, w, renderer)
	messages := controller.Messages()
	cli.printMessages(p, messages[1:])
	if reply.IsErrorPlaceholder() {
		return errors.New("the tutor could not answer, try again")
	}
	fmt.Fprintf(w, "Sessão: %s\n", controller.SessionID())
	return nil
}
