package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/revisahub/revisahub/internal/api"
	"github.com/revisahub/revisahub/internal/chat"
	"github.com/revisahub/revisahub/internal/profile"
	"github.com/revisahub/revisahub/internal/statistics"
)

const displayTimeLayout = "02/01/2006 15:04"

// WriteStatsReport prints the progress and streak snapshot.
func WriteStatsReport(w io.Writer, report statistics.Report) {
	fmt.Fprintln(w, "Meu Progresso")
	fmt.Fprintln(w, "=============")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "🔥 %d dias de streak (recorde: %d)\n", report.CurrentStreak, report.LongestStreak)
	if report.StudiedToday {
		fmt.Fprintln(w, "   Você já estudou hoje.")
	}
	fmt.Fprintln(w)

	var labels, marks []string
	for _, day := range report.Week {
		labels = append(labels, fmt.Sprintf("%-2s", day.Label))
		switch {
		case day.Active:
			marks = append(marks, "■ ")
		case day.Today:
			marks = append(marks, "□ ")
		default:
			marks = append(marks, "· ")
		}
	}
	fmt.Fprintf(w, "   %s\n", strings.Join(labels, " "))
	fmt.Fprintf(w, "   %s\n", strings.Join(marks, " "))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-24s %d\n", "Conversas:", report.TotalSessions)
	fmt.Fprintf(w, "%-24s %d\n", "Perguntas:", report.TotalMessages)
	fmt.Fprintf(w, "%-24s %d dias\n", "Total de dias estudados:", report.TotalStudyDays)
	if report.FavoriteSubject != "" {
		fmt.Fprintf(w, "%-24s %s\n", "Matéria Favorita:", subjectDisplay(report.FavoriteSubject))
	}
	if len(report.SubjectsStudied) > 0 {
		var studied []string
		for _, label := range report.SubjectsStudied {
			studied = append(studied, subjectDisplay(label))
		}
		fmt.Fprintf(w, "%-24s %s\n", "Matérias Estudadas:", strings.Join(studied, ", "))
	}
}

// WriteSessionList prints sessions numbered from 1, most recent first as returned by the backend.
func WriteSessionList(w io.Writer, sessions []api.SessionSummary) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "Nenhuma conversa ainda.")
		return
	}
	for i, session := range sessions {
		title := session.Title
		if title == "" {
			title = session.ID
		}
		line := fmt.Sprintf("%2d. %s · %s", i+1, subjectDisplay(session.Subject), title)
		if updated, err := api.ParseTimestamp(session.UpdatedAt); err == nil {
			line += fmt.Sprintf(" (%s)", updated.Local().Format(displayTimeLayout))
		}
		fmt.Fprintln(w, line)
	}
}

// WriteProfile prints the stored learner profile.
func WriteProfile(w io.Writer, p profile.Profile) {
	fmt.Fprintf(w, "%-22s %s (%s)\n", "Nome:", p.Name, p.Initials())
	fmt.Fprintf(w, "%-22s %s\n", "ID:", p.ID)
	if p.IsLocal() {
		fmt.Fprintln(w, "                       perfil offline: o servidor não registrou este perfil")
	}
	rows := []struct {
		label string
		value string
	}{
		{"Canal sensorial:", p.VarkPrimary},
		{"Formato de explicação:", p.ExplanationFormat},
		{"Abordagem:", p.Approach},
		{"Interação social:", p.SocialInteraction},
		{"Estrutura de estudo:", p.StudyStructure},
		{"Duração da sessão:", p.SessionDuration},
		{"Ambiente de estudo:", p.StudyEnvironment},
		{"Motivador:", p.Motivator},
		{"Diante de dificuldade:", p.DifficultyStrategy},
		{"Planejamento:", p.StudyPlanning},
		{"Interesse cultural:", p.CulturalInterest},
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(w, "%-22s %s\n", row.label, row.value)
	}
}

func subjectDisplay(label string) string {
	if subject, ok := chat.FindSubjectByLabel(label); ok {
		return subject.String()
	}
	return label
}
