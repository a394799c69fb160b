package cli

import (
	"bytes"
	"testing"

	"github.com/revisahub/revisahub/internal/api"
	"github.com/revisahub/revisahub/internal/statistics"
	"github.com/stretchr/testify/assert"
)

func TestWriteStatsReport_Calendar(t *testing.T) {
	tests := []struct {
		name     string
		calendar []string
		want     string
	}{
		{
			name:     "studied today",
			calendar: []string{"", "", "", "", "2025-02-27", "", "2025-03-01"},
			want:     "   ·  ·  ·  ·  ■  ·  ■ \n",
		},
		{
			name:     "not yet today",
			calendar: []string{"2025-02-23", "", "", "", "", "", ""},
			want:     "   ■  ·  ·  ·  ·  ·  □ \n",
		},
		{
			name: "missing calendar",
			want: "   ·  ·  ·  ·  ·  ·  □ \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, ok := statistics.NewReport(nil, &api.Streak{StreakCalendar: tt.calendar})
			assert.True(t, ok)
			var stdout bytes.Buffer

			WriteStatsReport(&stdout, report)
			assert.Contains(t, stdout.String(), "   D  S  T  Q  Q  S  S \n")
			assert.Contains(t, stdout.String(), tt.want)
		})
	}
}

func TestWriteSessionList_UpdatedAt(t *testing.T) {
	var stdout bytes.Buffer
	WriteSessionList(&stdout, []api.SessionSummary{
		{ID: "s1", Title: "Mitose", Subject: "Biologia", UpdatedAt: "2025-03-01T10:00:00Z"},
	})
	assert.Regexp(t, `^ 1\. 🧬 Biologia · Mitose \(\d{2}/\d{2}/2025 \d{2}:\d{2}\)\n$`, stdout.String())
}
