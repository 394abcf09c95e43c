package fic

import (
	"testing"
	"time"
)

func TestDueDate(t *testing.T) {
	from := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		termsDays int
		termsType string
		want      time.Time
	}{
		{
			name:      "immediate",
			termsDays: 0,
			termsType: "standard",
			want:      time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "standard 30 days",
			termsDays: 30,
			termsType: "standard",
			want:      time.Date(2026, time.April, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "end of month same month",
			termsDays: 10,
			termsType: TermsEndOfMonth,
			want:      time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "end of month after rollover",
			termsDays: 30,
			termsType: TermsEndOfMonth,
			want:      time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "end of month lands on february",
			termsDays: 60,
			termsType: TermsEndOfMonth,
			want:      time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DueDate(from, tt.termsDays, tt.termsType)
			if !got.Equal(tt.want) {
				t.Errorf("DueDate(%d, %q) = %s, want %s",
					tt.termsDays, tt.termsType, got.Format(dateLayout), tt.want.Format(dateLayout))
			}
		})
	}
}

func TestDueDate_EndOfMonthDecemberRollover(t *testing.T) {
	from := time.Date(2026, time.December, 20, 0, 0, 0, 0, time.UTC)

	got := DueDate(from, 15, TermsEndOfMonth)
	want := time.Date(2027, time.January, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DueDate = %s, want %s", got.Format(dateLayout), want.Format(dateLayout))
	}
}
