package models

import "testing"

func TestRegistrationCollection(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{
			name:  "individual event",
			event: Event{EventName: "Hack Night", ParticipationType: ParticipationIndividual},
			want:  "HackNightParticipants",
		},
		{
			name:  "team event",
			event: Event{EventName: "Code Storm", ParticipationType: ParticipationTeam, TeamSize: 3},
			want:  "CodeStormTeams",
		},
		{
			name:  "mixed whitespace stripped",
			event: Event{EventName: "  Tech\tTalk 2026 ", ParticipationType: ParticipationIndividual},
			want:  "TechTalk2026Participants",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RegistrationCollection(&tt.event); got != tt.want {
				t.Fatalf("RegistrationCollection = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMailCollection(t *testing.T) {
	event := Event{EventName: "Hack Night", ParticipationType: ParticipationIndividual}
	if got := MailCollection(&event); got != "HackNightMails" {
		t.Fatalf("MailCollection = %q, want HackNightMails", got)
	}
}

func TestCustomQuestionFieldName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"T-shirt size", "custom_q_T-shirt_size"},
		{"Dietary  restrictions", "custom_q_Dietary_restrictions"},
		{"Single", "custom_q_Single"},
	}

	for _, tt := range tests {
		if got := CustomQuestionFieldName(tt.label); got != tt.want {
			t.Fatalf("CustomQuestionFieldName(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestParticipantFieldName(t *testing.T) {
	if got := ParticipantFieldName(2, "email"); got != "p2_email" {
		t.Fatalf("ParticipantFieldName = %q, want p2_email", got)
	}
}

func TestParticipantCount(t *testing.T) {
	tests := []struct {
		name   string
		event  Event
		want   int
		wantOK bool
	}{
		{"individual", Event{ParticipationType: ParticipationIndividual}, 1, true},
		{"individual ignores team size", Event{ParticipationType: ParticipationIndividual, TeamSize: 5}, 1, true},
		{"team of three", Event{ParticipationType: ParticipationTeam, TeamSize: 3}, 3, true},
		{"team size zero", Event{ParticipationType: ParticipationTeam, TeamSize: 0}, 0, false},
		{"team size negative", Event{ParticipationType: ParticipationTeam, TeamSize: -1}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.event.ParticipantCount()
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("ParticipantCount = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
