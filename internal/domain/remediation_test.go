package domain

import "testing"

func TestNewRemediationPacket(t *testing.T) {
	followUp := func(opts ...string) *MultipleChoiceQuestion {
		return &MultipleChoiceQuestion{Text: "Check question?", Options: opts, Answer: opts[0], Level: DifficultyMedium}
	}

	tests := []struct {
		name        string
		diagnosis   string
		microLesson string
		followUp    *MultipleChoiceQuestion
		wantErr     bool
	}{
		{"valid", "diag", "lesson", followUp("A", "B", "C", "D"), false},
		{"empty diagnosis", "", "lesson", followUp("A", "B", "C", "D"), true},
		{"empty lesson", "diag", "  ", followUp("A", "B", "C", "D"), true},
		{"missing follow-up", "diag", "lesson", nil, true},
		{"three options", "diag", "lesson", followUp("A", "B", "C"), true},
		{"five options", "diag", "lesson", followUp("A", "B", "C", "D", "E"), true},
		{"duplicate options", "diag", "lesson", followUp("A", "A", "B", "C"), true},
		{
			"answer not an option",
			"diag", "lesson",
			&MultipleChoiceQuestion{Text: "Q", Options: []string{"A", "B", "C", "D"}, Answer: "E", Level: DifficultyEasy},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewRemediationPacket(tt.diagnosis, tt.microLesson, tt.followUp)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && p.FollowUp.Level != DifficultyEasy {
				t.Errorf("follow-up difficulty must be forced to Easy, got %s", p.FollowUp.Level)
			}
		})
	}
}
