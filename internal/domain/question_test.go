package domain

import "testing"

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{
			"valid mcq",
			&MultipleChoiceQuestion{Text: "Q", Options: []string{"A", "B", "C", "D"}, Answer: "A", Level: DifficultyEasy},
			false,
		},
		{
			"mcq answer not an option",
			&MultipleChoiceQuestion{Text: "Q", Options: []string{"A", "B", "C", "D"}, Answer: "E", Level: DifficultyEasy},
			true,
		},
		{
			"mcq duplicate options",
			&MultipleChoiceQuestion{Text: "Q", Options: []string{"A", "A", "B", "C"}, Answer: "A", Level: DifficultyEasy},
			true,
		},
		{
			"mcq single option",
			&MultipleChoiceQuestion{Text: "Q", Options: []string{"A"}, Answer: "A", Level: DifficultyEasy},
			true,
		},
		{
			"mcq empty prompt",
			&MultipleChoiceQuestion{Text: "  ", Options: []string{"A", "B"}, Answer: "A", Level: DifficultyEasy},
			true,
		},
		{
			"valid tf",
			&TrueFalseQuestion{Text: "Q", Answer: "True", Level: DifficultyEasy},
			false,
		},
		{
			"tf lowercase answer",
			&TrueFalseQuestion{Text: "Q", Answer: "false", Level: DifficultyEasy},
			false,
		},
		{
			"tf bad answer",
			&TrueFalseQuestion{Text: "Q", Answer: "maybe", Level: DifficultyEasy},
			true,
		},
		{
			"valid fib",
			&FillInBlankQuestion{Text: "Q ____", Answer: "x", Level: DifficultyEasy},
			false,
		},
		{
			"fib empty answer",
			&FillInBlankQuestion{Text: "Q ____", Answer: "", Level: DifficultyEasy},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuestionRoundTrip(t *testing.T) {
	questions := []Question{
		&MultipleChoiceQuestion{Text: "Q0", Options: []string{"A", "B", "C", "D"}, Answer: "B", Level: DifficultyHard},
		&TrueFalseQuestion{Text: "Q1", Answer: "True", Level: DifficultyMedium},
		&FillInBlankQuestion{Text: "Q2 ____", Answer: "x", Level: DifficultyEasy},
	}

	for _, q := range questions {
		data, err := MarshalQuestion(q)
		if err != nil {
			t.Fatalf("marshal %s: %v", q.Kind(), err)
		}
		back, err := UnmarshalQuestion(data)
		if err != nil {
			t.Fatalf("unmarshal %s: %v", q.Kind(), err)
		}
		if back.Kind() != q.Kind() || back.Prompt() != q.Prompt() || back.CorrectAnswer() != q.CorrectAnswer() || back.Difficulty() != q.Difficulty() {
			t.Errorf("round trip changed %s: got %+v", q.Kind(), back)
		}
	}
}

func TestUnmarshalQuestion_UnknownKind(t *testing.T) {
	if _, err := UnmarshalQuestion([]byte(`{"kind":"ESSAY","prompt":"Q","answer":"x"}`)); err == nil {
		t.Errorf("unknown kind must fail decoding")
	}
}

func TestParseDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"easy":    DifficultyEasy,
		"Medium":  DifficultyMedium,
		"HARD":    DifficultyHard,
		"extreme": DifficultyEasy,
		"":        DifficultyEasy,
	}
	for in, want := range cases {
		if got := ParseDifficulty(in); got != want {
			t.Errorf("ParseDifficulty(%q) = %s, want %s", in, got, want)
		}
	}
}
