package validation

import (
	"strings"
	"testing"

	"quizwhiz/internal/domain"
)

func TestValidateStartQuizRequest(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		topic     string
		mode      string
		wantCount int
	}{
		{"valid mcq", "photosynthesis", "mcq", 0},
		{"valid mixed", "photosynthesis", "mixed", 0},
		{"valid default mode", "photosynthesis", "", 0},
		{"missing topic", "", "mcq", 1},
		{"whitespace topic", "   ", "mcq", 1},
		{"topic too long", strings.Repeat("a", 2001), "mcq", 1},
		{"unknown mode", "photosynthesis", "boolean", 1},
		{"both invalid", "", "boolean", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateStartQuizRequest(tt.topic, tt.mode)
			if len(errs) != tt.wantCount {
				t.Errorf("got %d validation errors, want %d: %v", len(errs), tt.wantCount, errs)
			}
		})
	}
}

func TestValidateSessionID(t *testing.T) {
	v := NewValidator()

	if errs := v.ValidateSessionID("01HZXSESSION00000000000000"); len(errs) != 0 {
		t.Errorf("expected valid ULID to pass, got %v", errs)
	}
	if errs := v.ValidateSessionID(""); len(errs) != 1 {
		t.Errorf("expected missing id error, got %v", errs)
	}
	// Wrong length and illegal characters (I, L, O, U are excluded from Crockford base32).
	for _, id := range []string{"short", "01HZXSESSION0000000000000I", strings.Repeat("0", 27)} {
		if errs := v.ValidateSessionID(id); len(errs) != 1 {
			t.Errorf("expected format error for %q, got %v", id, errs)
		}
	}
}

func TestValidateAnswerRequest(t *testing.T) {
	v := NewValidator()

	errs := v.ValidateAnswerRequest("01HZXSESSION00000000000000", "Paris")
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}

	errs = v.ValidateAnswerRequest("01HZXSESSION00000000000000", "")
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	var vErr domain.ValidationError = errs[0]
	if vErr.Field != "answer" {
		t.Errorf("expected error on answer field, got %s", vErr.Field)
	}

	errs = v.ValidateAnswerRequest("bad-id", strings.Repeat("x", 2001))
	if len(errs) != 2 {
		t.Errorf("expected two errors, got %v", errs)
	}
}

func TestValidateAttemptsLimit(t *testing.T) {
	v := NewValidator()

	for _, limit := range []int{0, 1, 20, 100} {
		if errs := v.ValidateAttemptsLimit(limit); len(errs) != 0 {
			t.Errorf("limit %d should be valid, got %v", limit, errs)
		}
	}
	for _, limit := range []int{-1, 101} {
		if errs := v.ValidateAttemptsLimit(limit); len(errs) != 1 {
			t.Errorf("limit %d should be rejected, got %v", limit, errs)
		}
	}
}
