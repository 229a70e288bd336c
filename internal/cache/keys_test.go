package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name       string
		service    string
		objectType string
		identifier string
		params     []string
		want       string
	}{
		{
			name:       "basic key",
			service:    "session",
			objectType: "state",
			identifier: "01HZX3",
			want:       "quizwhiz:session:state:01HZX3",
		},
		{
			name:       "key with params",
			service:    "quizgen",
			objectType: "batch",
			identifier: "astronomy",
			params:     []string{"mcq", "5"},
			want:       "quizwhiz:quizgen:batch:astronomy:mcq_5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateCacheKey(tt.service, tt.objectType, tt.identifier, tt.params...)
			if got != tt.want {
				t.Errorf("GenerateCacheKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionStateKey(t *testing.T) {
	if got := SessionStateKey("01HZX3"); got != "quizwhiz:session:state:01HZX3" {
		t.Errorf("SessionStateKey() = %q", got)
	}
}
