package phrase

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello", "hello"},
		{"trim", "  Good morning  ", "good morning"},
		{"collapse", "good\t\n  morning", "good morning"},
		{"case fold", "GOOD Morning", "good morning"},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"japanese untouched", "おはよう ございます", "おはよう ございます"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("%s: Normalize(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
		}
	}
}

func TestNormalize_CaseVariantsCollide(t *testing.T) {
	if Normalize("Good morning") != Normalize("good MORNING") {
		t.Error("case variants should normalize to the same key")
	}
}
