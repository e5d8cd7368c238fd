package screening

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases", input: "John", want: "john"},
		{name: "trims outer whitespace", input: "  John Smith  ", want: "john smith"},
		{name: "keeps inner whitespace", input: "Acme  Corp", want: "acme  corp"},
		{name: "trims tabs and newlines", input: "\tAcme Corp\n", want: "acme corp"},
		{name: "empty stays empty", input: "", want: ""},
		{name: "literal nan is blanked", input: "nan", want: ""},
		{name: "uppercase NaN is blanked", input: "NaN", want: ""},
		{name: "all caps NAN is blanked", input: "NAN", want: ""},
		{name: "padded nan survives as text", input: " nan ", want: "nan"},
		{name: "nan inside a word survives", input: "Nando's", want: "nando's"},
		{name: "nancy is not nan", input: "Nancy", want: "nancy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
