package classify

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Style
	}{
		{
			name: "philosophy lecture",
			text: "A metafísica de Aristóteles estuda o ser enquanto ser.",
			want: Philosophy,
		},
		{
			name: "single keyword is not enough",
			text: "Hoje falaremos sobre filosofia e futebol.",
			want: General,
		},
		{
			name: "general text",
			text: "A reunião de amanhã foi adiada para a próxima semana.",
			want: General,
		},
		{
			name: "case insensitive",
			text: "FILOSOFIA e ONTOLOGIA na aula de hoje.",
			want: Philosophy,
		},
		{
			name: "empty",
			text: "",
			want: General,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestStyle_String(t *testing.T) {
	if General.String() != "general" {
		t.Errorf("got %q", General.String())
	}
	if Philosophy.String() != "philosophy" {
		t.Errorf("got %q", Philosophy.String())
	}
}
