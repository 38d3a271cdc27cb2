package layout

import "testing"

func TestIsCyrillic(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"есьв", true},
		{"ЕСЬВ", true},
		{"еч еч", true},
		{"tcmd", false},
		{"есьd", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		if got := IsCyrillic(tt.in); got != tt.want {
			t.Errorf("IsCyrillic(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// "tcmd" typed on a Russian layout
		{"есьв", "tcmd"},
		{"ЕСЬВ", "tcmd"},
		{"еч еч", "tx tx"},
		// unmapped runes survive
		{"есьв.exe", "tcmd.exe"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Translate(tt.in); got != tt.want {
			t.Errorf("Translate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
