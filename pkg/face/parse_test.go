package face

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr bool
		check   func(lipgloss.Style) bool
	}{
		{spec: "", check: func(s lipgloss.Style) bool { return !s.GetBold() }},
		{spec: "bold", check: func(s lipgloss.Style) bool { return s.GetBold() }},
		{spec: "bold underline faint", check: func(s lipgloss.Style) bool {
			return s.GetBold() && s.GetUnderline() && s.GetFaint()
		}},
		{spec: "fg=red", check: func(s lipgloss.Style) bool {
			return s.GetForeground() == lipgloss.Color("1")
		}},
		{spec: "fg=#c6c6c6 bg=238", check: func(s lipgloss.Style) bool {
			return s.GetForeground() == lipgloss.Color("#c6c6c6") &&
				s.GetBackground() == lipgloss.Color("238")
		}},
		{spec: "fg=bright-blue", check: func(s lipgloss.Style) bool {
			return s.GetForeground() == lipgloss.Color("12")
		}},

		{spec: "lorem", wantErr: true},
		{spec: "fg=", wantErr: true},
		{spec: "fg=#c6c6c", wantErr: true},
		{spec: "bg=256", wantErr: true},
		{spec: "inherit=shadow", wantErr: true},
	}
	for _, test := range tests {
		style, err := Parse(test.spec)
		if gotErr := err != nil; gotErr != test.wantErr {
			t.Errorf("Parse(%q) error = %v, want error: %v", test.spec, err, test.wantErr)
			continue
		}
		if !test.wantErr && !test.check(style) {
			t.Errorf("Parse(%q) = %v, check failed", test.spec, style)
		}
	}
}

func TestDefine_Inherit(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Define("base", "fg=red bold"); err != nil {
		t.Fatal(err)
	}
	if err := reg.Define("derived", "inherit=base underline"); err != nil {
		t.Fatal(err)
	}
	got := reg.Get("derived")
	if !got.GetUnderline() || !got.GetBold() || got.GetForeground() != lipgloss.Color("1") {
		t.Errorf("derived face = %v, want underline plus inherited bold fg=red", got)
	}
}

func TestDefine_InheritUndefined(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Define("x", "inherit=nonexistent"); err == nil {
		t.Errorf("Define with undefined parent did not error")
	}
}
