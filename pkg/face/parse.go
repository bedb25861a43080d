package face

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// The standard ANSI palette, by the names used in face specs.
var namedColors = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"bright-black":   "8",
	"bright-red":     "9",
	"bright-green":   "10",
	"bright-yellow":  "11",
	"bright-blue":    "12",
	"bright-magenta": "13",
	"bright-cyan":    "14",
	"bright-white":   "15",
}

// Parse parses a face spec into a style. A spec is a space-separated list
// of attributes:
//
//	fg=COLOR bg=COLOR bold italic underline faint blink reverse strikethrough
//
// where COLOR is a named ANSI color like "red", a 256-color palette index
// like "238", or a hex value like "#c6c6c6". Specs using inherit= must be
// defined through a Registry.
func Parse(spec string) (lipgloss.Style, error) {
	style, inherit, err := parse(spec)
	if err != nil {
		return style, err
	}
	if inherit != "" {
		return style, fmt.Errorf("inherit=%s outside a face registry", inherit)
	}
	return style, nil
}

// Define parses a face spec and installs it under the given name. In
// addition to the attributes understood by Parse, the spec may contain
// inherit=FACE, which fills attributes not set by the spec from an already
// defined face.
func (reg *Registry) Define(name, spec string) error {
	style, inherit, err := parse(spec)
	if err != nil {
		return fmt.Errorf("face %s: %w", name, err)
	}
	if inherit != "" {
		if !reg.Has(inherit) {
			return fmt.Errorf("face %s: inherits from undefined face %s", name, inherit)
		}
		style = style.Inherit(reg.Get(inherit))
	}
	reg.Set(name, style)
	return nil
}

func parse(spec string) (lipgloss.Style, string, error) {
	style := lipgloss.NewStyle()
	inherit := ""
	for _, word := range strings.Fields(spec) {
		switch {
		case word == "bold":
			style = style.Bold(true)
		case word == "italic":
			style = style.Italic(true)
		case word == "underline":
			style = style.Underline(true)
		case word == "faint":
			style = style.Faint(true)
		case word == "blink":
			style = style.Blink(true)
		case word == "reverse":
			style = style.Reverse(true)
		case word == "strikethrough":
			style = style.Strikethrough(true)
		case strings.HasPrefix(word, "fg="):
			color, err := parseColor(strings.TrimPrefix(word, "fg="))
			if err != nil {
				return style, "", err
			}
			style = style.Foreground(color)
		case strings.HasPrefix(word, "bg="):
			color, err := parseColor(strings.TrimPrefix(word, "bg="))
			if err != nil {
				return style, "", err
			}
			style = style.Background(color)
		case strings.HasPrefix(word, "inherit="):
			inherit = strings.TrimPrefix(word, "inherit=")
		default:
			return style, "", fmt.Errorf("unknown attribute %q", word)
		}
	}
	return style, inherit, nil
}

func parseColor(s string) (lipgloss.Color, error) {
	if code, ok := namedColors[s]; ok {
		return lipgloss.Color(code), nil
	}
	if strings.HasPrefix(s, "#") {
		if len(s) != 4 && len(s) != 7 {
			return "", fmt.Errorf("invalid color %q", s)
		}
		return lipgloss.Color(s), nil
	}
	if n, err := strconv.Atoi(s); err == nil && 0 <= n && n <= 255 {
		return lipgloss.Color(s), nil
	}
	return "", fmt.Errorf("invalid color %q", s)
}
