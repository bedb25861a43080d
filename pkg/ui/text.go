// Package ui provides types for styled text on the terminal.
//
// Segments carry face names instead of concrete styles; a face is resolved
// to a style only when the text is painted. Content built once can thus be
// restyled by changing the face definitions, without rebuilding the text.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/liushihao456/emacs-mini-modeline/pkg/wcwidth"
)

// Text is a list of styled Segments.
type Text []Segment

// T constructs a new Text with the given content, in the given face if one
// is given.
func T(s string, face ...string) Text {
	if s == "" {
		return nil
	}
	seg := Segment{Text: s}
	if len(face) > 0 {
		seg.Face = face[0]
	}
	return Text{seg}
}

// Concat concatenates multiple Texts into one, merging adjacent segments
// with the same face.
func Concat(ts ...Text) Text {
	var out Text
	for _, t := range ts {
		for _, seg := range t {
			if seg.Text == "" {
				continue
			}
			if n := len(out); n > 0 && out[n-1].Face == seg.Face {
				out[n-1].Text += seg.Text
				continue
			}
			out = append(out, seg)
		}
	}
	return out
}

// String returns the plain text content, with faces discarded.
func (t Text) String() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// Width returns the column width of the text.
func (t Text) Width() int {
	w := 0
	for _, seg := range t {
		w += wcwidth.Of(seg.Text)
	}
	return w
}

// CountRune counts the number of times a rune occurs in a Text.
func (t Text) CountRune(r rune) int {
	n := 0
	for _, seg := range t {
		n += strings.Count(seg.Text, string(r))
	}
	return n
}

// CountLines counts the number of lines in a Text. It is equal to
// t.CountRune('\n') + 1.
func (t Text) CountLines() int {
	return t.CountRune('\n') + 1
}

// SplitByRune splits a Text by the given rune. Segments that span the
// separator are split, and the pieces between separators keep their faces.
// The result always has t.CountRune(r)+1 elements; empty pieces come out as
// nil Texts.
func (t Text) SplitByRune(r rune) []Text {
	lines := []Text{nil}
	for _, seg := range t {
		parts := strings.Split(seg.Text, string(r))
		// The first part extends the line under assembly; each remaining
		// part starts a new line.
		last := len(lines) - 1
		lines[last] = appendSegment(lines[last], parts[0], seg.Face)
		for _, part := range parts[1:] {
			lines = append(lines, appendSegment(nil, part, seg.Face))
		}
	}
	return lines
}

func appendSegment(t Text, s, face string) Text {
	if s == "" {
		return t
	}
	return append(t, Segment{Text: s, Face: face})
}

// TrimWcwidth returns the largest prefix of t that does not exceed the
// given column width.
func (t Text) TrimWcwidth(wmax int) Text {
	var newt Text
	for _, seg := range t {
		w := wcwidth.Of(seg.Text)
		if w >= wmax {
			trimmed := wcwidth.Trim(seg.Text, wmax)
			if trimmed != "" {
				newt = append(newt, Segment{Text: trimmed, Face: seg.Face})
			}
			break
		}
		wmax -= w
		newt = append(newt, seg)
	}
	return newt
}

// StyleFunc resolves a face name to a concrete style. The empty face name
// resolves to the default (unstyled) style.
type StyleFunc func(face string) lipgloss.Style

// Render renders the text to a string with terminal escape sequences, using
// resolve to map face names to styles. A nil resolve renders plain text.
func (t Text) Render(resolve StyleFunc) string {
	if resolve == nil {
		return t.String()
	}
	var sb strings.Builder
	for _, seg := range t {
		if seg.Face == "" {
			sb.WriteString(seg.Text)
		} else {
			sb.WriteString(resolve(seg.Face).Render(seg.Text))
		}
	}
	return sb.String()
}
