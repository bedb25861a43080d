// Package wcwidth provides utilities for determining the column width of
// characters and strings on the terminal, sometimes called "wcwidth" after
// the POSIX function for the same purpose.
//
// Widths are computed per grapheme cluster, so combining sequences and emoji
// sequences count as single glyphs. Ambiguous-width characters always count
// as 1 column, regardless of locale; this keeps layout deterministic across
// environments. Individual runes can be overridden, which is occasionally
// needed for nonstandard glyphs in terminal fonts.
package wcwidth

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// The fixed width policy: ambiguous-width runes are narrow.
var cond = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

var overrides sync.Map // map[rune]int

// Of returns the column width of s.
func Of(s string) int {
	w := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w += ofGrapheme(g.Runes())
	}
	return w
}

// OfRune returns the column width of r.
func OfRune(r rune) int {
	if w, ok := overrides.Load(r); ok {
		return w.(int)
	}
	return cond.RuneWidth(r)
}

// ofGrapheme returns the column width of a single grapheme cluster. The
// cluster renders as one glyph, whose width is taken from its first rune
// with a nonzero width.
func ofGrapheme(rs []rune) int {
	for _, r := range rs {
		if w := OfRune(r); w > 0 {
			return w
		}
	}
	return 0
}

// Override overrides the column width of r to be w. If w < 0, any existing
// override is removed.
func Override(r rune, w int) {
	if w < 0 {
		Unoverride(r)
		return
	}
	overrides.Store(r, w)
}

// Unoverride removes the column width override of r.
func Unoverride(r rune) {
	overrides.Delete(r)
}

// Trim trims s to fit within wmax columns, never splitting a grapheme
// cluster.
func Trim(s string, wmax int) string {
	w := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w += ofGrapheme(g.Runes())
		if w > wmax {
			from, _ := g.Positions()
			return s[:from]
		}
	}
	return s
}

// Force forces s to be exactly width columns by trimming and padding with
// spaces.
func Force(s string, width int) string {
	s = Trim(s, width)
	if w := Of(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// TrimEachLine trims each line of s to fit within wmax columns.
func TrimEachLine(s string, wmax int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = Trim(line, wmax)
	}
	return strings.Join(lines, "\n")
}
