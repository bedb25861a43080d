package term

import (
	"reflect"
	"testing"

	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

func TestBufferBuilder_Write(t *testing.T) {
	tests := []struct {
		bb   *BufferBuilder
		text string
		face string
		want *Buffer
	}{
		// Writing nothing.
		{NewBufferBuilder(10), "", "", &Buffer{Width: 10, Lines: [][]Cell{{}}}},
		// Writing a single rune.
		{NewBufferBuilder(10), "a", "prompt",
			&Buffer{Width: 10, Lines: [][]Cell{{{"a", "prompt"}}}}},
		// Writing a control character.
		{NewBufferBuilder(10), "\033", "",
			&Buffer{Width: 10, Lines: [][]Cell{{{"^[", ControlFace}}}}},
		// Writing a control character in the middle of styled text.
		{NewBufferBuilder(10), "a\033b", "prompt",
			&Buffer{Width: 10, Lines: [][]Cell{{
				{"a", "prompt"},
				{"^[", ControlFace},
				{"b", "prompt"}}}}},
		// Writing text containing a newline.
		{NewBufferBuilder(10), "a\nb", "prompt",
			&Buffer{Width: 10, Lines: [][]Cell{
				{{"a", "prompt"}}, {{"b", "prompt"}}}}},
		// Writing text containing a newline when there is indent.
		{NewBufferBuilder(10).SetIndent(2), "a\nb", "prompt",
			&Buffer{Width: 10, Lines: [][]Cell{
				{{"a", "prompt"}},
				{{" ", ""}, {" ", ""}, {"b", "prompt"}},
			}}},
		// Writing long text that triggers wrapping.
		{NewBufferBuilder(4), "aaaab", "prompt",
			&Buffer{Width: 4, Lines: [][]Cell{
				{{"a", "prompt"}, {"a", "prompt"}, {"a", "prompt"}, {"a", "prompt"}},
				{{"b", "prompt"}}}}},
		// Writing long text that triggers wrapping when there is indent.
		{NewBufferBuilder(4).SetIndent(2), "aaaab", "prompt",
			&Buffer{Width: 4, Lines: [][]Cell{
				{{"a", "prompt"}, {"a", "prompt"}, {"a", "prompt"}, {"a", "prompt"}},
				{{" ", ""}, {" ", ""}, {"b", "prompt"}}}}},
		// Writing long text that triggers eager wrapping.
		{NewBufferBuilder(4).SetIndent(2).SetEagerWrap(true), "aaaa", "prompt",
			&Buffer{Width: 4, Lines: [][]Cell{
				{{"a", "prompt"}, {"a", "prompt"}, {"a", "prompt"}, {"a", "prompt"}},
				{{" ", ""}, {" ", ""}}}}},
		// Writing a wide rune that does not fit in the remaining columns.
		{NewBufferBuilder(4), "abc你", "",
			&Buffer{Width: 4, Lines: [][]Cell{
				{{"a", ""}, {"b", ""}, {"c", ""}},
				{{"你", ""}}}}},
	}

	for _, test := range tests {
		test.bb.Write(test.text, test.face)
		buf := test.bb.Buffer()
		if !reflect.DeepEqual(buf, test.want) {
			t.Errorf("Write(%q, %q) makes it %v, want %v",
				test.text, test.face, buf, test.want)
		}
	}
}

func TestBufferBuilder_WriteText(t *testing.T) {
	buf := NewBufferBuilder(10).
		WriteText(ui.Concat(ui.T("no ", "shadow"), ui.T("ok"))).
		Buffer()
	want := &Buffer{Width: 10, Lines: [][]Cell{{
		{"n", "shadow"}, {"o", "shadow"}, {" ", "shadow"},
		{"o", ""}, {"k", ""},
	}}}
	if !reflect.DeepEqual(buf, want) {
		t.Errorf("got %v, want %v", buf, want)
	}
}

func TestBufferBuilder_DotAndSpaces(t *testing.T) {
	bb := NewBufferBuilder(10)
	bb.Write("ab", "")
	bb.SetDotHere()
	bb.WriteSpaces(2)
	buf := bb.Buffer()

	if want := (Pos{0, 2}); buf.Dot != want {
		t.Errorf("dot = %v, want %v", buf.Dot, want)
	}
	wantLine := []Cell{{"a", ""}, {"b", ""}, {" ", ""}, {" ", ""}}
	if !reflect.DeepEqual(buf.Lines[0], wantLine) {
		t.Errorf("line = %v, want %v", buf.Lines[0], wantLine)
	}
}

func TestBufferBuilder_NewlineResetsCol(t *testing.T) {
	bb := NewBufferBuilder(10)
	bb.Write("abc", "")
	bb.Newline()
	if got := bb.Cursor(); got != (Pos{1, 0}) {
		t.Errorf("cursor = %v, want %v", got, Pos{1, 0})
	}
}
