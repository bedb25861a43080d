package layout

import (
	"testing"

	"github.com/liushihao456/emacs-mini-modeline/pkg/tt"
	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

func TestTruncate(t *testing.T) {
	tt.Test(t, Fn("Truncate", Truncate), tt.Table{
		Args(ui.T("hello world"), 5).Rets(ui.T("he...")),
		Args(ui.T("hello"), 5).Rets(ui.T("hello")),
		Args(ui.T("hello"), 6).Rets(ui.T("hello")),
		Args(ui.Text(nil), 5).Rets(ui.Text(nil)),
		// Wide characters are kept whole.
		Args(ui.T("你好世界"), 6).Rets(ui.T("你...")),
		Args(ui.T("你好世界"), 7).Rets(ui.T("你好...")),
	})
}

func TestTruncate_Idempotent(t *testing.T) {
	for _, s := range []string{"hello world", "你好世界", "ab", ""} {
		for w := 0; w < 8; w++ {
			once := Truncate(ui.T(s), w)
			twice := Truncate(once, w)
			if once.String() != twice.String() {
				t.Errorf("Truncate(Truncate(%q, %d), %d) = %q, want %q",
					s, w, w, twice.String(), once.String())
			}
		}
	}
}

func TestTruncateWith(t *testing.T) {
	tt.Test(t, Fn("TruncateWith", TruncateWith), tt.Table{
		Args(ui.T("hello world"), 5, "…").Rets(ui.T("hell…")),
		Args(ui.T("hello world"), 5, "").Rets(ui.T("hello")),
	})
}

func TestTruncate_KeepsFaces(t *testing.T) {
	got := Truncate(ui.Concat(ui.T("abc", "x"), ui.T("defgh")), 6)
	want := ui.Concat(ui.T("abc", "x"), ui.T("..."))
	if got.String() != want.String() || got[0].Face != "x" {
		t.Errorf("Truncate = %v, want %v", got, want)
	}
}
