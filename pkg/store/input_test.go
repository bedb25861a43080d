package store

import (
	"errors"
	"testing"
)

var inputs = []string{"echo hello", "echo bye", "ls -l", "echo hello again"}

func setupStore(t *testing.T) Store {
	t.Helper()
	st := MustTempStore(t)
	for _, text := range inputs {
		if _, err := st.AddInput(text); err != nil {
			t.Fatalf("AddInput(%q): %v", text, err)
		}
	}
	return st
}

func TestAddInput_SeqsAreConsecutive(t *testing.T) {
	st := MustTempStore(t)
	for i, text := range inputs {
		seq, err := st.AddInput(text)
		if err != nil {
			t.Fatalf("AddInput(%q): %v", text, err)
		}
		if seq != i+1 {
			t.Errorf("AddInput(%q) = %d, want %d", text, seq, i+1)
		}
	}
	if seq, _ := st.NextInputSeq(); seq != len(inputs)+1 {
		t.Errorf("NextInputSeq() = %d, want %d", seq, len(inputs)+1)
	}
}

func TestInput(t *testing.T) {
	st := setupStore(t)
	for i, want := range inputs {
		text, err := st.Input(i + 1)
		if text != want || err != nil {
			t.Errorf("Input(%d) = (%q, %v), want (%q, nil)", i+1, text, err, want)
		}
	}
	if _, err := st.Input(100); !errors.Is(err, ErrNoMatchingInput) {
		t.Errorf("Input(100) returns error %v, want ErrNoMatchingInput", err)
	}
}

func TestDelInput(t *testing.T) {
	st := setupStore(t)
	if err := st.DelInput(2); err != nil {
		t.Fatalf("DelInput(2): %v", err)
	}
	if _, err := st.Input(2); !errors.Is(err, ErrNoMatchingInput) {
		t.Errorf("Input(2) after deletion returns error %v, want ErrNoMatchingInput", err)
	}
	// Deletion does not renumber the surviving entries.
	if text, _ := st.Input(3); text != inputs[2] {
		t.Errorf("Input(3) = %q, want %q", text, inputs[2])
	}
}

func TestInputsWithSeq(t *testing.T) {
	st := setupStore(t)
	got, err := st.InputsWithSeq(2, 4)
	if err != nil {
		t.Fatalf("InputsWithSeq: %v", err)
	}
	want := []Input{{inputs[1], 2}, {inputs[2], 3}}
	if len(got) != len(want) {
		t.Fatalf("InputsWithSeq(2, 4) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("InputsWithSeq(2, 4)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNextInput(t *testing.T) {
	st := setupStore(t)

	got, err := st.NextInput(1, "echo")
	if err != nil || got != (Input{inputs[0], 1}) {
		t.Errorf("NextInput(1, echo) = (%v, %v), want first echo entry", got, err)
	}

	got, err = st.NextInput(2, "echo")
	if err != nil || got != (Input{inputs[1], 2}) {
		t.Errorf("NextInput(2, echo) = (%v, %v), want second echo entry", got, err)
	}

	if _, err := st.NextInput(1, "nonexistent"); !errors.Is(err, ErrNoMatchingInput) {
		t.Errorf("NextInput with unmatched prefix returns %v, want ErrNoMatchingInput", err)
	}
}

func TestPrevInput(t *testing.T) {
	st := setupStore(t)

	// upto past the end starts from the last entry.
	got, err := st.PrevInput(100, "echo")
	if err != nil || got != (Input{inputs[3], 4}) {
		t.Errorf("PrevInput(100, echo) = (%v, %v), want last echo entry", got, err)
	}

	got, err = st.PrevInput(4, "echo")
	if err != nil || got != (Input{inputs[1], 2}) {
		t.Errorf("PrevInput(4, echo) = (%v, %v), want second echo entry", got, err)
	}

	if _, err := st.PrevInput(1, "echo"); !errors.Is(err, ErrNoMatchingInput) {
		t.Errorf("PrevInput(1, echo) returns %v, want ErrNoMatchingInput", err)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/db"
	st, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	st.AddInput("persisted")
	st.Close()

	st, err = NewStore(path)
	if err != nil {
		t.Fatalf("NewStore (reopen): %v", err)
	}
	defer st.Close()
	if text, _ := st.Input(1); text != "persisted" {
		t.Errorf("Input(1) after reopen = %q, want %q", text, "persisted")
	}
}
