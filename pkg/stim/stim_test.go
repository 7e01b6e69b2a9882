package stim_test

import (
	"errors"
	"testing"

	"github.com/perceptlab/stimkit/pkg/stim"
)

func TestNameDefaults(t *testing.T) {
	// Derived from filename.
	s := stim.NewImageStim("/data/faces/obama.jpg")
	if got := s.Name(); got != "obama.jpg" {
		t.Fatalf("Name = %q, want %q", got, "obama.jpg")
	}

	// Explicit name wins.
	s = stim.NewImageStim("/data/faces/obama.jpg", stim.WithName("president"))
	if got := s.Name(); got != "president" {
		t.Fatalf("Name = %q, want %q", got, "president")
	}

	// No filename, no name: empty string, never unset.
	txt := stim.NewTextStimFromText("hello")
	if got := txt.Name(); got != "" {
		t.Fatalf("Name = %q, want empty", got)
	}
}

func TestTiming(t *testing.T) {
	s := stim.NewAudioStim("clip.wav")
	if _, ok := s.Onset(); ok {
		t.Fatal("Onset should be absent by default")
	}
	if _, ok := s.Duration(); ok {
		t.Fatal("Duration should be absent by default")
	}

	s = stim.NewAudioStim("clip.wav", stim.WithOnset(1.5), stim.WithDuration(0))
	onset, ok := s.Onset()
	if !ok || onset != 1.5 {
		t.Fatalf("Onset = %v, %v, want 1.5, true", onset, ok)
	}
	// Zero is a valid duration; no validation is performed.
	d, ok := s.Duration()
	if !ok || d != 0 {
		t.Fatalf("Duration = %v, %v, want 0, true", d, ok)
	}
}

func TestSetHistoryOnce(t *testing.T) {
	src := stim.NewImageStim("a.jpg")
	out := stim.NewTextStim("a.txt")

	e, err := stim.Record(nil, src, out, nil)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if out.History() != e {
		t.Fatal("history not attached to result")
	}

	// A stimulus is the output of at most one transformation.
	if _, err := stim.Record(nil, src, out, nil); !errors.Is(err, stim.ErrHistorySet) {
		t.Fatalf("second Record on same result: err = %v, want ErrHistorySet", err)
	}
}

func TestCollectionCapability(t *testing.T) {
	a := stim.NewTextStimFromText("one")
	b := stim.NewImageStim("two.png")
	c := stim.NewCompoundStim([]stim.Stim{a, b})

	// Capability is checked by assertion, not inheritance.
	var s stim.Stim = c
	coll, ok := s.(stim.Collection)
	if !ok {
		t.Fatal("CompoundStim should implement Collection")
	}
	var got []stim.Stim
	for sub := range coll.Elements() {
		got = append(got, sub)
	}
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("Elements = %v, want [a b]", got)
	}

	// Plain stimuli do not carry the capability.
	if _, ok := any(b).(stim.Collection); ok {
		t.Fatal("ImageStim should not implement Collection")
	}
}
