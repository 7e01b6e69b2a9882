package stim_test

import (
	"errors"
	"testing"

	"github.com/perceptlab/stimkit/pkg/stim"
)

func TestResolveNormalization(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"image", "ImageStim"},
		{"Image", "ImageStim"},
		{"image_stim", "ImageStim"},
		{"IMAGESTIM", "ImageStim"},
		{"video", "VideoStim"},
		{"text", "TextStim"},
		{"audio", "AudioStim"},
	}
	for _, c := range cases {
		f, err := stim.Resolve(c.name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", c.name, err)
		}
		if got := f("x").Class(); got != c.want {
			t.Fatalf("Resolve(%q) built %s, want %s", c.name, got, c.want)
		}
	}
}

func TestResolveNotFound(t *testing.T) {
	_, err := stim.Resolve("bogus")
	if err == nil {
		t.Fatal("Resolve(bogus): expected error")
	}
	var nf *stim.TypeNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Resolve(bogus): err = %T, want *TypeNotFoundError", err)
	}
	if nf.Key != "bogusstim" {
		t.Fatalf("TypeNotFoundError.Key = %q, want %q", nf.Key, "bogusstim")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := stim.NewRegistry()
	f := func(filename string) stim.Stim { return stim.NewImageStim(filename) }

	if err := r.Register("image", f); err != nil {
		t.Fatalf("Register: %v", err)
	}
	// "IMAGE_STIM" canonicalizes to the same key; uniqueness is enforced
	// at registration time so lookup can never be ambiguous.
	if err := r.Register("IMAGE_STIM", f); err == nil {
		t.Fatal("Register with colliding canonical name: expected error")
	}
}

func TestTypesSorted(t *testing.T) {
	r := stim.NewRegistry()
	f := func(filename string) stim.Stim { return stim.NewTextStim(filename) }
	r.MustRegister("video", f)
	r.MustRegister("audio", f)

	got := r.Types()
	if len(got) != 2 || got[0] != "audiostim" || got[1] != "videostim" {
		t.Fatalf("Types = %v, want [audiostim videostim]", got)
	}
}

func TestCanonicalName(t *testing.T) {
	cases := map[string]string{
		"Image":       "imagestim",
		"image_stim":  "imagestim",
		"IMAGESTIM":   "imagestim",
		"complexText": "complextextstim",
		"bogus":       "bogusstim",
	}
	for in, want := range cases {
		if got := stim.CanonicalName(in); got != want {
			t.Fatalf("CanonicalName(%q) = %q, want %q", in, got, want)
		}
	}
}
