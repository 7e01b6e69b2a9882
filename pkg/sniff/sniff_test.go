package sniff_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/perceptlab/stimkit/pkg/sniff"
)

// jpegHeader is a minimal JFIF header; enough for magic-byte detection.
var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func TestClassify(t *testing.T) {
	var d sniff.Detector

	ct, err := d.Classify(bytes.NewReader(jpegHeader))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if ct != "image/jpeg" {
		t.Fatalf("Classify jpeg = %q, want image/jpeg", ct)
	}

	ct, err = d.Classify(strings.NewReader("just some plain prose\n"))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	// Parameters like charset must be stripped.
	if ct != "text/plain" {
		t.Fatalf("Classify text = %q, want text/plain", ct)
	}
}

func TestClassifyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.bin") // extension deliberately wrong
	if err := os.WriteFile(path, jpegHeader, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var d sniff.Detector
	ct, err := d.ClassifyFile(path)
	if err != nil {
		t.Fatalf("ClassifyFile: %v", err)
	}
	if ct != "image/jpeg" {
		t.Fatalf("ClassifyFile = %q, want image/jpeg", ct)
	}

	if _, err := d.ClassifyFile(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("ClassifyFile on missing file: expected error")
	}
}

func TestMedia(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":                "image",
		"text/plain; charset=utf-8": "text",
		"audio/mpeg":                "audio",
		"video/mp4":                 "video",
		"application/pdf":           "application",
		"garbage":                   "",
		"":                          "",
	}
	for in, want := range cases {
		if got := sniff.Media(in); got != want {
			t.Fatalf("Media(%q) = %q, want %q", in, got, want)
		}
	}
}
