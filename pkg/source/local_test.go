package source_test

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/perceptlab/stimkit/pkg/source"
)

func TestLocalStat(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.wav")
	if err := os.WriteFile(file, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	src := source.NewLocal()

	info, err := src.Stat(ctx, file)
	if err != nil {
		t.Fatalf("Stat file: %v", err)
	}
	if info.Dir || info.Name != "clip.wav" || info.Size != 4 {
		t.Fatalf("Stat file = %+v", info)
	}

	info, err = src.Stat(ctx, dir)
	if err != nil {
		t.Fatalf("Stat dir: %v", err)
	}
	if !info.Dir {
		t.Fatalf("Stat dir = %+v, want Dir", info)
	}

	_, err = src.Stat(ctx, filepath.Join(dir, "nope"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Stat missing: err = %v, want ErrNotExist", err)
	}
}

func TestLocalListOneLevel(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	// Nested content must not be expanded.
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "deep.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	infos, err := source.NewLocal().List(ctx, dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
	}
	sort.Strings(names)
	want := []string{"a.txt", "b.jpg", "nested"}
	if len(names) != 3 || names[0] != want[0] || names[1] != want[1] || names[2] != want[2] {
		t.Fatalf("List names = %v, want %v", names, want)
	}
}

func TestLocalOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	file := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(file, []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rc, err := source.NewLocal().Open(ctx, file)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("read %q, want hello", data)
	}
}
