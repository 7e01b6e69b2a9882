package stim_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/perceptlab/stimkit/pkg/stim"
)

// gazeExtractor is a minimal Transformer for testing; its declared log
// attributes mirror how real extractors expose tunable parameters.
type gazeExtractor struct {
	threshold float64
	mode      string
}

func (e *gazeExtractor) Class() string           { return "GazeExtractor" }
func (e *gazeExtractor) LogAttributes() []string { return []string{"threshold", "mode"} }
func (e *gazeExtractor) LogValues() map[string]any {
	return map[string]any{"threshold": e.threshold, "mode": e.mode}
}

// brokenExtractor declares an attribute it never provides.
type brokenExtractor struct{}

func (brokenExtractor) Class() string             { return "BrokenExtractor" }
func (brokenExtractor) LogAttributes() []string   { return []string{"missing"} }
func (brokenExtractor) LogValues() map[string]any { return map[string]any{} }

// featureMatrix stands in for a non-stimulus transformation result.
type featureMatrix struct{}

func TestRecordDisabled(t *testing.T) {
	cfg := &stim.Config{TransformationHistory: false}
	src := stim.NewImageStim("face.jpg")
	out := stim.NewTextStim("face.txt")

	e, err := stim.Record(cfg, src, out, &gazeExtractor{threshold: 0.5})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if e != nil {
		t.Fatalf("Record with recording disabled returned %v, want nil", e)
	}
	if out.History() != nil {
		t.Fatal("history should stay nil with recording disabled")
	}
}

func TestRecordCapturesFields(t *testing.T) {
	src := stim.NewImageStim("/in/face.jpg")
	out := stim.NewTextStim("/out/face.txt")
	tr := &gazeExtractor{threshold: 0.5, mode: "fast"}

	e, err := stim.Record(stim.DefaultConfig, src, out, tr)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if e == nil || out.History() != e {
		t.Fatal("entry not attached to result history")
	}
	if e.SourceName() != "face.jpg" || e.SourceFile() != "/in/face.jpg" || e.SourceClass() != "ImageStim" {
		t.Fatalf("source fields = %q %q %q", e.SourceName(), e.SourceFile(), e.SourceClass())
	}
	if e.ResultName() != "face.txt" || e.ResultFile() != "/out/face.txt" || e.ResultClass() != "TextStim" {
		t.Fatalf("result fields = %q %q %q", e.ResultName(), e.ResultFile(), e.ResultClass())
	}
	if e.TransformerClass() != "GazeExtractor" {
		t.Fatalf("TransformerClass = %q", e.TransformerClass())
	}
	params := e.TransformerParams()
	want := map[string]any{"threshold": 0.5, "mode": "fast"}
	if !reflect.DeepEqual(params, want) {
		t.Fatalf("TransformerParams = %v, want %v", params, want)
	}
	if e.ID() == "" {
		t.Fatal("entry should carry an ID")
	}
}

func TestRecordNonStimResult(t *testing.T) {
	src := stim.NewAudioStim("speech.wav")

	e, err := stim.Record(nil, src, &featureMatrix{}, nil)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	// Empty-string sentinels for a result that is not itself a stimulus.
	if e.ResultName() != "" || e.ResultFile() != "" {
		t.Fatalf("result sentinels = %q %q, want empty", e.ResultName(), e.ResultFile())
	}
	if e.ResultClass() != "featureMatrix" {
		t.Fatalf("ResultClass = %q, want featureMatrix", e.ResultClass())
	}
	if e.TransformerClass() != "" {
		t.Fatalf("TransformerClass = %q, want empty", e.TransformerClass())
	}
	if got := e.String(); got != "AudioStim->/featureMatrix" {
		t.Fatalf("String = %q", got)
	}
}

func TestChainAndFlatten(t *testing.T) {
	src := stim.NewImageStim("scene.png")
	mid := stim.NewTextStim("scene.txt")

	a := &gazeExtractor{threshold: 0.1, mode: "a"}
	e1, err := stim.Record(nil, src, mid, a)
	if err != nil {
		t.Fatalf("Record A: %v", err)
	}

	b := &gazeExtractor{threshold: 0.9, mode: "b"}
	e2, err := stim.Record(nil, mid, &featureMatrix{}, b)
	if err != nil {
		t.Fatalf("Record B: %v", err)
	}

	if e2.Parent() != e1 {
		t.Fatal("second entry should chain to the first")
	}
	wantTrail := "ImageStim->GazeExtractor/TextStim->GazeExtractor/featureMatrix"
	if got := e2.String(); got != wantTrail {
		t.Fatalf("String = %q, want %q", got, wantTrail)
	}

	tbl, err := stim.Flatten(e2)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Flatten rows = %d, want 2", tbl.Len())
	}
	if !reflect.DeepEqual(tbl.Columns, stim.Columns()) {
		t.Fatalf("Columns = %v", tbl.Columns)
	}
	// Chronological order: earliest transformation first.
	if tbl.Rows[0][2] != "ImageStim" || tbl.Rows[1][2] != "TextStim" {
		t.Fatalf("row source classes = %v, %v", tbl.Rows[0][2], tbl.Rows[1][2])
	}
	if tbl.Rows[0][6] != "GazeExtractor" || tbl.Rows[1][6] != "GazeExtractor" {
		t.Fatalf("row transformer classes = %v, %v", tbl.Rows[0][6], tbl.Rows[1][6])
	}
	p0 := tbl.Rows[0][7].(map[string]any)
	if p0["mode"] != "a" {
		t.Fatalf("row 0 params = %v, want mode a", p0)
	}
	p1 := tbl.Rows[1][7].(map[string]any)
	if p1["mode"] != "b" {
		t.Fatalf("row 1 params = %v, want mode b", p1)
	}
}

func TestFlattenNil(t *testing.T) {
	_, err := stim.Flatten(nil)
	if !errors.Is(err, stim.ErrNoHistory) {
		t.Fatalf("Flatten(nil): err = %v, want ErrNoHistory", err)
	}
}

func TestFlattenLongChain(t *testing.T) {
	// Flattening is iterative; a deep chain must not exhaust the stack.
	// Depth is bounded by the quadratic growth of the display trail, not
	// by the flatten walk itself.
	const depth = 1000
	cur := stim.Stim(stim.NewTextStimFromText("seed", stim.WithName("seed")))
	var last *stim.Entry
	for i := 0; i < depth; i++ {
		next := stim.NewTextStimFromText("derived")
		e, err := stim.Record(nil, cur, next, nil)
		if err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
		cur, last = next, e
	}
	tbl, err := stim.Flatten(last)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if tbl.Len() != depth {
		t.Fatalf("Flatten rows = %d, want %d", tbl.Len(), depth)
	}
	if tbl.Rows[0][0] != "seed" {
		t.Fatalf("first row source = %v, want seed", tbl.Rows[0][0])
	}
}

func TestEntryStructuralEquality(t *testing.T) {
	build := func() *stim.Entry {
		src := stim.NewImageStim("/in/face.jpg")
		out := stim.NewTextStim("/out/face.txt")
		e, err := stim.Record(nil, src, out, &gazeExtractor{threshold: 0.5, mode: "fast"})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		return e
	}
	e1, e2 := build(), build()
	if e1 == e2 {
		t.Fatal("entries should be distinct instances")
	}
	if !e1.Equal(e2) {
		t.Fatal("entries built from identical inputs should be structurally equal")
	}
	if e1.ID() == e2.ID() {
		t.Fatal("distinct entries should carry distinct IDs")
	}

	// Differ in one captured field.
	src := stim.NewImageStim("/in/face.jpg")
	out := stim.NewTextStim("/out/face.txt")
	e3, _ := stim.Record(nil, src, out, &gazeExtractor{threshold: 0.6, mode: "fast"})
	if e1.Equal(e3) {
		t.Fatal("entries with different params should not be equal")
	}
}

func TestBrokenTransformerPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for missing declared log attribute")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "missing") {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	src := stim.NewTextStimFromText("x")
	_, _ = stim.Record(nil, src, &featureMatrix{}, brokenExtractor{})
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := stim.NewImageStim("a.jpg")
	mid := stim.NewTextStim("a.txt")
	e1, _ := stim.Record(nil, src, mid, &gazeExtractor{threshold: 0.3, mode: "x"})
	e2, _ := stim.Record(nil, mid, &featureMatrix{}, nil)

	p := stim.FromSnapshot(e1.Snapshot(), nil)
	rebuilt := stim.FromSnapshot(e2.Snapshot(), p)

	if !rebuilt.Equal(e2) {
		t.Fatal("rebuilt chain should be structurally equal to the original")
	}
	if e2.Snapshot().ParentID != e1.ID() {
		t.Fatalf("ParentID = %q, want %q", e2.Snapshot().ParentID, e1.ID())
	}
}
