package stim

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/google/uuid"
)

// ErrNoHistory is returned by Flatten when asked to flatten a nil entry.
var ErrNoHistory = errors.New("stim: no history")

// Entry is one immutable link in a transformation provenance chain. It is
// created by Record when a transformation completes and attached to the
// result stimulus; it is never mutated afterwards. Parent points to the
// history the source stimulus carried before this transformation, so the
// chain is acyclic by construction.
type Entry struct {
	id                string
	sourceName        string
	sourceFile        string
	sourceClass       string
	resultName        string
	resultFile        string
	resultClass       string
	transformerClass  string
	transformerParams map[string]any
	display           string
	parent            *Entry
}

// ID returns the unique identifier assigned at creation time.
func (e *Entry) ID() string { return e.id }

// SourceName returns the name of the stimulus the transformation consumed.
func (e *Entry) SourceName() string { return e.sourceName }

// SourceFile returns the source stimulus filename, or "".
func (e *Entry) SourceFile() string { return e.sourceFile }

// SourceClass returns the source stimulus type name.
func (e *Entry) SourceClass() string { return e.sourceClass }

// ResultName returns the result stimulus name, or "" when the result was
// not itself a stimulus.
func (e *Entry) ResultName() string { return e.resultName }

// ResultFile returns the result stimulus filename, or "" when the result
// was not itself a stimulus.
func (e *Entry) ResultFile() string { return e.resultFile }

// ResultClass returns the result's concrete type name.
func (e *Entry) ResultClass() string { return e.resultClass }

// TransformerClass returns the transformer type name, or "" if no
// transformer was supplied.
func (e *Entry) TransformerClass() string { return e.transformerClass }

// TransformerParams returns a copy of the captured parameter snapshot.
func (e *Entry) TransformerParams() map[string]any {
	if e.transformerParams == nil {
		return nil
	}
	return maps.Clone(e.transformerParams)
}

// Parent returns the entry that was attached to the source stimulus before
// this transformation, or nil at the start of a chain.
func (e *Entry) Parent() *Entry { return e.parent }

// String returns the readable lineage trail, e.g.
// "ImageStim->VibranceExtractor/ExtractorResult".
func (e *Entry) String() string { return e.display }

// Equal reports whether two entries carry the same captured fields.
// IDs are excluded (they identify instances, not content) and parents are
// compared structurally, not by pointer identity.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.sourceName != other.sourceName ||
		e.sourceFile != other.sourceFile ||
		e.sourceClass != other.sourceClass ||
		e.resultName != other.resultName ||
		e.resultFile != other.resultFile ||
		e.resultClass != other.resultClass ||
		e.transformerClass != other.transformerClass ||
		e.display != other.display {
		return false
	}
	if !reflect.DeepEqual(e.transformerParams, other.transformerParams) {
		return false
	}
	return e.parent.Equal(other.parent)
}

// Record builds a provenance entry for one completed transformation and,
// when the result is itself a stimulus, attaches it to the result's
// history. It returns the new entry.
//
// Record is a no-op returning (nil, nil) when cfg disables provenance
// recording; a nil cfg means DefaultConfig.
//
// result may be any value: a Stim gets its name, filename and class
// captured; anything else (e.g. an extracted feature table) is recorded
// with empty-string name/file sentinels and its concrete type name.
//
// If t declares a log attribute that LogValues does not provide, Record
// panics: the transformer's declared contract is broken and this should
// surface immediately rather than produce a silently incomplete record.
func Record(cfg *Config, source Stim, result any, t Transformer) (*Entry, error) {
	if cfg == nil {
		cfg = DefaultConfig
	}
	if !cfg.TransformationHistory {
		return nil, nil
	}

	e := &Entry{
		id:          uuid.NewString(),
		sourceName:  source.Name(),
		sourceFile:  source.Filename(),
		sourceClass: source.Class(),
		resultClass: className(result),
		parent:      source.History(),
	}
	rs, isStim := result.(Stim)
	if isStim {
		e.resultName = rs.Name()
		e.resultFile = rs.Filename()
	}
	if t != nil {
		e.transformerClass = t.Class()
		e.transformerParams = snapshotParams(t)
	} else {
		e.transformerParams = map[string]any{}
	}

	trail := e.sourceClass
	if e.parent != nil {
		trail = e.parent.String()
	}
	e.display = trail + "->" + e.transformerClass + "/" + e.resultClass

	if isStim {
		if err := rs.SetHistory(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// snapshotParams captures the declared loggable attributes of t.
func snapshotParams(t Transformer) map[string]any {
	attrs := t.LogAttributes()
	values := t.LogValues()
	params := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		v, ok := values[attr]
		if !ok {
			panic(fmt.Sprintf("stim: transformer %s declares log attribute %q but does not provide it", t.Class(), attr))
		}
		params[attr] = v
	}
	return params
}

// className returns the type name recorded for a transformation result.
// Stims report their own Class; for anything else the concrete Go type
// name is used, without package qualifier or pointer marker.
func className(v any) string {
	if s, ok := v.(Stim); ok {
		return s.Class()
	}
	name := fmt.Sprintf("%T", v)
	name = strings.TrimLeft(name, "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Flatten walks the parent chain of e and returns the entries as table
// rows in chronological order (earliest transformation first). The walk is
// iterative, so arbitrarily long pipelines do not grow the call stack.
//
// Flattening a nil entry returns ErrNoHistory.
func Flatten(e *Entry) (*Table, error) {
	if e == nil {
		return nil, ErrNoHistory
	}
	var chain []*Entry
	for cur := e; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	t := &Table{
		Columns: Columns(),
		Rows:    make([][]any, 0, len(chain)),
	}
	for i := len(chain) - 1; i >= 0; i-- {
		c := chain[i]
		t.Rows = append(t.Rows, []any{
			c.sourceName, c.sourceFile, c.sourceClass,
			c.resultName, c.resultFile, c.resultClass,
			c.transformerClass, c.TransformerParams(),
		})
	}
	return t, nil
}
