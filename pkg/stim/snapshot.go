package stim

// Snapshot is the serializable form of a single Entry. The parent link is
// flattened to ParentID so chains can be persisted link by link and
// rebuilt later.
type Snapshot struct {
	ID                string         `json:"id" msgpack:"id" yaml:"id"`
	SourceName        string         `json:"source_name" msgpack:"source_name" yaml:"source_name"`
	SourceFile        string         `json:"source_file,omitempty" msgpack:"source_file,omitempty" yaml:"source_file,omitempty"`
	SourceClass       string         `json:"source_class" msgpack:"source_class" yaml:"source_class"`
	ResultName        string         `json:"result_name,omitempty" msgpack:"result_name,omitempty" yaml:"result_name,omitempty"`
	ResultFile        string         `json:"result_file,omitempty" msgpack:"result_file,omitempty" yaml:"result_file,omitempty"`
	ResultClass       string         `json:"result_class" msgpack:"result_class" yaml:"result_class"`
	TransformerClass  string         `json:"transformer_class,omitempty" msgpack:"transformer_class,omitempty" yaml:"transformer_class,omitempty"`
	TransformerParams map[string]any `json:"transformer_params,omitempty" msgpack:"transformer_params" yaml:"transformer_params,omitempty"`
	Display           string         `json:"display" msgpack:"display" yaml:"display"`
	ParentID          string         `json:"parent_id,omitempty" msgpack:"parent_id,omitempty" yaml:"parent_id,omitempty"`
}

// Snapshot returns the serializable form of e. The parent is referenced
// by ID only; callers persisting a chain must snapshot each link.
func (e *Entry) Snapshot() Snapshot {
	s := Snapshot{
		ID:                e.id,
		SourceName:        e.sourceName,
		SourceFile:        e.sourceFile,
		SourceClass:       e.sourceClass,
		ResultName:        e.resultName,
		ResultFile:        e.resultFile,
		ResultClass:       e.resultClass,
		TransformerClass:  e.transformerClass,
		TransformerParams: e.TransformerParams(),
		Display:           e.display,
	}
	if e.parent != nil {
		s.ParentID = e.parent.id
	}
	return s
}

// FromSnapshot rebuilds an Entry from its serialized form, linking it to
// the already-rebuilt parent (nil at the start of a chain). The rebuilt
// entry is as immutable as a freshly recorded one.
func FromSnapshot(s Snapshot, parent *Entry) *Entry {
	return &Entry{
		id:                s.ID,
		sourceName:        s.SourceName,
		sourceFile:        s.SourceFile,
		sourceClass:       s.SourceClass,
		resultName:        s.ResultName,
		resultFile:        s.ResultFile,
		resultClass:       s.ResultClass,
		transformerClass:  s.TransformerClass,
		transformerParams: s.TransformerParams,
		display:           s.Display,
		parent:            parent,
	}
}
