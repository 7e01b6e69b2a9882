package stim

import (
	"errors"
	"iter"
	"path/filepath"
)

// ErrHistorySet is returned by SetHistory when a history entry has already
// been attached. A stimulus is the output of at most one transformation.
var ErrHistorySet = errors.New("stim: history already set")

// Stim is the interface implemented by all stimulus types.
//
// Onset and Duration are optional timing metadata; the second return value
// reports presence. No validation is performed on them — any value the
// caller supplies is accepted as-is.
type Stim interface {
	// Filename returns the path this stimulus was loaded from, or "" if it
	// was constructed in memory.
	Filename() string

	// Name returns the display name. It is never unset: either supplied
	// explicitly or derived from the base name of the filename.
	Name() string

	// Onset returns the onset in seconds relative to the parent timeline.
	Onset() (float64, bool)

	// Duration returns the duration in seconds.
	Duration() (float64, bool)

	// Class returns the concrete type name (e.g. "ImageStim"). Used for
	// provenance records and registry identity.
	Class() string

	// History returns the provenance entry attached by the most recent
	// transformation, or nil if the stimulus has no recorded lineage.
	History() *Entry

	// SetHistory attaches a provenance entry. It may be called at most
	// once per instance; a second call returns ErrHistorySet.
	SetHistory(*Entry) error
}

// Collection is the capability implemented by stimuli that contain
// sub-stimuli. It is checked by type assertion:
//
//	if c, ok := s.(stim.Collection); ok {
//		for sub := range c.Elements() { ... }
//	}
type Collection interface {
	// Elements iterates over the constituent sub-stimuli.
	Elements() iter.Seq[Stim]
}

// Transformer is the contract a transformation component must satisfy for
// its parameters to be captured in provenance records. Implementations
// declare a fixed list of loggable attributes; Record snapshots each
// declared attribute's current value. A declared attribute missing from
// LogValues is a programmer error and panics.
type Transformer interface {
	// Class returns the transformer's type name (e.g. "BrightnessExtractor").
	Class() string

	// LogAttributes returns the fixed, declared list of parameter names to
	// capture in provenance records.
	LogAttributes() []string

	// LogValues returns the current value of each loggable attribute.
	LogValues() map[string]any
}

// Config carries pipeline-wide settings read by the provenance layer.
// It is passed explicitly through the transformation call path rather than
// held as package-global state, so concurrent pipelines can use different
// settings.
type Config struct {
	// TransformationHistory enables provenance recording. When false,
	// Record is a no-op and stimuli keep a nil history.
	TransformationHistory bool
}

// DefaultConfig has provenance recording enabled.
var DefaultConfig = &Config{TransformationHistory: true}

// Option configures a Base during construction.
type Option func(*Base)

// WithName sets an explicit display name, overriding the filename-derived
// default.
func WithName(name string) Option {
	return func(b *Base) { b.name = name }
}

// WithOnset sets the onset in seconds.
func WithOnset(onset float64) Option {
	return func(b *Base) { b.onset, b.hasOnset = onset, true }
}

// WithDuration sets the duration in seconds.
func WithDuration(d float64) Option {
	return func(b *Base) { b.duration, b.hasDuration = d, true }
}

// Base holds the fields common to all stimulus types. Concrete types embed
// it and gain the Stim accessors; Class remains the concrete type's own.
type Base struct {
	filename    string
	name        string
	onset       float64
	hasOnset    bool
	duration    float64
	hasDuration bool
	history     *Entry
}

// NewBase constructs the common stimulus state. If no explicit name is
// given, the name defaults to the base name of filename, or "" when there
// is no filename either.
func NewBase(filename string, opts ...Option) Base {
	b := Base{filename: filename}
	for _, opt := range opts {
		opt(&b)
	}
	if b.name == "" && b.filename != "" {
		b.name = filepath.Base(b.filename)
	}
	return b
}

func (b *Base) Filename() string { return b.filename }

func (b *Base) Name() string { return b.name }

func (b *Base) Onset() (float64, bool) { return b.onset, b.hasOnset }

func (b *Base) Duration() (float64, bool) { return b.duration, b.hasDuration }

func (b *Base) History() *Entry { return b.history }

// SetHistory attaches a provenance entry, once.
func (b *Base) SetHistory(e *Entry) error {
	if b.history != nil {
		return ErrHistorySet
	}
	b.history = e
	return nil
}
