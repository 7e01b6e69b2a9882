package stim

import "iter"

// TextStim is a unit of text, either read from a file or supplied directly.
type TextStim struct {
	Base
	text string
}

// NewTextStim creates a text stimulus for the named file.
func NewTextStim(filename string, opts ...Option) *TextStim {
	return &TextStim{Base: NewBase(filename, opts...)}
}

// NewTextStimFromText creates a text stimulus with no backing file.
func NewTextStimFromText(text string, opts ...Option) *TextStim {
	return &TextStim{Base: NewBase("", opts...), text: text}
}

func (s *TextStim) Class() string { return "TextStim" }

// Text returns the raw text, if the stimulus was constructed from text.
func (s *TextStim) Text() string { return s.text }

// ImageStim is a single still image.
type ImageStim struct {
	Base
}

// NewImageStim creates an image stimulus for the named file.
func NewImageStim(filename string, opts ...Option) *ImageStim {
	return &ImageStim{Base: NewBase(filename, opts...)}
}

func (s *ImageStim) Class() string { return "ImageStim" }

// AudioStim is an audio clip.
type AudioStim struct {
	Base
}

// NewAudioStim creates an audio stimulus for the named file.
func NewAudioStim(filename string, opts ...Option) *AudioStim {
	return &AudioStim{Base: NewBase(filename, opts...)}
}

func (s *AudioStim) Class() string { return "AudioStim" }

// VideoStim is a video clip.
type VideoStim struct {
	Base
}

// NewVideoStim creates a video stimulus for the named file.
func NewVideoStim(filename string, opts ...Option) *VideoStim {
	return &VideoStim{Base: NewBase(filename, opts...)}
}

func (s *VideoStim) Class() string { return "VideoStim" }

// CompoundStim groups several stimuli into one. It implements the
// Collection capability.
type CompoundStim struct {
	Base
	elements []Stim
}

// NewCompoundStim creates a compound stimulus over the given elements.
// The element slice is copied.
func NewCompoundStim(elements []Stim, opts ...Option) *CompoundStim {
	elems := make([]Stim, len(elements))
	copy(elems, elements)
	return &CompoundStim{Base: NewBase("", opts...), elements: elems}
}

func (s *CompoundStim) Class() string { return "CompoundStim" }

// Elements iterates over the contained stimuli.
func (s *CompoundStim) Elements() iter.Seq[Stim] {
	return func(yield func(Stim) bool) {
		for _, e := range s.elements {
			if !yield(e) {
				return
			}
		}
	}
}

func init() {
	MustRegister("text", func(filename string) Stim { return NewTextStim(filename) })
	MustRegister("image", func(filename string) Stim { return NewImageStim(filename) })
	MustRegister("audio", func(filename string) Stim { return NewAudioStim(filename) })
	MustRegister("video", func(filename string) Stim { return NewVideoStim(filename) })
	MustRegister("compound", func(_ string) Stim { return NewCompoundStim(nil) })
}
