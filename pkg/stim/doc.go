// Package stim defines the stimulus entity model for multimodal
// feature-extraction pipelines.
//
// A stimulus is one typed unit of input data (text, image, audio, video)
// with optional timing metadata and a provenance link. The package provides:
//
//   - The [Stim] interface and the [Base] struct that concrete stimulus
//     types embed.
//   - The [Collection] capability for stimuli that contain sub-stimuli.
//   - A name-addressable type registry ([Resolve], [Register]) so callers
//     can look up concrete stimulus types by loose human-given names
//     ("image", "image_stim", "IMAGESTIM" all resolve to ImageStim).
//   - The transformation provenance chain: [Record] builds an immutable
//     [Entry] after each transformation, and [Flatten] turns a chain into
//     a [Table] in chronological order.
//
// Entries are immutable once constructed, so concurrent reads of an
// existing chain are safe. Each stimulus instance is assumed to be the
// unique output of at most one transformation; its history is set exactly
// once.
package stim
