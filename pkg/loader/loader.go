// Package loader turns file paths into typed stimuli by sniffing each
// file's content type.
//
// Loading is deliberately best-effort: paths that do not exist and files
// whose content type has no matching stimulus are silently dropped (logged
// at debug level), so a directory of mixed material can be pointed at the
// pipeline without pre-filtering. Options.FailFast turns the drops into
// errors for callers that would rather catch operator mistakes.
package loader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/perceptlab/stimkit/pkg/sniff"
	"github.com/perceptlab/stimkit/pkg/source"
	"github.com/perceptlab/stimkit/pkg/stim"
)

// mediaFactories maps top-level media tokens to stimulus constructors.
// This is a fixed map: the loader does not consult the registry for
// sniffed files, only for an explicit Options.Type override.
var mediaFactories = map[string]stim.Factory{
	"text":  func(filename string) stim.Stim { return stim.NewTextStim(filename) },
	"image": func(filename string) stim.Stim { return stim.NewImageStim(filename) },
	"audio": func(filename string) stim.Stim { return stim.NewAudioStim(filename) },
	"video": func(filename string) stim.Stim { return stim.NewVideoStim(filename) },
}

// Options configures a Load call. The zero value loads from the local
// filesystem with magic-byte sniffing and best-effort semantics.
type Options struct {
	// Type forces every loaded file to the named stimulus type instead of
	// sniffing content. The name is resolved through the registry with
	// the usual normalization ("image", "image_stim", ...). Directory
	// expansion and existence filtering still apply.
	Type string

	// FailFast reports missing paths and unsupported content types as
	// errors instead of silently dropping them.
	FailFast bool

	// Classifier overrides the content-type classifier.
	// Defaults to sniff.Detector.
	Classifier sniff.Classifier

	// Source is the tree to load from. Defaults to the local filesystem.
	Source source.Source

	// Registry resolves Type overrides. Defaults to the package registry
	// with the built-in stimulus types.
	Registry *stim.Registry

	// Logger receives debug records for dropped paths.
	// Defaults to slog.Default.
	Logger *slog.Logger
}

func (o *Options) classifier() sniff.Classifier {
	if o.Classifier != nil {
		return o.Classifier
	}
	return sniff.Detector{}
}

func (o *Options) source() source.Source {
	if o.Source != nil {
		return o.Source
	}
	return source.NewLocal()
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o *Options) resolve(name string) (stim.Factory, error) {
	if o.Registry != nil {
		return o.Registry.Resolve(name)
	}
	return stim.Resolve(name)
}

// Load loads stimuli from the given paths. Each path may be a regular
// file or a directory; directories are expanded one level only, never
// recursively. Paths that do not exist are dropped. Each remaining file
// is classified by content and instantiated as the matching stimulus
// type; files whose top-level media token has no stimulus type are
// dropped too.
//
// The order of returned stimuli follows the source's enumeration order,
// which is not guaranteed to be sorted; callers needing determinism must
// sort the result themselves.
func Load(ctx context.Context, paths []string, opts *Options) ([]stim.Stim, error) {
	if opts == nil {
		opts = &Options{}
	}
	src := opts.source()
	log := opts.logger()

	var factory stim.Factory
	if opts.Type != "" {
		f, err := opts.resolve(opts.Type)
		if err != nil {
			return nil, err
		}
		factory = f
	}

	var stims []stim.Stim
	for _, path := range paths {
		info, err := src.Stat(ctx, path)
		if err != nil {
			if opts.FailFast {
				return nil, fmt.Errorf("loader: stat %s: %w", path, err)
			}
			log.DebugContext(ctx, "loader: dropping missing path", "path", path)
			continue
		}

		if info.Dir {
			entries, err := src.List(ctx, path)
			if err != nil {
				return nil, fmt.Errorf("loader: list %s: %w", path, err)
			}
			for _, entry := range entries {
				if entry.Dir {
					continue // one level only
				}
				stims, err = loadFile(ctx, stims, entry.Path, factory, src, opts, log)
				if err != nil {
					return nil, err
				}
			}
			continue
		}

		stims, err = loadFile(ctx, stims, info.Path, factory, src, opts, log)
		if err != nil {
			return nil, err
		}
	}
	return stims, nil
}

// LoadPath is a convenience wrapper around Load for a single path.
func LoadPath(ctx context.Context, path string, opts *Options) ([]stim.Stim, error) {
	return Load(ctx, []string{path}, opts)
}

// loadFile classifies one regular file and appends the matching stimulus,
// or drops the file when its media type is unsupported.
func loadFile(ctx context.Context, stims []stim.Stim, path string, forced stim.Factory, src source.Source, opts *Options, log *slog.Logger) ([]stim.Stim, error) {
	if forced != nil {
		return append(stims, forced(path)), nil
	}

	ct, err := classify(ctx, src, opts.classifier(), path)
	if err != nil {
		if opts.FailFast {
			return nil, fmt.Errorf("loader: classify %s: %w", path, err)
		}
		log.DebugContext(ctx, "loader: dropping unclassifiable file", "path", path, "error", err)
		return stims, nil
	}

	f, ok := mediaFactories[sniff.Media(ct)]
	if !ok {
		if opts.FailFast {
			return nil, fmt.Errorf("loader: %s: unsupported content type %q", path, ct)
		}
		log.DebugContext(ctx, "loader: dropping unsupported content type", "path", path, "type", ct)
		return stims, nil
	}
	return append(stims, f(path)), nil
}

// classify opens the file and runs the classifier over its header.
func classify(ctx context.Context, src source.Source, c sniff.Classifier, path string) (string, error) {
	rc, err := src.Open(ctx, path)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return c.Classify(rc)
}
