// Package sniff classifies file content types by inspecting magic bytes
// rather than trusting filenames or extensions.
//
// The default [Detector] wraps github.com/gabriel-vasile/mimetype. Callers
// that need a different classification strategy (a remote service, a test
// stub) implement [Classifier] themselves.
package sniff

import (
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Classifier determines a content type ("type/subtype") from content.
type Classifier interface {
	// Classify reads from r (typically only a small header) and returns
	// the detected content type without parameters, e.g. "image/jpeg".
	Classify(r io.Reader) (string, error)
}

// Detector is the default magic-byte Classifier.
type Detector struct{}

// Classify detects the content type by reading a bounded header from r.
func (Detector) Classify(r io.Reader) (string, error) {
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}
	return strip(mt.String()), nil
}

// ClassifyFile detects the content type of the named file.
func (d Detector) ClassifyFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return d.Classify(f)
}

// Media returns the top-level media token of a content type: "image/jpeg"
// yields "image". An empty or malformed content type yields "".
func Media(contentType string) string {
	contentType = strip(contentType)
	i := strings.IndexByte(contentType, '/')
	if i < 0 {
		return ""
	}
	return contentType[:i]
}

// strip drops any parameters, e.g. "text/plain; charset=utf-8" becomes
// "text/plain".
func strip(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(contentType)
}
