// Package source resolves which file path and text a completion request is
// made against.
package source

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/teranos/codecomplete/errors"
	"github.com/teranos/codecomplete/logger"
)

// DefaultSuffix is appended to generated identifiers when no file is given
const DefaultSuffix = ".swift"

// Identity is the path and contents a request is made against.
// Contents is always materialized, even when it came from a file.
type Identity struct {
	Path     string
	Contents string
}

// Locator resolves an Identity from the file and text options.
type Locator struct {
	fs     afero.Fs
	newID  func() string
	abs    func(string) (string, error)
	suffix string
}

// Option configures a Locator
type Option func(*Locator)

// WithFs reads files through fs instead of the OS file system
func WithFs(fs afero.Fs) Option {
	return func(l *Locator) { l.fs = fs }
}

// WithIDGenerator replaces the random identifier used for synthetic paths
func WithIDGenerator(gen func() string) Option {
	return func(l *Locator) { l.newID = gen }
}

// WithAbs replaces the function that makes paths absolute
func WithAbs(abs func(string) (string, error)) Option {
	return func(l *Locator) { l.abs = abs }
}

// WithSuffix sets the suffix of synthetic paths. Empty keeps the default.
func WithSuffix(suffix string) Option {
	return func(l *Locator) {
		if suffix != "" {
			l.suffix = suffix
		}
	}
}

// NewLocator creates a Locator backed by the OS file system
func NewLocator(opts ...Option) *Locator {
	l := &Locator{
		fs:     afero.NewOsFs(),
		newID:  uuid.NewString,
		abs:    filepath.Abs,
		suffix: DefaultSuffix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Resolve returns the identity for file and text.
//
// A non-empty file is made absolute; otherwise a fresh "<uuid><suffix>" path
// is generated. A non-empty text is used verbatim and the file is never read.
// With empty text the file is read exactly once; a failure is reported with
// file as given by the caller.
func (l *Locator) Resolve(file, text string) (Identity, error) {
	path, err := l.path(file)
	if err != nil {
		return Identity{}, err
	}

	log := logger.ComponentLogger("source")

	if text != "" {
		log.Debugw("Using inline text", logger.FieldPath, path, logger.FieldSize, len(text))
		return Identity{Path: path, Contents: text}, nil
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return Identity{}, errors.ReadFailed(file, err)
	}

	log.Debugw("Read source file", logger.FieldPath, path, logger.FieldSize, len(data))
	return Identity{Path: path, Contents: string(data)}, nil
}

func (l *Locator) path(file string) (string, error) {
	name := file
	if name == "" {
		name = l.newID() + l.suffix
	}
	path, err := l.abs(name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve path %q", name)
	}
	return path, nil
}
