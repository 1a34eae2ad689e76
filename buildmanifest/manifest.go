// Package buildmanifest extracts per-module compiler arguments from the
// llbuild manifest a Swift package build leaves in .build/debug.yaml.
package buildmanifest

import (
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"github.com/teranos/codecomplete/errors"
	"github.com/teranos/codecomplete/logger"
	"gopkg.in/yaml.v3"
)

// DefaultManifest is the manifest path relative to the package root
const DefaultManifest = ".build/debug.yaml"

// command is one entry of the manifest's commands mapping. Only compiler
// commands carry a module name.
type command struct {
	Tool        string   `yaml:"tool"`
	ModuleName  string   `yaml:"module-name"`
	Sources     []string `yaml:"sources"`
	OtherArgs   []string `yaml:"other-args"`
	ImportPaths []string `yaml:"import-paths"`
}

type manifest struct {
	Commands map[string]command `yaml:"commands"`
}

// Resolver looks modules up in a package's build manifest.
type Resolver struct {
	fs          afero.Fs
	packagePath string
	manifest    string
}

// NewResolver creates a Resolver for the package rooted at packagePath.
// An empty manifest path selects DefaultManifest.
func NewResolver(fs afero.Fs, packagePath, manifestPath string) *Resolver {
	if packagePath == "" {
		packagePath = "."
	}
	if manifestPath == "" {
		manifestPath = DefaultManifest
	}
	return &Resolver{fs: fs, packagePath: packagePath, manifest: manifestPath}
}

// ManifestPath returns the manifest file the resolver reads
func (r *Resolver) ManifestPath() string {
	if filepath.IsAbs(r.manifest) {
		return r.manifest
	}
	return filepath.Join(r.packagePath, r.manifest)
}

func (r *Resolver) load() (*manifest, error) {
	path := r.ManifestPath()
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, errors.Mark(
			errors.WithHint(errors.Wrapf(err, "failed to read build manifest %s", path), "build the package first (swift build)"),
			errors.ErrNotFound)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to parse build manifest %s", path), errors.ErrNotFound)
	}
	return &m, nil
}

// Arguments returns the compiler arguments for module name:
//
//	sources... -module-name <name> other-args... -I import-paths...
//
// A missing or unreadable manifest or an unknown module is ErrNotFound.
func (r *Resolver) Arguments(name string) ([]string, error) {
	log := logger.ComponentLogger("buildmanifest")

	m, err := r.load()
	if err != nil {
		return nil, err
	}

	// Map iteration order is random; visit keys sorted so a name appearing
	// twice resolves the same way every run.
	keys := make([]string, 0, len(m.Commands))
	for k := range m.Commands {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		cmd := m.Commands[k]
		if cmd.ModuleName != name {
			continue
		}

		args := make([]string, 0, len(cmd.Sources)+len(cmd.OtherArgs)+len(cmd.ImportPaths)+3)
		args = append(args, cmd.Sources...)
		args = append(args, "-module-name", name)
		args = append(args, cmd.OtherArgs...)
		args = append(args, "-I")
		args = append(args, cmd.ImportPaths...)

		log.Debugw("Resolved module arguments",
			logger.FieldModule, name,
			logger.FieldCount, len(args),
			logger.FieldFile, r.ManifestPath())
		return args, nil
	}

	log.Warnw("Module not found in build manifest",
		logger.FieldModule, name,
		logger.FieldFile, r.ManifestPath(),
		"available", m.modules())
	return nil, errors.NewNotFoundError("module %q not found in %s", name, r.ManifestPath())
}

// Modules lists the module names in the manifest, sorted
func (r *Resolver) Modules() ([]string, error) {
	m, err := r.load()
	if err != nil {
		return nil, err
	}
	return m.modules(), nil
}

func (m *manifest) modules() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range m.Commands {
		if cmd.ModuleName == "" || seen[cmd.ModuleName] {
			continue
		}
		seen[cmd.ModuleName] = true
		names = append(names, cmd.ModuleName)
	}
	sort.Strings(names)
	return names
}
