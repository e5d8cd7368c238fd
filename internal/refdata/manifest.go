// Package refdata loads the reference group files the screening engine
// matches against.
//
// Reference data lives as CSV and Excel files on disk. A manifest names the
// directory and which files feed each group; without one, the built-in
// default layout is used. Loading is fail-open: missing directories, missing
// files, and unreadable files are logged and skipped so the server always
// starts, worst case with empty groups that screen everything as safe.
package refdata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest names the reference directory and the files per group.
type Manifest struct {
	Dir    string         `yaml:"dir"`
	Groups ManifestGroups `yaml:"groups"`
}

// ManifestGroups lists the source files for each reference group.
type ManifestGroups struct {
	Imneo   []string `yaml:"imneo"`
	XClient []string `yaml:"xclient"`
}

// DefaultManifest returns the standard file layout under dir.
func DefaultManifest(dir string) Manifest {
	return Manifest{
		Dir: dir,
		Groups: ManifestGroups{
			Imneo:   []string{"imneo.csv", "imneo1.xlsx", "imneo2.xlsx"},
			XClient: []string{"xclient1.csv", "xclient2.csv"},
		},
	}
}

// LoadManifest reads and parses a YAML manifest. Fields left empty in the
// file fall back to the defaults for dir.
func LoadManifest(path, dir string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	def := DefaultManifest(dir)
	if m.Dir == "" {
		m.Dir = def.Dir
	}
	if len(m.Groups.Imneo) == 0 {
		m.Groups.Imneo = def.Groups.Imneo
	}
	if len(m.Groups.XClient) == 0 {
		m.Groups.XClient = def.Groups.XClient
	}

	return m, nil
}
