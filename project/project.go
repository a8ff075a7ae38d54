// Package project loads plan.yaml manifests describing a planning
// project: one domain file, its problem files, and encoding options.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const ManifestName = "plan.yaml"

const DefaultHorizon = 10

// Project describes one domain and the problems to check against it.
type Project struct {
	RootDir  string   `yaml:"-"`
	Domain   string   `yaml:"domain"`
	Problems []string `yaml:"problems"`
	Horizon  int      `yaml:"horizon"`
}

// Load reads the manifest from the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads and validates plan.yaml in rootDir. Relative file
// entries resolve against rootDir.
func LoadFrom(rootDir string) (*Project, error) {
	path := filepath.Join(rootDir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	proj := &Project{RootDir: rootDir, Horizon: DefaultHorizon}
	if err := yaml.Unmarshal(data, proj); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := proj.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return proj, nil
}

func (p *Project) validate() error {
	if p.Domain == "" {
		return fmt.Errorf("missing domain file")
	}
	if len(p.Problems) == 0 {
		return fmt.Errorf("no problem files")
	}
	if p.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", p.Horizon)
	}
	for _, file := range append([]string{p.Domain}, p.Problems...) {
		if _, err := os.Stat(p.Resolve(file)); err != nil {
			return fmt.Errorf("file %q: %w", file, err)
		}
	}
	return nil
}

// Resolve turns a manifest-relative path into a usable one.
func (p *Project) Resolve(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(p.RootDir, file)
}
