package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "domain.pddl", "(define (domain d))")
	writeFile(t, dir, "p1.pddl", "(define (problem p1) (:domain d))")
	writeFile(t, dir, "p2.pddl", "(define (problem p2) (:domain d))")
	writeFile(t, dir, ManifestName, `
domain: domain.pddl
problems:
  - p1.pddl
  - p2.pddl
horizon: 5
`)

	proj, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if proj.Domain != "domain.pddl" {
		t.Errorf("Domain = %q, want domain.pddl", proj.Domain)
	}
	if len(proj.Problems) != 2 {
		t.Errorf("problem count = %d, want 2", len(proj.Problems))
	}
	if proj.Horizon != 5 {
		t.Errorf("Horizon = %d, want 5", proj.Horizon)
	}
	if got := proj.Resolve("p1.pddl"); got != filepath.Join(dir, "p1.pddl") {
		t.Errorf("Resolve = %q", got)
	}
}

func TestLoadFromDefaultHorizon(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "domain.pddl", "(define (domain d))")
	writeFile(t, dir, "p.pddl", "(define (problem p) (:domain d))")
	writeFile(t, dir, ManifestName, "domain: domain.pddl\nproblems: [p.pddl]\n")

	proj, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if proj.Horizon != DefaultHorizon {
		t.Errorf("Horizon = %d, want %d", proj.Horizon, DefaultHorizon)
	}
}

func TestLoadFromErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     string
	}{
		{"missing domain", "problems: [p.pddl]\n", "missing domain"},
		{"no problems", "domain: domain.pddl\n", "no problem files"},
		{"bad horizon", "domain: domain.pddl\nproblems: [p.pddl]\nhorizon: -2\n", "horizon"},
		{"missing file", "domain: domain.pddl\nproblems: [ghost.pddl]\n", "ghost.pddl"},
		{"bad yaml", "domain: [\n", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "domain.pddl", "(define (domain d))")
			writeFile(t, dir, "p.pddl", "(define (problem p) (:domain d))")
			writeFile(t, dir, ManifestName, tt.manifest)

			_, err := LoadFrom(dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoadFromMissingManifest(t *testing.T) {
	if _, err := LoadFrom(t.TempDir()); err == nil {
		t.Fatal("expected error for a directory without a manifest")
	}
}
