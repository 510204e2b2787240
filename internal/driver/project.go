package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"mview/internal/codegen"
)

// ManifestName is the project manifest looked up from the working directory.
const ManifestName = "mview.toml"

// Manifest is the decoded mview.toml.
type Manifest struct {
	Project ProjectSection `toml:"project"`
}

// ProjectSection configures where views live and how they are lowered.
type ProjectSection struct {
	Name    string `toml:"name"`
	Views   string `toml:"views"`   // directory with .mv files, default "views"
	Package string `toml:"package"` // default package for generated files
	Target  string `toml:"target"`  // "named" (default) or "generic"
}

// LoadManifest reads dir/mview.toml. A missing manifest is not an error; the
// returned defaults apply.
func LoadManifest(dir string) (*Manifest, error) {
	m := &Manifest{
		Project: ProjectSection{Views: "views", Target: "named"},
	}

	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return m, nil
	}
	if _, err := toml.DecodeFile(path, m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if m.Project.Views == "" {
		m.Project.Views = "views"
	}
	if m.Project.Target == "" {
		m.Project.Target = "named"
	}
	return m, nil
}

// TargetFor maps the manifest's target field onto a codegen target.
func (m *Manifest) TargetFor() (codegen.Target, error) {
	switch m.Project.Target {
	case "named":
		return codegen.TargetNamed, nil
	case "generic":
		return codegen.TargetGeneric, nil
	}
	return codegen.TargetNamed, fmt.Errorf("unknown target %q in %s", m.Project.Target, ManifestName)
}
