// Package workspace owns the per-job scratch directory that holds the
// scale-tagged copies of the export settings handed to Spine.
//
// A Workspace belongs to exactly one job. Each probe writes its own config
// file into it and exports into its staging folder; the job removes the
// whole directory when it finishes.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Export settings fields rewritten before every probe. Everything else in
// the template passes through byte for byte.
const (
	FieldProject = "project"
	FieldOutput  = "output"
	FieldScale   = "packAtlas.scale"
)

// ErrInvalidTemplate is returned when the export settings are not JSON.
var ErrInvalidTemplate = errors.New("export config is not valid JSON")

// LoadTemplate reads and validates the export settings template at path.
func LoadTemplate(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidTemplate)
	}
	return data, nil
}

// Render returns template with the project, output and packing scale
// fields set. scale is in percent; Spine takes a one-element list of
// fractions.
func Render(template []byte, input, output string, scale int) ([]byte, error) {
	data := append([]byte(nil), template...)
	var err error
	if data, err = sjson.SetBytes(data, FieldProject, input); err != nil {
		return nil, fmt.Errorf("set %s: %w", FieldProject, err)
	}
	if data, err = sjson.SetBytes(data, FieldOutput, output); err != nil {
		return nil, fmt.Errorf("set %s: %w", FieldOutput, err)
	}
	if data, err = sjson.SetBytes(data, FieldScale, []float64{float64(scale) / 100}); err != nil {
		return nil, fmt.Errorf("set %s: %w", FieldScale, err)
	}
	return data, nil
}

// Workspace is an ephemeral directory exclusively owned by one job.
type Workspace struct {
	dir      string
	template []byte
}

// New creates a fresh workspace under parent (os.TempDir() when empty).
func New(parent string, template []byte) (*Workspace, error) {
	if !gjson.ValidBytes(template) {
		return nil, ErrInvalidTemplate
	}
	dir, err := os.MkdirTemp(parent, "spinefit-")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{dir: dir, template: template}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string { return w.dir }

// WriteConfig writes the export settings for one probe at scale and returns
// the file path. Files are named by scale ("export-s074.json").
func (w *Workspace) WriteConfig(input, output string, scale int) (string, error) {
	data, err := Render(w.template, input, output, scale)
	if err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, fmt.Sprintf("export-s%03d.json", scale))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export config: %w", err)
	}
	return path, nil
}

// StagingDir is where Spine writes pages during a probe. It lives inside the
// workspace so nothing outside it is ever cleared.
func (w *Workspace) StagingDir() string { return filepath.Join(w.dir, "pages") }

// ResetStaging empties the staging folder and returns its path.
func (w *Workspace) ResetStaging() (string, error) {
	dir := w.StagingDir()
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("clear staging folder: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging folder: %w", err)
	}
	return dir, nil
}

// Remove deletes the workspace and everything in it. Safe to call twice.
func (w *Workspace) Remove() error {
	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	return nil
}
