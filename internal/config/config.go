// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. Defaults keep existing export.json files and <name>_export
// folder layouts working.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Scale bounds, in percent. The search only ever probes even values.
const (
	ScaleFloor   = 2
	ScaleCeiling = 100
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Paths.
	Input      string // Positional: a .spine file or a folder to scan recursively.
	OutputDir  string // --output. Empty means "<stem>_export" beside each project.
	ExportJSON string // Default: "export.json".
	SpineExec  string // Default: platform-specific Spine launcher path.
	TempDir    string // Parent for job workspaces. Empty means os.TempDir().

	// Concurrency.
	Threads int // Default: runtime.NumCPU().

	// Scale search.
	MinScale    int  // Default: 10.
	MaxScale    int  // Default: 100.
	TryMaxFirst bool // Default: true. Cleared by --no-fast-path.

	// Renderer contract (not user-configurable).
	ProjectExt  string // ".spine"
	ArtifactExt string // ".png"

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		ExportJSON:  "export.json",
		SpineExec:   DefaultSpineExec(runtime.GOOS),
		Threads:     runtime.NumCPU(),
		MinScale:    10,
		MaxScale:    ScaleCeiling,
		TryMaxFirst: true,
		ProjectExt:  ".spine",
		ArtifactExt: ".png",
		ColorMode:   ColorAuto,
	}
}

// DefaultSpineExec returns the launcher path Spine installs on goos.
func DefaultSpineExec(goos string) string {
	switch goos {
	case "darwin":
		return "/Applications/Spine.app/Contents/MacOS/Spine"
	case "windows":
		return `C:\Program Files\Spine\Spine.com`
	default:
		return "Spine"
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks numeric ranges and required paths. When not in CheckOnly
// mode, the positional input must be present.
func (c *Config) Validate() error {
	if c.Threads < 1 {
		return fmt.Errorf("invalid thread count %d (must be at least 1)", c.Threads)
	}
	if c.MinScale < ScaleFloor || c.MinScale > ScaleCeiling {
		return fmt.Errorf("invalid min scale %d (use %d-%d)", c.MinScale, ScaleFloor, ScaleCeiling)
	}
	if c.MaxScale < ScaleFloor || c.MaxScale > ScaleCeiling {
		return fmt.Errorf("invalid max scale %d (use %d-%d)", c.MaxScale, ScaleFloor, ScaleCeiling)
	}
	if c.MinScale > c.MaxScale {
		return fmt.Errorf("min scale %d is above max scale %d", c.MinScale, c.MaxScale)
	}
	if strings.TrimSpace(c.ExportJSON) == "" {
		return errors.New("export config path must not be empty")
	}
	if strings.TrimSpace(c.SpineExec) == "" {
		return errors.New("spine executable path must not be empty")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.CheckOnly {
		return nil
	}
	if c.Input == "" {
		return errors.New("need exactly one input (a .spine file or a folder)")
	}
	return nil
}
