// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for the Spine launcher and the export
// settings template.
package check

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/tidwall/gjson"

	"github.com/backmassage/spinefit/internal/config"
	"github.com/backmassage/spinefit/internal/workspace"
)

// Sentinel errors returned by CheckDeps when something required is missing.
var (
	ErrRendererNotFound    = errors.New("spine executable not found")
	ErrExportConfigMissing = errors.New("export config not found")
	ErrExportConfigInvalid = errors.New("export config is not valid JSON")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// exportFields are reported by RunCheck when present in the template.
var exportFields = []string{
	"class",
	"packAtlas.maxWidth",
	"packAtlas.maxHeight",
	"packAtlas.scale",
	"packAtlas.pot",
}

// RunCheck runs the --check flow: Spine launcher, export template, and
// workspace directory. It reports every problem it finds and returns false
// if any of them would stop an export.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkSpine(cfg, log)
	ok = checkExportConfig(cfg, log) && ok
	ok = checkTempDir(cfg, log) && ok
	return ok
}

func checkSpine(cfg *config.Config, log Logger) bool {
	path, err := exec.LookPath(cfg.SpineExec)
	if err != nil {
		log.Error("Spine not found: %s", cfg.SpineExec)
		log.Error("  Pass --spine_exec with the launcher path")
		return false
	}
	log.Success("Spine: %s", path)
	return true
}

func checkExportConfig(cfg *config.Config, log Logger) bool {
	data, err := workspace.LoadTemplate(cfg.ExportJSON)
	if err != nil {
		log.Error("%v", classifyTemplateErr(cfg.ExportJSON, err))
		return false
	}
	log.Success("Export config: %s", cfg.ExportJSON)

	for _, field := range exportFields {
		if v := gjson.GetBytes(data, field); v.Exists() {
			log.Info("  %s = %s", field, v.Raw)
		}
	}
	if !gjson.GetBytes(data, "packAtlas").Exists() {
		log.Warn("  packAtlas missing; the scale field will be added to each copy")
	}
	return true
}

func checkTempDir(cfg *config.Config, log Logger) bool {
	ws, err := workspace.New(cfg.TempDir, []byte("{}"))
	if err != nil {
		log.Error("Cannot create workspace: %v", err)
		return false
	}
	dir := ws.Dir()
	if err := ws.Remove(); err != nil {
		log.Warn("Cannot remove test workspace %s: %v", dir, err)
	}
	log.Success("Workspace parent is writable")
	return true
}

// CheckDeps is the pre-pipeline validation: the Spine launcher must exist
// and the export template must exist and parse as JSON. Returns a wrapped
// sentinel error on failure. A launcher that exists but LookPath rejects
// (permissions, not marked executable) is only warned about; launch
// failures then surface as per-probe errors.
func CheckDeps(cfg *config.Config, log Logger) error {
	if _, err := exec.LookPath(cfg.SpineExec); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", ErrRendererNotFound, cfg.SpineExec)
		}
		log.Warn("Spine launcher may not be runnable: %v", err)
	}
	if _, err := workspace.LoadTemplate(cfg.ExportJSON); err != nil {
		return classifyTemplateErr(cfg.ExportJSON, err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}

func classifyTemplateErr(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w at '%s'", ErrExportConfigMissing, path)
	case errors.Is(err, workspace.ErrInvalidTemplate):
		return fmt.Errorf("%w: %s", ErrExportConfigInvalid, path)
	default:
		return fmt.Errorf("read export config: %w", err)
	}
}
