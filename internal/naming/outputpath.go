package naming

import (
	"path/filepath"
	"strings"
)

// ExportSuffix is appended to the project stem when no output folder is given.
const ExportSuffix = "_export"

// Stem returns the project file name without directory or extension.
func Stem(project string) string {
	base := filepath.Base(project)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputDir returns the folder a project exports into.
//
//	batch, outputRoot set:  <outputRoot>/<stem>
//	single, outputRoot set: <outputRoot>
//	outputRoot empty:       <project dir>/<stem>_export
func OutputDir(project, outputRoot string, batch bool) string {
	if outputRoot == "" {
		return strings.TrimSuffix(project, filepath.Ext(project)) + ExportSuffix
	}
	if !batch {
		return outputRoot
	}
	return filepath.Join(outputRoot, Stem(project))
}

// DisplayName returns project relative to root for log lines. It falls back
// to the base name when root is empty or the path cannot be made relative.
func DisplayName(project, root string) string {
	if root == "" {
		return filepath.Base(project)
	}
	rel, err := filepath.Rel(root, project)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(project)
	}
	return rel
}
