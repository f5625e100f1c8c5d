package spine

// Invocation is one export request: which project to export, where the
// pages go, and which export settings file to use.
type Invocation struct {
	Input        string
	Output       string
	ExportConfig string
}

// Build constructs the complete argument slice, executable first.
func Build(exe string, inv Invocation) []string {
	return []string{
		exe,
		"--input", inv.Input,
		"--output", inv.Output,
		"--export", inv.ExportConfig,
	}
}
