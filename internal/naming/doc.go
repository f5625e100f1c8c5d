// Package naming decides where each project's export lands and how it is
// labelled in log lines.
//
// Functions:
//   - OutputDir(project, outputRoot, batch) → export folder
//     batch + --output: <output>/<stem>
//     single + --output: <output>
//     no --output:       <stem>_export beside the project
//   - DisplayName(project, root) → path relative to the scanned root
//
// Types:
//   - CollisionResolver: in-run duplicate folder resolver ("_dupN" suffix)
package naming
