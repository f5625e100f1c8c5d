// Package spine builds and executes Spine command-line exports and
// classifies their captured output.
//
// Files:
//   - builder.go: argv for "<spine> --input <project> --output <dir> --export <json>"
//   - executor.go: synchronous, context-aware subprocess run with captured output
//   - errors.go: the "image does not fit within max page" signature
//   - proc_*.go: process-group setup and teardown so a cancelled export
//     never leaves a Spine child behind
package spine
