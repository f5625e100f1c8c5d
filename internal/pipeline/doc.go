// Package pipeline turns a project file or folder into export jobs and runs
// them on a bounded pool of workers.
//
// Types:
//   - Job / Result: one project, its output folder, and how its search ended
//   - Orchestrator: runs Jobs concurrently, at most Workers at a time
//   - Reporter: the only shared mutable state; completion counter, stats,
//     and result lines behind one mutex
//   - RunStats: batch totals
//
// Functions:
//   - Run(ctx, cfg, log) → RunStats
//     discover → resolve output folders → orchestrate → summary.
//   - Discover(root, ext) → []string
//     Recursive, case-insensitive extension match, sorted.
package pipeline
