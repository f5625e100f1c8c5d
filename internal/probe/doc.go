// Package probe defines a single export attempt at a given scale and its
// tri-state outcome.
//
// Types:
//   - Prober: the capability the scale search drives
//   - Outcome / Kind: Fits, DoesNotFit, or Error with captured detail
//   - Export: the production Prober, one Spine run per call into the
//     workspace staging folder
//   - Fake: an in-memory Prober for tests
//
// Functions:
//   - Classify(ExecResult, artifactCount) → Outcome
package probe
