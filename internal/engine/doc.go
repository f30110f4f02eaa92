// Package engine implements the deterministic monthly projection core:
// revenue composition, cost composition, debt service, the sequential
// cash fold with payback detection, and the canonical inputs hash that
// makes each run traceable to an exact snapshot of its assumptions.
//
// The per-month calculation is pure; all threaded state (cumulative
// cash, the payback latch) lives in a single explicit fold so the two
// concerns stay separately testable.
package engine
