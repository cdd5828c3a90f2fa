// Package suggest produces ranked clause improvement suggestions.
//
// Given a clause and a template library, the package finds comparable
// templates by keyword-overlap similarity (Jaccard over extracted keyword
// sets), synthesizes heuristic rewrites for requested improvement goals
// (clarity, compliance, risk reduction), and ranks everything by confidence.
// A comparator scores a proposed replacement against the original clause and
// recommends accept, modify, or reject, with a word-level diff of the change.
//
// All operations are synchronous, deterministic, and CPU-bound; the package
// holds no state beyond its injected dependencies.
package suggest
