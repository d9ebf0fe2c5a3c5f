// Package analytics computes the dashboard aggregates from the loaded
// observation table. Every function is a pure O(n) projection of its input:
// global summary, within-year rank, per-year mean series, year-over-year
// change, top-N rankings, the entity-by-year pivot, and the bucketed index
// distribution. Nothing here mutates the rows it is given.
package analytics
