// Package aggregate rolls summarized time and rental entries up by employee,
// manager, and job. Every aggregation is a pure function over a snapshot
// plus filter parameters and is cheap enough to recompute on each read.
package aggregate
