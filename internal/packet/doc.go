// Package packet owns the transmission wire contract and parsing primitives.
//
// Ownership boundary:
// - packet header and literal/operator body framing
// - expression evaluation over decoded trees
// - version accounting
// - re-encoding for round trips
package packet
