// Package query defines the six metadata query operations and their field
// projections.
//
// Each operation is a pure projection of one freshly extracted metadata
// document: no field is synthesized, cached or carried over between calls.
// The Service fetches a document through a cargo.Extractor, applies the
// operation's projection and serializes the result as indented JSON, which
// makes repeated calls against an unchanged manifest byte-identical.
package query
