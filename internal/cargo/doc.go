// Package cargo binds cargomcp to the external metadata-extraction facility:
// the `cargo metadata` subcommand of the Rust toolchain.
//
// The package models the JSON document produced by
// `cargo metadata --format-version 1` and provides MetadataCommand, a
// configurable invoker that runs the subprocess and parses its output.
// All parsing and dependency resolution is cargo's job; this package never
// interprets manifest syntax itself.
//
// The Extractor interface is the seam between the subprocess integration and
// the query layer, so projections can be tested against a fake document
// source without a Rust toolchain installed.
package cargo
