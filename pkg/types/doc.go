// Package types defines the public error categories and decode limits shared
// by the BYAML reader, writer and tooling.
//
// Design goals:
//   - Paranoid bounds checking; never panic on malformed input.
//   - Typed errors with stable categories (magic/version/bounds/tag/index/...).
//   - Limits that cap the work a hostile file can make the decoder do.
//
// This package has no dependencies beyond the standard library.
package types
