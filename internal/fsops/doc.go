// Package fsops implements the filesystem operations behind the fs-cli
// subcommands.
//
// # Operations
//
//   - OpenLines: lazy line reader with per-line decode errors
//   - ListDirectory: immediate children with kind and size
//   - Find: depth-first, pre-order search for an exact base name
//   - Grep: literal substring search with 1-based line numbers
//
// # Errors
//
// Failures are reported as *PathError values that unwrap to one of
// ErrPathNotFound, ErrUnreadable, ErrDecode or ErrMetadataUnavailable:
//
//	if errors.Is(err, fsops.ErrPathNotFound) {
//	    // ...
//	}
//
// Errors on the path named by the caller are returned. Errors on nested
// items (a bad entry, a bad line) are reported individually while the
// operation continues, except in Find, where an unreadable nested
// directory aborts the walk unless FindOptions.SkipUnreadable is set.
package fsops
