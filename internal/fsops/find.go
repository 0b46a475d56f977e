package fsops

import (
	"os"
	"path/filepath"
)

type entryRole int

const (
	roleFile entryRole = iota
	roleDir
	// roleDirLink is a symlink resolving to a directory: never matched and,
	// since links are not followed, never descended into.
	roleDirLink
)

type pending struct {
	path string
	name string
	role entryRole
}

// FindOptions tunes Find.
type FindOptions struct {
	// SkipUnreadable continues past nested directories that cannot be
	// read instead of aborting the traversal. The root is always fatal.
	SkipUnreadable bool
	// OnSkip receives each skipped directory error when SkipUnreadable is set.
	OnSkip func(error)
	// ReadDir lists a directory. Nil means os.ReadDir.
	ReadDir func(name string) ([]os.DirEntry, error)
}

// Find walks the tree under root depth-first in pre-order and calls emit
// with the full path of every non-directory entry whose base name equals
// name exactly. Directories are descended into, never matched, and
// symlinks are not followed. A symlink that resolves to a directory is
// neither matched nor descended into.
//
// found reports whether emit was called at least once. It stays valid when
// err is non-nil: matches emitted before an abort still count.
func Find(root, name string, opts FindOptions, emit func(path string)) (found bool, err error) {
	readDir := opts.ReadDir
	if readDir == nil {
		readDir = os.ReadDir
	}

	rootEntries, err := readDir(root)
	if err != nil {
		return false, newPathError("readdir", root, err)
	}

	// Pending entries, top of stack last. Each directory's children are
	// pushed in reverse so they pop in listing order, and a directory is
	// expanded as soon as it is popped, which keeps the walk pre-order.
	stack := make([]pending, 0, len(rootEntries))
	push := func(dir string, entries []os.DirEntry) {
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			path := filepath.Join(dir, e.Name())
			stack = append(stack, pending{path: path, name: e.Name(), role: roleOf(path, e)})
		}
	}
	push(root, rootEntries)

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch p.role {
		case roleDirLink:
			continue
		case roleFile:
			if p.name == name {
				emit(p.path)
				found = true
			}
			continue
		}

		entries, readErr := readDir(p.path)
		if readErr != nil {
			pathErr := newPathError("readdir", p.path, readErr)
			if !opts.SkipUnreadable {
				return found, pathErr
			}
			if opts.OnSkip != nil {
				opts.OnSkip(pathErr)
			}
			continue
		}
		push(p.path, entries)
	}

	return found, nil
}

// roleOf classifies e without following it. Only symlinks are stat'ed, to
// tell links to directories apart from links to files; a dangling link
// counts as a file.
func roleOf(path string, e os.DirEntry) entryRole {
	if e.IsDir() {
		return roleDir
	}
	if e.Type()&os.ModeSymlink != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return roleDirLink
		}
	}
	return roleFile
}
