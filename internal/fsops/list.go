package fsops

import (
	"io/fs"
	"os"
	"path/filepath"
)

// EntryKind classifies a directory entry.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
	KindOther
)

// String returns the label used in listings.
func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "File"
	case KindDirectory:
		return "Directory"
	default:
		return "Other"
	}
}

// DirEntryInfo describes one immediate child of a directory.
type DirEntryInfo struct {
	Name string
	Kind EntryKind
	Size uint64
}

// Listing is the result of ListDirectory. Entries carry no ordering
// guarantee. Errors holds per-entry failures; those entries are omitted.
type Listing struct {
	Entries []DirEntryInfo
	Errors  []error
}

// ListDirectory lists the immediate children of dir.
// Only a failure to read dir itself is returned as an error.
func ListDirectory(dir string) (*Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && len(entries) == 0 {
		return nil, newPathError("readdir", dir, err)
	}

	listing := &Listing{
		Entries: make([]DirEntryInfo, 0, len(entries)),
	}
	if err != nil {
		listing.Errors = append(listing.Errors, newPathError("readdir", dir, err))
	}

	for _, e := range entries {
		info, infoErr := e.Info()
		if infoErr != nil {
			listing.Errors = append(listing.Errors, &PathError{
				Op:   "lstat",
				Path: filepath.Join(dir, e.Name()),
				Kind: ErrMetadataUnavailable,
				Err:  unwrapPathErr(infoErr),
			})
			continue
		}
		listing.Entries = append(listing.Entries, DirEntryInfo{
			Name: e.Name(),
			Kind: classify(e.Type(), info),
			Size: uint64(max(info.Size(), 0)),
		})
	}

	return listing, nil
}

// classify prefers the entry's own type bits and only falls back to
// lstat metadata when they are unknown. Symlinks are never followed.
func classify(mode fs.FileMode, info fs.FileInfo) EntryKind {
	if mode.Type() == 0 && info != nil {
		mode = info.Mode()
	}
	switch {
	case mode.IsDir():
		return KindDirectory
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

func unwrapPathErr(err error) error {
	if pe, ok := err.(*fs.PathError); ok {
		return pe.Err
	}
	return err
}
