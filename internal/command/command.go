// Package command models the five fs-cli commands and dispatches them to
// the filesystem operations in package fsops.
package command

import "github.com/quocvuong92/fs-cli/internal/constants"

// Command is one resolved invocation. The set of implementations is closed:
// Echo, Cat, List, Find and Grep.
type Command interface {
	// Name is the subcommand name, used in diagnostics.
	Name() string
	sealed()
}

// Echo prints Text followed by a newline.
type Echo struct {
	Text string
}

// Cat prints the lines of the file at Path.
type Cat struct {
	Path string
}

// List prints the immediate entries of the directory at Path.
type List struct {
	Path string
}

// Find prints every file under Root whose base name is Target.
type Find struct {
	Root   string
	Target string
}

// Grep prints the lines of the file at Path containing Pattern.
type Grep struct {
	Pattern string
	Path    string
}

// NewList returns a List for path, defaulting to the current directory.
func NewList(path string) List {
	if path == "" {
		path = constants.DefaultListPath
	}
	return List{Path: path}
}

func (Echo) Name() string { return "echo" }
func (Cat) Name() string  { return "cat" }
func (List) Name() string { return "ls" }
func (Find) Name() string { return "find" }
func (Grep) Name() string { return "minigrep" }

func (Echo) sealed() {}
func (Cat) sealed()  {}
func (List) sealed() {}
func (Find) sealed() {}
func (Grep) sealed() {}
