package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under root from a map of relative path to content.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// requireUnreadableDirs skips tests that rely on permission bits being enforced.
func requireUnreadableDirs(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
}

func collectLines(t *testing.T, path string) ([]Line, []error) {
	t.Helper()
	lr, err := OpenLines(path)
	require.NoError(t, err)
	defer lr.Close()

	var lines []Line
	var errs []error
	for line, err := range lr.All() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lines = append(lines, line)
	}
	return lines, errs
}

func TestOpenLines(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    []Line
	}{
		{"empty file", "", nil},
		{"single line no newline", "hello", []Line{{1, "hello"}}},
		{"trailing newline", "hello\nworld\n", []Line{{1, "hello"}, {2, "world"}}},
		{"crlf terminators", "a\r\nb\r\n", []Line{{1, "a"}, {2, "b"}}},
		{"blank lines keep their slot", "a\n\nc", []Line{{1, "a"}, {2, ""}, {3, "c"}}},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, fmt.Sprintf("case%d.txt", i))
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			lines, errs := collectLines(t, path)
			assert.Empty(t, errs)
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestOpenLines_DecodeErrorContinues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.txt")
	require.NoError(t, os.WriteFile(path, []byte("ok\n\xff\xfe\nstill ok\n"), 0644))

	lr, err := OpenLines(path)
	require.NoError(t, err)
	defer lr.Close()

	var numbers []int
	var decodeErrs int
	for line, err := range lr.All() {
		numbers = append(numbers, line.Number)
		if err != nil {
			assert.ErrorIs(t, err, ErrDecode)
			decodeErrs++
		}
	}

	assert.Equal(t, []int{1, 2, 3}, numbers)
	assert.Equal(t, 1, decodeErrs)
}

func TestOpenLines_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := OpenLines(filepath.Join(dir, "nope.txt"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPathNotFound)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := OpenLines(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnreadable)
		assert.Contains(t, err.Error(), "is a directory")
	})

	t.Run("no permission", func(t *testing.T) {
		requireUnreadableDirs(t)
		path := filepath.Join(dir, "locked.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0000))
		_, err := OpenLines(path)
		assert.ErrorIs(t, err, ErrUnreadable)
	})
}

func TestListDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt":     "hello\nworld",
		"sub/b.txt": "hello again",
	})

	listing, err := ListDirectory(dir)
	require.NoError(t, err)
	assert.Empty(t, listing.Errors)

	assert.ElementsMatch(t, []DirEntryInfo{
		{Name: "a.txt", Kind: KindFile, Size: 11},
		{Name: "sub", Kind: KindDirectory, Size: mustSize(t, filepath.Join(dir, "sub"))},
	}, listing.Entries)
}

func mustSize(t *testing.T, path string) uint64 {
	t.Helper()
	info, err := os.Lstat(path)
	require.NoError(t, err)
	return uint64(info.Size())
}

func TestListDirectory_EntryCountMatchesChildren(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"one": "1", "two": "22", "three/x": "", "four/y/z": "",
	})

	listing, err := ListDirectory(dir)
	require.NoError(t, err)

	children, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, listing.Entries, len(children))

	var names []string
	for _, e := range listing.Entries {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"one", "two", "three", "four"}, names)
}

func TestListDirectory_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a": "x", "b/c": "y"})

	first, err := ListDirectory(dir)
	require.NoError(t, err)
	second, err := ListDirectory(dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, first.Entries, second.Entries)
}

func TestListDirectory_SymlinkIsOther(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"target/file": "x"})
	if err := os.Symlink(filepath.Join(dir, "target"), filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	listing, err := ListDirectory(dir)
	require.NoError(t, err)

	kinds := make(map[string]EntryKind)
	for _, e := range listing.Entries {
		kinds[e.Name] = e.Kind
	}
	assert.Equal(t, KindDirectory, kinds["target"])
	assert.Equal(t, KindOther, kinds["link"])
}

func TestListDirectory_Errors(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"file.txt": "x"})

	t.Run("missing directory", func(t *testing.T) {
		_, err := ListDirectory(filepath.Join(dir, "missing"))
		assert.ErrorIs(t, err, ErrPathNotFound)
	})

	t.Run("path is a file", func(t *testing.T) {
		_, err := ListDirectory(filepath.Join(dir, "file.txt"))
		assert.ErrorIs(t, err, ErrUnreadable)
	})
}

func TestEntryKind_String(t *testing.T) {
	assert.Equal(t, "File", KindFile.String())
	assert.Equal(t, "Directory", KindDirectory.String())
	assert.Equal(t, "Other", KindOther.String())
}

func findAll(t *testing.T, root, name string, opts FindOptions) ([]string, bool, error) {
	t.Helper()
	var matches []string
	found, err := Find(root, name, opts, func(path string) {
		matches = append(matches, path)
	})
	return matches, found, err
}

func TestFind_NestedThreeDeep(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/b/c/target.txt": "x",
		"a/other.txt":      "y",
		"z.txt":            "z",
	})

	matches, found, err := findAll(t, root, "target.txt", FindOptions{})
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, matches, 1)
	assert.Equal(t, filepath.Join(root, "a", "b", "c", "target.txt"), matches[0])
}

func TestFind_NoMatch(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a/b.txt": "", "c.txt": ""})

	matches, found, err := findAll(t, root, "target.txt", FindOptions{})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, matches)
}

func TestFind_ExactCaseSensitiveName(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.txt":         "",
		"B.txt":         "",
		"xb.txt":        "",
		"b.txt.bak":     "",
		"deep/b.txt":    "",
		"b.txt.d/inner": "",
	})

	matches, found, err := findAll(t, root, "b.txt", FindOptions{})
	require.NoError(t, err)
	assert.True(t, found)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "deep", "b.txt"),
	}, matches)
}

func TestFind_DirectoriesAreNotMatched(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"target/inner.txt": ""})

	matches, found, err := findAll(t, root, "target", FindOptions{})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, matches)
}

func TestFind_SymlinkToDirectoryIsNotMatched(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"real/target/inner.txt": "", "real/file": ""})
	if err := os.Symlink(filepath.Join(root, "real", "target"), filepath.Join(root, "target")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "real", "file"), filepath.Join(root, "filelink")))

	t.Run("link to directory", func(t *testing.T) {
		matches, found, err := findAll(t, root, "target", FindOptions{})
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, matches)
	})

	t.Run("link is not followed", func(t *testing.T) {
		matches, _, err := findAll(t, root, "inner.txt", FindOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "real", "target", "inner.txt")}, matches)
	})

	t.Run("link to file still matches", func(t *testing.T) {
		matches, found, err := findAll(t, root, "filelink", FindOptions{})
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []string{filepath.Join(root, "filelink")}, matches)
	})
}

func TestFind_PreOrder(t *testing.T) {
	root := t.TempDir()
	// os.ReadDir lists in name order, so the walk order is deterministic here.
	writeTree(t, root, map[string]string{
		"a/x":     "",
		"a/b/x":   "",
		"a/c/d/x": "",
		"b/x":     "",
		"x":       "",
	})

	matches, _, err := findAll(t, root, "x", FindOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a", "b", "x"),
		filepath.Join(root, "a", "c", "d", "x"),
		filepath.Join(root, "a", "x"),
		filepath.Join(root, "b", "x"),
		filepath.Join(root, "x"),
	}, matches)
}

func TestFind_RootErrors(t *testing.T) {
	_, found, err := findAll(t, filepath.Join(t.TempDir(), "missing"), "x", FindOptions{})
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrPathNotFound)
}

// denyReadDir lists directories with os.ReadDir except for the given paths,
// which fail with a permission error.
func denyReadDir(denied ...string) func(string) ([]os.DirEntry, error) {
	return func(name string) ([]os.DirEntry, error) {
		for _, d := range denied {
			if name == d {
				return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
			}
		}
		return os.ReadDir(name)
	}
}

func TestFind_NestedUnreadable(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/x":        "",
		"b/locked/x": "",
		"c/x":        "",
	})
	locked := filepath.Join(root, "b", "locked")

	t.Run("aborts by default", func(t *testing.T) {
		matches, found, err := findAll(t, root, "x", FindOptions{ReadDir: denyReadDir(locked)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnreadable)
		assert.ErrorIs(t, err, fs.ErrPermission)
		assert.True(t, found, "matches before the abort still count")
		assert.Equal(t, []string{filepath.Join(root, "a", "x")}, matches)
	})

	t.Run("skip and continue", func(t *testing.T) {
		var skipped []error
		opts := FindOptions{
			SkipUnreadable: true,
			OnSkip:         func(err error) { skipped = append(skipped, err) },
			ReadDir:        denyReadDir(locked),
		}
		matches, found, err := findAll(t, root, "x", opts)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []string{
			filepath.Join(root, "a", "x"),
			filepath.Join(root, "c", "x"),
		}, matches)
		require.Len(t, skipped, 1)

		var pathErr *PathError
		require.True(t, errors.As(skipped[0], &pathErr))
		assert.Equal(t, locked, pathErr.Path)
	})

	t.Run("unreadable root is fatal even when skipping", func(t *testing.T) {
		opts := FindOptions{SkipUnreadable: true, ReadDir: denyReadDir(root)}
		matches, found, err := findAll(t, root, "x", opts)
		assert.ErrorIs(t, err, ErrUnreadable)
		assert.False(t, found)
		assert.Empty(t, matches)
	})
}

func TestFind_NestedUnreadablePermissions(t *testing.T) {
	requireUnreadableDirs(t)

	root := t.TempDir()
	writeTree(t, root, map[string]string{"a/x": "", "b/locked/x": ""})
	locked := filepath.Join(root, "b", "locked")
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	_, found, err := findAll(t, root, "x", FindOptions{})
	assert.True(t, found)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestGrep(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt":    "hello\nworld",
		"many.txt": "foo\nbar foo\nbaz\nFOO\nfoofoo\n",
	})

	tests := []struct {
		name    string
		file    string
		pattern string
		want    []Line
	}{
		{"single match", "a.txt", "hello", []Line{{1, "hello"}}},
		{"no match", "a.txt", "absent", nil},
		{"literal case-sensitive", "many.txt", "foo", []Line{{1, "foo"}, {2, "bar foo"}, {5, "foofoo"}}},
		{"regex characters are literal", "many.txt", "f.o", nil},
		{"empty pattern matches every line", "a.txt", "", []Line{{1, "hello"}, {2, "world"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Line
			err := Grep(filepath.Join(dir, tt.file), tt.pattern, func(l Line) {
				got = append(got, l)
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGrep_LineNumbersSkipDecodeErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("match one\n\xffmatch\nmatch three\n"), 0644))

	var got []Line
	var lineErrs []error
	err := Grep(path, "match", func(l Line) { got = append(got, l) }, func(err error) {
		lineErrs = append(lineErrs, err)
	})
	require.NoError(t, err)

	assert.Equal(t, []Line{{1, "match one"}, {3, "match three"}}, got)
	require.Len(t, lineErrs, 1)
	assert.ErrorIs(t, lineErrs[0], ErrDecode)
}

func TestGrep_MissingFile(t *testing.T) {
	called := false
	err := Grep(filepath.Join(t.TempDir(), "nope"), "x", func(Line) { called = true }, nil)
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.False(t, called)
}
