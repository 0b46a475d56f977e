package fsops

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"os"
	"strings"
	"unicode/utf8"
)

var errIsDirectory = errors.New("is a directory")

// Line is one physical line of a text file.
type Line struct {
	Number int // 1-based
	Text   string
}

// LineReader yields the lines of an open text file.
// It must be closed by the caller.
type LineReader struct {
	path string
	file *os.File
	r    *bufio.Reader
}

// OpenLines opens path for line-by-line reading.
func OpenLines(path string) (*LineReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newPathError("open", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, newPathError("stat", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, &PathError{Op: "open", Path: path, Kind: ErrUnreadable, Err: errIsDirectory}
	}

	return &LineReader{path: path, file: f, r: bufio.NewReader(f)}, nil
}

// All returns the remaining lines in order, terminators stripped.
//
// A line that is not valid UTF-8 yields a zero Line carrying only its
// number together with an ErrDecode error, and iteration continues.
// A read failure yields an ErrUnreadable error and ends the sequence.
func (lr *LineReader) All() iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		n := 0
		for {
			s, err := lr.r.ReadString('\n')
			if len(s) > 0 {
				n++
				s = strings.TrimSuffix(s, "\n")
				s = strings.TrimSuffix(s, "\r")
				if !utf8.ValidString(s) {
					decodeErr := &PathError{Op: "read", Path: lr.path, Kind: ErrDecode}
					if !yield(Line{Number: n}, decodeErr) {
						return
					}
				} else if !yield(Line{Number: n, Text: s}, nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Line{Number: n + 1}, newPathError("read", lr.path, err))
				return
			}
		}
	}
}

// Close releases the underlying file handle.
func (lr *LineReader) Close() error {
	return lr.file.Close()
}
