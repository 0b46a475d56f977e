package command

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/quocvuong92/fs-cli/internal/display"
	"github.com/quocvuong92/fs-cli/internal/fsops"
	"github.com/quocvuong92/fs-cli/internal/logging"
)

// Options tunes individual operations.
type Options struct {
	// SkipUnreadable makes find continue past unreadable subdirectories.
	SkipUnreadable bool
	// Render makes cat render the file as Markdown.
	Render bool
	// WordWrap is the render wrap column.
	WordWrap int
}

// Dispatcher runs commands and reports their output and errors.
type Dispatcher struct {
	printer *display.Printer
	log     *logging.FieldLogger
	opts    Options

	// readDir overrides directory listing for find; nil means os.ReadDir.
	readDir func(string) ([]os.DirEntry, error)
}

// NewDispatcher creates a Dispatcher. A nil log discards diagnostics.
func NewDispatcher(printer *display.Printer, log *logging.FieldLogger, opts Options) *Dispatcher {
	if log == nil {
		log = logging.Discard().WithFields(nil)
	}
	return &Dispatcher{printer: printer, log: log, opts: opts}
}

// Dispatch runs cmd and returns how many errors were reported. Errors are
// written through the printer and never abort the process.
func (d *Dispatcher) Dispatch(cmd Command) int {
	log := d.log.WithFields(logging.Fields{"command": cmd.Name()})
	start := time.Now()

	var reported int
	switch c := cmd.(type) {
	case Echo:
		d.printer.Line(c.Text)
	case Cat:
		reported = d.cat(c, log)
	case List:
		reported = d.list(c, log)
	case Find:
		reported = d.find(c, log)
	case Grep:
		reported = d.grep(c, log)
	default:
		d.printer.Error(fmt.Errorf("unsupported command %T", cmd))
		return 1
	}

	log.Debug("command finished", logging.Fields{
		"errors":   reported,
		"duration": time.Since(start).String(),
	})
	return reported
}

func (d *Dispatcher) cat(c Cat, log *logging.FieldLogger) int {
	lr, err := fsops.OpenLines(c.Path)
	if err != nil {
		log.Debug("open failed", logging.Fields{"path": c.Path})
		d.printer.ErrorReading("file", err)
		return 1
	}
	defer lr.Close()

	reported := 0
	var doc strings.Builder
	for line, lineErr := range lr.All() {
		if lineErr != nil {
			d.printer.ErrorReading(fmt.Sprintf("line %d", line.Number), lineErr)
			reported++
			continue
		}
		if d.opts.Render {
			doc.WriteString(line.Text)
			doc.WriteByte('\n')
			continue
		}
		d.printer.Line(line.Text)
	}

	if d.opts.Render {
		rendered, err := d.printer.RenderMarkdown(doc.String(), d.opts.WordWrap)
		if err != nil {
			d.printer.Error(err)
			return reported + 1
		}
		d.printer.Text(rendered)
	}
	return reported
}

func (d *Dispatcher) list(c List, log *logging.FieldLogger) int {
	listing, err := fsops.ListDirectory(c.Path)
	if err != nil {
		d.printer.ErrorReading("directory", err)
		return 1
	}

	for _, e := range listing.Entries {
		d.printer.Entry(e)
	}
	for _, entryErr := range listing.Errors {
		log.Warn("entry skipped", logging.Fields{"path": c.Path, "error": entryErr.Error()})
		d.printer.ErrorReading("entry", entryErr)
	}

	log.Debug("listed directory", logging.Fields{
		"path":    c.Path,
		"entries": len(listing.Entries),
		"skipped": len(listing.Errors),
	})
	return len(listing.Errors)
}

func (d *Dispatcher) find(c Find, log *logging.FieldLogger) int {
	reported := 0
	opts := fsops.FindOptions{
		SkipUnreadable: d.opts.SkipUnreadable,
		OnSkip: func(err error) {
			log.Warn("directory skipped", logging.Fields{"root": c.Root, "error": err.Error()})
			d.printer.ErrorReading("directory", err)
			reported++
		},
		ReadDir: d.readDir,
	}

	matches := 0
	found, err := fsops.Find(c.Root, c.Target, opts, func(path string) {
		matches++
		d.printer.Line(path)
	})
	if err != nil {
		log.Error("walk aborted", err, logging.Fields{"root": c.Root, "matches": matches})
		d.printer.Error(err)
		reported++
	}
	if !found {
		d.printer.NoMatch(c.Target)
	}
	return reported
}

func (d *Dispatcher) grep(c Grep, log *logging.FieldLogger) int {
	reported := 0
	matches := 0
	err := fsops.Grep(c.Path, c.Pattern,
		func(l fsops.Line) {
			matches++
			d.printer.Match(l)
		},
		func(err error) {
			d.printer.ErrorReading("line", err)
			reported++
		},
	)
	if err != nil {
		d.printer.ErrorReading("file", err)
		return reported + 1
	}

	log.Debug("search complete", logging.Fields{"path": c.Path, "matches": matches})
	return reported
}
