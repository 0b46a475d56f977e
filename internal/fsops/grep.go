package fsops

import "strings"

// Grep calls emit for every line of the file at path that contains pattern
// as a literal, case-sensitive substring. Lines that fail to read are passed
// to onLineErr and skipped; they still consume a line number.
// Only a failure to open the file is returned.
func Grep(path, pattern string, emit func(Line), onLineErr func(error)) error {
	lr, err := OpenLines(path)
	if err != nil {
		return err
	}
	defer lr.Close()

	for line, lineErr := range lr.All() {
		if lineErr != nil {
			if onLineErr != nil {
				onLineErr(lineErr)
			}
			continue
		}
		if strings.Contains(line.Text, pattern) {
			emit(line)
		}
	}
	return nil
}
