package marshal

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/cvbridge/errors"
)

// CString checks that s can cross the boundary as a C string.
func CString(s string) error {
	if !representable(s) {
		return errors.InvalidString(s)
	}
	return nil
}

// Path checks that path can cross the boundary as a file path.
func Path(path string) error {
	if path == "" || !representable(path) {
		return errors.InvalidPath(path)
	}
	return nil
}

// ASCII checks that s is a C string made of ASCII characters only.
func ASCII(s string) error {
	if err := CString(s); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return errors.UnicodeChars(s)
		}
	}
	return nil
}

func representable(s string) bool {
	return utf8.ValidString(s) && strings.IndexByte(s, 0) < 0
}

// File checks that path can be passed to the library and names an existing
// file.
func File(path string) error {
	if err := Path(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.EntryNotFound(path)
		}
		return errors.Wrap(errors.PhaseLoad, errors.KindInvalidPath, err, "stat "+path)
	}
	return nil
}
