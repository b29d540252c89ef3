package storage

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)

var windowsDeviceNames = map[string]bool{
	"CON": true, "AUX": true, "COM1": true, "COM2": true, "COM3": true,
	"COM4": true, "LPT1": true, "LPT2": true, "LPT3": true, "PRN": true,
	"NUL": true,
}

// SecureFilename reduces a client-supplied name to a flat, ASCII-only file
// name that is safe to join onto the upload directory. Directory components
// are folded into the name, so "../../etc/passwd" becomes "etc_passwd".
// The result may be empty.
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)
	name = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		if r == '/' || r == '\\' {
			return ' '
		}
		return r
	}, name)

	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name != "" {
		base := strings.ToUpper(strings.SplitN(name, ".", 2)[0])
		if windowsDeviceNames[base] {
			name = "_" + name
		}
	}
	return name
}
