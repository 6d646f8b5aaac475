package config

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxFileNameLength is the limit in bytes most file systems put on a single
// path element. Artifact suffixes ("_part12.png") must still fit.
const MaxFileNameLength = 200

// CleanFileName makes single path element out of report title or template
// output: drops separators and characters the platform does not allow, control
// characters, leading dots and trailing dots or spaces, shortens it on rune
// boundary.
func CleanFileName(in string) string {
	out := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || reservedRune(r) {
			return -1
		}
		return r
	}, in)
	out = strings.TrimLeft(out, ".")
	if len(out) > MaxFileNameLength {
		cut := MaxFileNameLength
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = out[:cut]
	}
	out = strings.TrimRight(out, ". ")
	if len(out) == 0 {
		return "_bad_file_name_"
	}
	if reservedName(out) {
		out = "_" + out
	}
	return out
}
