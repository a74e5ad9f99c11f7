package filestore

import (
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/ryanuber/go-glob"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TimestampLayout is the layout of the prefix of uploaded file names.
const TimestampLayout = "20060102150405"

// fallbackName is used when nothing of the original name survives sanitizing.
const fallbackName = "evidence"

// windowsDeviceNames cannot be used as file names on Windows.
var windowsDeviceNames = []string{
	"CON", "AUX", "COM1", "COM2", "COM3", "COM4", "LPT1", "LPT2", "LPT3", "PRN", "NUL",
}

// SanitizeFilename returns a version of name that is safe to store on disk.
//
// Path separators become spaces, characters are folded to ASCII, everything
// but letters, digits, '_', '.' and '-' is dropped and whitespace is joined
// with underscores. Leading and trailing dots and underscores are removed so
// the result can never be a hidden file or a relative path.
func SanitizeFilename(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), name)
	if err != nil {
		folded = name
	}

	folded = strings.NewReplacer("/", " ", `\`, " ").Replace(folded)

	clean := strings.Map(func(r rune) rune {
		switch {
		case r > unicode.MaxASCII:
			return -1
		case unicode.IsSpace(r):
			return ' '
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '.', r == '-':
			return r
		}
		return -1
	}, folded)

	clean = strings.Join(strings.Fields(clean), "_")
	clean = strings.Trim(clean, "._")

	base := strings.ToUpper(strings.SplitN(clean, ".", 2)[0])
	for _, device := range windowsDeviceNames {
		if base == device {
			clean = "_" + clean
			break
		}
	}

	return clean
}

// Ext returns the lower case extension of an uploaded file name, including the dot.
func Ext(name string) string {
	return strings.ToLower(path.Ext(strings.ReplaceAll(name, `\`, "/")))
}

// EvidenceName returns the name an uploaded file is stored under.
//
// Stem and extension are sanitized separately, so the extension survives
// even if nothing of the stem does.
func EvidenceName(original string, now time.Time) string {
	original = strings.ReplaceAll(original, `\`, "/")
	ext := path.Ext(original)

	name := SanitizeFilename(strings.TrimSuffix(original, ext))
	if name == "" {
		name = fallbackName
	}

	if ext = SanitizeFilename(ext); ext != "" {
		name += "." + ext
	}

	return now.Format(TimestampLayout) + "_" + name
}

// MatchesAny reports whether name matches at least one of the glob patterns.
// Matching is case insensitive.
func MatchesAny(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if glob.Glob(strings.ToLower(p), lower) {
			return true
		}
	}

	return false
}
