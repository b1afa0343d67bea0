package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var folder = cases.Fold()

// Fold returns the case-folded form of code used as a lookup key.
// Surrounding whitespace is removed.
func Fold(code string) string {
	return folder.String(strings.TrimSpace(code))
}

// Normalize trims and lowercases a language code.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// IsISO6393 reports whether code is a known three-letter ISO 639 code.
func IsISO6393(code string) bool {
	code = Normalize(code)
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	_, err := xlanguage.ParseBase(code)
	return err == nil
}

// ToISO3 converts a recognized two- or three-letter code to its ISO 639-3 form.
// Unrecognized input is returned normalized but otherwise unchanged.
func ToISO3(code string) string {
	code = Normalize(code)
	if code == "" {
		return ""
	}
	base, err := xlanguage.ParseBase(code)
	if err != nil {
		return code
	}
	if iso3 := base.ISO3(); iso3 != "" {
		return iso3
	}
	return code
}

// DisplayName returns the English language name for code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Unknown"
	}
	base, err := xlanguage.ParseBase(strings.ToLower(code))
	if err != nil {
		return strings.ToUpper(code)
	}
	if name := display.English.Languages().Name(base); name != "" {
		return name
	}
	return strings.ToUpper(code)
}
