package resume

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxNameLength is the longest accepted full name, in runes.
const MaxNameLength = 255

// emoji lists the pictographic blocks stripped from full names.
var emoji = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1}, // miscellaneous symbols
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1}, // dingbats
	},
	R32: []unicode.Range32{
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
		{Lo: 0x1F700, Hi: 0x1F77F, Stride: 1},
		{Lo: 0x1F780, Hi: 0x1F7FF, Stride: 1},
		{Lo: 0x1F800, Hi: 0x1F8FF, Stride: 1},
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1},
		{Lo: 0x1FA00, Hi: 0x1FA6F, Stride: 1},
		{Lo: 0x1FA70, Hi: 0x1FAFF, Stride: 1},
	},
}

// normalizeName applies the full-name rules. A nil name is missing.
func normalizeName(name *string) (string, error) {
	if name == nil {
		return "", ErrNameRequired
	}
	s := *name
	if s == "" {
		return "", ErrNameEmpty
	}
	if trim(s) == "" {
		return "", ErrNameBlank
	}
	if utf8.RuneCountInString(s) > MaxNameLength {
		return "", ErrNameTooLong
	}
	s = trim(StripEmoji(s))
	if s == "" {
		return "", ErrNameBlank
	}
	return s, nil
}

// StripEmoji removes emoji code points from s.
func StripEmoji(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(emoji, r) {
			return -1
		}
		return r
	}, s)
}

// ValidateName reports the error the name would be rejected with, if any.
func ValidateName(name string) error {
	_, err := normalizeName(&name)
	return err
}

// isBlank is the permissive contact check: blank values are dropped.
func isBlank(s string) bool {
	return trim(s) == ""
}

// trim strips leading and trailing ASCII control characters and spaces.
// Unicode spaces such as U+00A0 are content.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}
