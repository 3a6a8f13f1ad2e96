package resume

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// minMaskedDigits is the shortest digit run treated as sensitive.
	minMaskedDigits = 6
	// keptDigits is how many trailing digits of a masked run stay visible.
	keptDigits = 4
)

var (
	emailPattern  = regexp.MustCompile(`[\p{L}\p{N}._%+\-*]+@[\p{L}\p{N}.\-]+\.\p{L}{2,}`)
	digitsPattern = regexp.MustCompile(fmt.Sprintf(`\d{%d,}`, minMaskedDigits))
)

// Mask obscures sensitive substrings of free text such as a location: e-mail
// local parts collapse to their first character plus "***", and digit runs of
// six or more keep only their last four digits. Mask never fails and
// Mask(Mask(s)) == Mask(s).
func Mask(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = emailPattern.ReplaceAllStringFunc(s, func(m string) string {
		at := strings.LastIndexByte(m, '@')
		local, domain := m[:at], m[at+1:]
		first := []rune(local)[0]
		return string(first) + "***@" + domain
	})
	return digitsPattern.ReplaceAllStringFunc(s, func(m string) string {
		return strings.Repeat("*", len(m)-keptDigits) + m[len(m)-keptDigits:]
	})
}
