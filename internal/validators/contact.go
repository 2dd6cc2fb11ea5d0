package validators

import (
	"net/mail"
	"strings"
	"unicode"
)

// NormalizePhone keeps digits only: "(514) 277-3585" -> "5142773585".
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhone accepts North American numbers with or without the leading 1.
func IsPhone(digits string) bool {
	return len(digits) == 10 || (len(digits) == 11 && digits[0] == '1')
}

// NormalizeEmail lowercases and trims; ok is false for malformed input.
func NormalizeEmail(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", false
	}
	at := strings.LastIndex(s, "@")
	if at < 1 || !strings.Contains(s[at+1:], ".") {
		return "", false
	}
	return s, true
}
