package utils

import (
	"regexp"
	"strings"
)

// Local part, "@", domain containing a dot. Deliberately loose; real
// deliverability is the SMTP server's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether the address looks like an email after trimming.
func ValidEmail(address string) bool {
	return emailPattern.MatchString(strings.TrimSpace(address))
}
