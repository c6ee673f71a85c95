package respond

import (
	"regexp"
)

var (
	// Credentials embedded in DSN-style URLs.
	dsnPasswordPattern = regexp.MustCompile(`://([^:/]+):([^@]+)@`)

	// Bearer tokens leaked through wrapped transport errors.
	bearerTokenPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._~+/=-]+`)
)

// SanitizeError returns the error message with embedded credentials masked,
// keeping logs safe to ship to shared sinks.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = bearerTokenPattern.ReplaceAllString(msg, "Bearer ****")
	return msg
}
