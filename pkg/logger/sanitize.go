package logger

import "strings"

// Query parameters whose presence makes the whole query string unloggable.
var sensitiveParams = []string{"password", "token", "secret", "auth", "email"}

// SanitizedEmail masks an email address for logging, keeping just enough to
// correlate entries: "chidi@example.com" becomes "c****@*******.com".
func SanitizedEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "[invalid-email]"
	}

	local, domain := email[:at], email[at+1:]
	if len(local) > 1 {
		local = local[:1] + strings.Repeat("*", len(local)-1)
	}

	labels := strings.Split(domain, ".")
	for i := 0; i < len(labels)-1; i++ {
		labels[i] = strings.Repeat("*", len(labels[i]))
	}

	return local + "@" + strings.Join(labels, ".")
}

// SanitizeQueryString reports whether a raw query string carries a sensitive
// parameter and must be redacted from request logs entirely.
func SanitizeQueryString(rawQuery string) bool {
	query := strings.ToLower(rawQuery)
	for _, param := range sensitiveParams {
		if strings.Contains(query, param+"=") {
			return true
		}
	}
	return false
}
