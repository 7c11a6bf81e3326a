package logger

import "strings"

// RedactEmail маскирует адрес для логов:
// "john.doe@example.com" -> "jo***@example.com", "ab@example.com" -> "***@example.com".
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}
	name := parts[0]
	if len(name) > 2 {
		return name[:2] + "***@" + parts[1]
	}
	return "***@" + parts[1]
}
