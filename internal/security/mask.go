package security

import "strings"

var sensitiveFields = []string{
	"password", "api_key", "secret", "token", "authorization", "email", "phone",
}

// MaskSensitive copies a log-field map with contact and credential
// values reduced to a two-character prefix/suffix.
func MaskSensitive(data map[string]interface{}) map[string]interface{} {
	masked := make(map[string]interface{}, len(data))
	for key, value := range data {
		masked[key] = value
		if value == nil {
			continue
		}
		lower := strings.ToLower(key)
		for _, field := range sensitiveFields {
			if strings.Contains(lower, field) {
				masked[key] = maskValue(value)
				break
			}
		}
	}
	return masked
}

func maskValue(value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return "***"
	}
	// Empty values carry nothing to hide; leave them readable.
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "***"
	}
	return s[:2] + "***" + s[len(s)-2:]
}
