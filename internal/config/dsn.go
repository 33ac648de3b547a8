package config

import (
	"slices"
	"strings"
)

// keyword order of the generated lib/pq string
var pqKeywords = []string{"host", "port", "dbname", "user", "password", "sslmode", "connect_timeout", "application_name"}

var adoKeywords = map[string]string{
	"host":            "host",
	"server":          "host",
	"port":            "port",
	"database":        "dbname",
	"initialcatalog":  "dbname",
	"username":        "user",
	"user":            "user",
	"userid":          "user",
	"uid":             "user",
	"password":        "password",
	"pwd":             "password",
	"sslmode":         "sslmode",
	"timeout":         "connect_timeout",
	"applicationname": "application_name",
}

var sslModes = map[string]string{
	"disable":    "disable",
	"allow":      "disable",
	"prefer":     "disable",
	"require":    "require",
	"verifyca":   "verify-ca",
	"verifyfull": "verify-full",
}

// NormalizeDSN converts semicolon separated Key=Value connection strings
// (Host=...;Database=...;Username=...) to lib/pq keyword/value form.
// URLs and strings that are already in lib/pq form are returned unchanged.
// Unrecognized keys are dropped. sslmode defaults to disable.
func NormalizeDSN(raw string) string {
	raw = strings.TrimSpace(raw)
	if !isSemicolonStyle(raw) {
		return raw
	}

	values := map[string]string{}
	for _, part := range strings.Split(raw, ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		kw, known := adoKeywords[squash(key)]
		if !known {
			continue
		}
		value = strings.TrimSpace(value)
		if kw == "sslmode" {
			mode, ok := sslModes[squash(value)]
			if !ok {
				continue
			}
			value = mode
		}
		values[kw] = value
	}
	if _, ok := values["sslmode"]; !ok {
		values["sslmode"] = "disable"
	}

	parts := make([]string, 0, len(values))
	for _, kw := range pqKeywords {
		if v, ok := values[kw]; ok {
			parts = append(parts, kw+"="+quote(v))
		}
	}
	return strings.Join(parts, " ")
}

// isSemicolonStyle recognizes Key=Value;... strings by their separator or, for
// a single pair, by a key that is a known alias but not a lib/pq keyword
// (Host=db, User Id=app).
func isSemicolonStyle(raw string) bool {
	if strings.Contains(raw, "://") {
		return false
	}
	if strings.Contains(raw, ";") {
		return true
	}
	key, _, ok := strings.Cut(raw, "=")
	if !ok {
		return false
	}
	key = strings.TrimSpace(key)
	if _, known := adoKeywords[squash(key)]; !known {
		return false
	}
	return !slices.Contains(pqKeywords, key)
}

func squash(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

func quote(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
