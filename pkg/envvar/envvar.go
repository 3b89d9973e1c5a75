// Package envvar applies environment variable overrides onto config fields.
// Every function is a no-op when the variable name is empty, the variable is
// unset, or its value does not parse, so config Finalize methods can call
// them unconditionally.
package envvar

import (
	"os"
	"strconv"
	"strings"
)

func lookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	v := os.Getenv(name)
	return v, v != ""
}

// String overrides dst with the value of name.
func String(dst *string, name string) {
	if v, ok := lookup(name); ok {
		*dst = v
	}
}

// Int overrides dst with the integer value of name.
func Int(dst *int, name string) {
	if v, ok := lookup(name); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Bool overrides dst with the boolean value of name.
func Bool(dst *bool, name string) {
	if v, ok := lookup(name); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// List overrides dst with the comma-separated value of name.
// Entries are trimmed and empty entries dropped.
func List(dst *[]string, name string) {
	v, ok := lookup(name)
	if !ok {
		return
	}
	parts := strings.Split(v, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	*dst = items
}
