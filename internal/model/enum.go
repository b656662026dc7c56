package model

import "strings"

// parseEnum matches s against the allowed values, ignoring surrounding
// whitespace and case. kind names the enum in the error.
func parseEnum[T ~string](kind, s string, all []T) (T, error) {
	trimmed := strings.TrimSpace(s)
	for _, v := range all {
		if strings.EqualFold(string(v), trimmed) {
			return v, nil
		}
	}
	var zero T
	return zero, &ParseError{Field: kind, Value: s, Msg: "unknown " + kind + ": " + s}
}

// parseOptional is parseEnum for optional fields: empty input yields def.
func parseOptional[T ~string](kind, s string, all []T, def T) (T, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return parseEnum(kind, s, all)
}
