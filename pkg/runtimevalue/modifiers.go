package runtimevalue

import "strings"

const (
	modifierDefault       = "default"
	modifierAllowedValues = "allowedValues"
)

// parseModifiers reads the `.name(args)` chain that may follow the runtime
// input sentinel, e.g. `<+input>.default(main).allowedValues(main,dev)`.
func parseModifiers(raw, chain string, value *Value) error {
	rest := chain
	for rest != "" {
		if rest[0] != '.' {
			return &MalformedRuntimeInputError{Raw: raw, Reason: "expected '.' before modifier"}
		}
		rest = rest[1:]

		open := strings.IndexByte(rest, '(')
		if open <= 0 {
			return &MalformedRuntimeInputError{Raw: raw, Reason: "modifier is missing its argument list"}
		}
		name := rest[:open]

		closing := matchingParen(rest, open)
		if closing < 0 {
			return &MalformedRuntimeInputError{Raw: raw, Reason: "unterminated modifier " + name}
		}
		args := rest[open+1 : closing]
		rest = rest[closing+1:]

		switch name {
		case modifierDefault:
			value.Default = strings.TrimSpace(args)
			value.HasDefault = true
		case modifierAllowedValues:
			value.AllowedValues = splitArgs(args)
			if len(value.AllowedValues) == 0 {
				return &MalformedRuntimeInputError{Raw: raw, Reason: "allowedValues requires at least one value"}
			}
		default:
			return &MalformedRuntimeInputError{Raw: raw, Reason: "unknown modifier " + name}
		}
	}
	return nil
}

func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func splitArgs(args string) []string {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	parts := strings.Split(args, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
