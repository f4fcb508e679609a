package command

import "strings"

// Remainder strips the command prefix from the message text.
func Remainder(text, prefix string) string {
	if len(text) < len(prefix) {
		return ""
	}

	return strings.TrimSpace(text[len(prefix):])
}

// SplitArgs parses the text after the prefix into fields: split on the
// semicolon delimiter, surrounding whitespace trimmed, empty fields dropped.
func SplitArgs(text, prefix string) []string {
	fields := strings.Split(Remainder(text, prefix), ";")

	args := make([]string, 0, len(fields))
	for _, field := range fields {
		if field = strings.TrimSpace(field); field != "" {
			args = append(args, field)
		}
	}

	return args
}
