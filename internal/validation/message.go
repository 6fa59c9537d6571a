package validation

import "strings"

const (
	entrySeparator = "|"
	fieldSeparator = ":"
)

// Join renders field errors as "field: message" entries separated by "|".
func Join(errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+fieldSeparator+" "+e.Message)
	}
	return strings.Join(parts, entrySeparator)
}

// ParseMessage inverts Join. Entries without a field separator are skipped;
// repeated fields keep every message in order. A message that carries no
// field entries yields an empty map.
func ParseMessage(message string) map[string][]string {
	out := make(map[string][]string)
	for _, part := range strings.Split(message, entrySeparator) {
		field, msg, ok := strings.Cut(part, fieldSeparator)
		if !ok {
			continue
		}
		field = strings.TrimSpace(field)
		out[field] = append(out[field], strings.TrimSpace(msg))
	}
	return out
}
