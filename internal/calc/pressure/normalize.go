package pressure

import "strings"

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, " pressure")
	return strings.TrimSpace(s)
}
