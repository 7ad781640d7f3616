package hints

import (
	"strings"
)

// isExported reports whether name is an exported Go symbol
// (that is, whether it begins with an upper-case letter).
func isExported(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

// parseAnnotations extracts annotation lines (those starting with @) from documentation
func parseAnnotations(doc string) []string {
	if doc == "" {
		return nil
	}

	var annotations []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "@") {
			annotations = append(annotations, line)
		}
	}
	return annotations
}
