package analyzer

import (
	"strings"
)

// commentPrefixes mark single-line comments when they open a line.
var commentPrefixes = []string{"#", "//"}

// importPrefixes mark import/include-style statements when they open a line.
var importPrefixes = []string{"import ", "from ", "#include", "using ", "require "}

// Normalize strips comment lines, import-like lines and blank lines from a
// code fragment, joining the surviving lines with a single newline and
// preserving their relative order.
//
// Normalize is pure and total, and idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	var kept []string

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isCommentLine(trimmed) || isImportLine(trimmed) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

// IsComparable reports whether a fragment still carries content after
// normalization. Pairs with a non-comparable side carry no similarity
// score and are excluded from detection output entirely.
func IsComparable(text string) bool {
	return strings.TrimSpace(Normalize(text)) != ""
}

func isCommentLine(trimmed string) bool {
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

func isImportLine(trimmed string) bool {
	for _, prefix := range importPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	// A bare trailing statement like "import os" is caught above; a lone
	// keyword still counts as import-like.
	return trimmed == "import" || trimmed == "from"
}
