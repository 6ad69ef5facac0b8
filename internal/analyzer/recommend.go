package analyzer

import (
	"fmt"
)

// Recommend builds the refactoring advisory for a clone. The advisory is a
// pure function of the clone tier, parameterized with the unit identifier
// and line numbers.
func Recommend(clone *LineClone) string {
	switch clone.Type {
	case Type1Clone:
		return fmt.Sprintf("Remove the exact duplicate of line %d at line %d in %s",
			clone.LineA, clone.LineB, clone.UnitID)
	case Type2Clone:
		return fmt.Sprintf("Rename to avoid redundancy between lines %d and %d in %s",
			clone.LineA, clone.LineB, clone.UnitID)
	case Type3Clone:
		return fmt.Sprintf("Consolidate the similar logic at lines %d and %d in %s",
			clone.LineA, clone.LineB, clone.UnitID)
	default:
		return ""
	}
}
