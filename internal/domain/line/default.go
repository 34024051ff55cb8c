package line

import "github.com/google/uuid"

// DefaultIndex returns the position of the first line marked default, or -1.
func DefaultIndex(lines []Line) int {
	for i := range lines {
		if lines[i].IsDefault {
			return i
		}
	}
	return -1
}

// ClearDefaults unsets the default flag on every line except the one with id keep.
// Pass uuid.Nil to clear all of them.
func ClearDefaults(lines []Line, keep uuid.UUID) {
	for i := range lines {
		if keep != uuid.Nil && lines[i].ID == keep {
			continue
		}
		lines[i].IsDefault = false
	}
}

// EnsureDefault marks the first line default when no line is.
func EnsureDefault(lines []Line) {
	if len(lines) == 0 {
		return
	}
	if DefaultIndex(lines) == -1 {
		lines[0].IsDefault = true
	}
}

// Normalize leaves exactly one default: the first one already marked,
// otherwise the first line.
func Normalize(lines []Line) {
	if len(lines) == 0 {
		return
	}
	keep := DefaultIndex(lines)
	if keep == -1 {
		keep = 0
	}
	for i := range lines {
		lines[i].IsDefault = i == keep
	}
}

// CountDefaults reports how many lines are marked default.
func CountDefaults(lines []Line) int {
	n := 0
	for i := range lines {
		if lines[i].IsDefault {
			n++
		}
	}
	return n
}
