package errors

import "unicode"

// maxPathLen bounds user-supplied paths.
const maxPathLen = 4096

// ValidatePath rejects paths that are empty, longer than 4096 bytes or
// contain control characters. It runs before a graph file is opened or a
// result is written.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case len(path) > maxPathLen:
		return New(ErrCodeInvalidPath, "path too long (max %d bytes)", maxPathLen)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains control character %U", r)
		}
	}
	return nil
}
