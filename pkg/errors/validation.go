package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxNodeIDLength bounds node identifiers accepted from map files.
const MaxNodeIDLength = 256

// ValidateNodeID validates a node identifier read from a map file.
//
// The rules are intentionally conservative because IDs end up in DOT
// output, cache keys and terminal output:
//   - No empty IDs
//   - No leading or trailing whitespace
//   - No control characters or null bytes
//   - Maximum length of [MaxNodeIDLength] bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node ID cannot be empty")
	}

	if len(id) > MaxNodeIDLength {
		return New(ErrCodeInvalidNodeID, "node ID too long (max %d characters)", MaxNodeIDLength)
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidNodeID, "node ID %q has surrounding whitespace", id)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "node ID %q contains control characters", id)
		}
	}

	return nil
}

// ValidatePosition validates a stored coordinate. Coordinates are
// normalized to [0,100]; NaN and infinities are rejected.
func ValidatePosition(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidPosition, "coordinate must be a finite number")
	}
	if v < 0 || v > 100 {
		return New(ErrCodeInvalidPosition, "coordinate %v out of range [0,100]", v)
	}
	return nil
}

// ValidateMapFilename validates the path of a map file. The file must use
// one of the supported extensions: .json, .yaml or .yml.
func ValidateMapFilename(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return nil
	default:
		return New(ErrCodeInvalidFormat, "unsupported map file %q (want .json, .yaml or .yml)", filepath.Base(path))
	}
}

// ValidatePath validates a local file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
