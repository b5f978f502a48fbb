package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateProbability checks that p is a finite number in [0, 1].
func ValidateProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return New(ErrCodeInvalidArgument, "probability must be within [0, 1], got %v", p)
	}
	return nil
}

// ValidateMapPath validates the path of a Tiled map file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Extension must be .tmx (case-insensitive)
func ValidateMapPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "map path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "map path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "map path contains invalid characters")
		}
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".tmx" {
		return New(ErrCodeInvalidPath, "map path must end in .tmx, got %q", filepath.Base(path))
	}

	return nil
}
