package errors

import "unicode"

// ValidateVertexID validates a vertex identifier. IDs are written verbatim
// into SVG element ids and DOT node names:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 256 characters
func ValidateVertexID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "vertex id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "vertex id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "vertex id contains invalid control characters")
		}
	}

	return nil
}
