package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds composition and layer identifiers.
const maxIDLength = 256

// idRegex matches identifiers safe to use in document references and cache keys.
var idRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateID validates a composition or layer identifier.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or whitespace
//   - Must start with a letter or digit
//   - Maximum length of 256 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidProject, "identifier cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidProject, "identifier too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidProject, "identifier contains invalid control characters")
		}
	}
	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidProject, "invalid identifier: %q", id)
	}
	return nil
}

// ValidateLayerName validates a display name. Names may contain spaces and
// punctuation but no control characters.
func ValidateLayerName(name string) error {
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidProject, "layer name %q contains control characters", name)
		}
	}
	return nil
}

// projectExtensions are the document formats accepted by the project reader.
var projectExtensions = map[string]bool{
	".json": true,
	".toml": true,
}

// ValidateProjectPath validates a project document path.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be .json or .toml
func ValidateProjectPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "project path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "project path contains invalid characters")
		}
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !projectExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported project format %q (must be .json or .toml)", ext)
	}
	return nil
}
