package errors

import (
	"strings"
	"unicode"
)

// ValidateItemID validates a layout item identifier.
//
// Item ids travel through JSON payloads, cache keys, and file names for
// rendered previews, so the rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItem, "item id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidItem, "item id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItem, "item id contains control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidItem, "item id contains invalid sequence %q", pattern)
		}
	}
	return nil
}

// ValidateLayoutName validates the name a layout set is stored under.
// Names become file basenames for the file store and document keys for the
// Mongo store, so the same traversal rules apply as for item ids.
func ValidateLayoutName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "layout name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidName, "layout name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "layout name contains control characters")
		}
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "layout name cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "layout name cannot contain traversal sequences")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidName, "layout name cannot be a hidden file")
	}
	return nil
}
