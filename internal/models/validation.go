package models

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Image filenames: lowercase letters, digits and hyphens, one known extension
var imageFilenameRegex = regexp.MustCompile(`^[a-z0-9-]+\.(png|jpg|jpeg|svg)$`)

var imageContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".svg":  "image/svg+xml",
}

// IsValidImageFilename reports whether name may be requested from an image bucket
func IsValidImageFilename(name string) bool {
	return imageFilenameRegex.MatchString(name)
}

// ImageContentType maps an image filename to its content type by extension
func ImageContentType(name string) string {
	if ct, ok := imageContentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return DefaultContentType
}

// ParseFlag interprets a boolean query parameter. true, 1 and yes are true;
// anything else, including an empty value, is false.
func ParseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// ParseLimit parses the order-history limit; an empty value yields the default
func ParseLimit(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultOrderLimit, nil
	}

	limit, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ValidationError{Field: "limit", Message: "limit must be an integer", Value: value}
	}
	if limit < 1 || limit > MaxOrderLimit {
		return 0, &ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("limit must be between 1 and %d", MaxOrderLimit),
			Value:   limit,
		}
	}
	return limit, nil
}

// SanitizeString trims whitespace and removes control characters
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// ValidateRequired validates that a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", fieldName),
			Value:   value,
		}
	}
	return nil
}
