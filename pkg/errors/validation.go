package errors

import (
	"regexp"
	"unicode"
)

// Limits on presentation inputs accepted from files and the HTTP API.
const (
	MaxGenerators     = 64
	MaxRelators       = 256
	MaxWordLength     = 4096
	MaxGeneratorName  = 32
	MaxEnumerationCap = 64

	// MaxExpandedLength bounds the letters of a parsed word after powers
	// and commutators are multiplied out.
	MaxExpandedLength = 1 << 20
)

// generatorNameRegex matches the letter names the word parser accepts.
var generatorNameRegex = regexp.MustCompile(`^[\p{L}\p{N}_]+$`)

// ValidateGeneratorName validates a generator name for use in an alphabet.
//
// The validation rules mirror what the word parser can read back:
//   - No empty names
//   - No control characters
//   - Only letters, digits and underscores
//   - Maximum length of 32 characters
func ValidateGeneratorName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidAlphabet, "generator name cannot be empty")
	}

	if len(name) > MaxGeneratorName {
		return New(ErrCodeInvalidAlphabet, "generator name too long (max %d characters)", MaxGeneratorName)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidAlphabet, "generator name contains invalid control characters")
		}
	}

	if !generatorNameRegex.MatchString(name) {
		return New(ErrCodeInvalidAlphabet, "invalid generator name: %q", name)
	}

	return nil
}

// ValidateGeneratorNames validates a full generator list, including uniqueness.
func ValidateGeneratorNames(names []string) error {
	if len(names) > MaxGenerators {
		return New(ErrCodeInvalidAlphabet, "too many generators (max %d)", MaxGenerators)
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if err := ValidateGeneratorName(name); err != nil {
			return err
		}
		if seen[name] {
			return New(ErrCodeInvalidAlphabet, "duplicate generator name: %q", name)
		}
		seen[name] = true
	}
	return nil
}

// ValidateRelators checks the number and raw length of relator strings.
func ValidateRelators(relators []string) error {
	if len(relators) > MaxRelators {
		return New(ErrCodeInvalidPresentation, "too many relators (max %d)", MaxRelators)
	}
	for _, r := range relators {
		if len(r) > MaxWordLength {
			return New(ErrCodeInvalidPresentation, "relator too long (max %d characters)", MaxWordLength)
		}
	}
	return nil
}

// ValidateMaxSize checks the index bound of a subgroup enumeration.
func ValidateMaxSize(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "maximal index must be positive, got %d", n)
	}
	if n > MaxEnumerationCap {
		return New(ErrCodeInvalidInput, "maximal index too large (max %d)", MaxEnumerationCap)
	}
	return nil
}
