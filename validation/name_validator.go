// Package validation checks medication names received over HTTP before they
// are forwarded to the upstream lookup.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/giygas/medscape-interactions/interfaces"
)

const (
	MinNameLength  = 2
	MaxNameLength  = 60
	MaxNameWords   = 6
	MaxMedications = 10
)

// Pre-compiled at package initialization and reused for all validations
var (
	// Letters, digits, spaces and the punctuation found in drug names
	nameRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+'/]+$`)

	// Substring checks are cheaper than a regex for these
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"eval(", "expression(", "url(", "@import",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"--", "/*", "*/", "exec(",
		// Command injection patterns
		"; ", "| ", "& ", "`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
	}
)

// Compile-time check to ensure NameValidatorImpl implements NameValidator
var _ interfaces.NameValidator = (*NameValidatorImpl)(nil)

// NameValidatorImpl implements the interfaces.NameValidator interface
type NameValidatorImpl struct{}

// NewNameValidator creates a new medication name validator
func NewNameValidator() *NameValidatorImpl {
	return &NameValidatorImpl{}
}

// ValidateMedicationName validates a single medication name
func (v *NameValidatorImpl) ValidateMedicationName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("medication name cannot be empty")
	}

	if len(name) < MinNameLength {
		return fmt.Errorf("medication name too short: minimum %d characters", MinNameLength)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("medication name too long: maximum %d characters", MaxNameLength)
	}

	if len(strings.Fields(name)) > MaxNameWords {
		return fmt.Errorf("medication name too complex: maximum %d words allowed", MaxNameWords)
	}

	lowerName := strings.ToLower(name)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerName, pattern) {
			return fmt.Errorf("medication name contains potentially dangerous content")
		}
	}

	if !nameRegex.MatchString(name) {
		return fmt.Errorf("medication name contains invalid characters. Only letters, numbers, spaces, hyphens, apostrophes, periods, slashes and plus sign are allowed")
	}

	if hasExcessiveRepetition(name) {
		return fmt.Errorf("medication name contains excessive character repetition")
	}

	return nil
}

// ParseMedicationList splits a comma separated list and validates every name.
// Blank entries are dropped; duplicates are kept.
func (v *NameValidatorImpl) ParseMedicationList(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("medications parameter is required")
	}

	var names []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if err := v.ValidateMedicationName(name); err != nil {
			return nil, fmt.Errorf("invalid medication %q: %w", name, err)
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("medications parameter is required")
	}

	if len(names) > MaxMedications {
		return nil, fmt.Errorf("too many medications: maximum %d allowed", MaxMedications)
	}

	return names, nil
}

// hasExcessiveRepetition reports the same character repeated more than 10 times in a row
func hasExcessiveRepetition(input string) bool {
	run := 1
	for i := 1; i < len(input); i++ {
		if input[i] == input[i-1] {
			run++
			if run > 10 {
				return true
			}
			continue
		}
		run = 1
	}
	return false
}
