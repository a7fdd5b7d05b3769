// Package validation checks user supplied search input before it reaches upstream
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/giygas/lactancia-api/interfaces"
)

// ErrInvalidInput wraps every validation failure
var ErrInvalidInput = errors.New("invalid input")

const (
	maxQueryLength = 60
	maxQueryWords  = 6
	maxTermIDLen   = 10
)

var (
	// letters in any script, combining marks, digits and the punctuation found in drug names
	queryRegex  = regexp.MustCompile(`^[\p{L}\p{M}0-9\s\-\.\+'(),/]+$`)
	termIDRegex = regexp.MustCompile(`^[0-9]+$`)

	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"eval(", "expression(", "url(", "@import",
		"' or ", "union select", "drop table", "delete from", "insert into", "--", "/*", "*/",
		"; ", "| ", "& ", "`", "$(", "${",
		"../", "..\\", "%2e%2e", "file://",
	}
)

// InputValidator validates search queries and term identifiers
type InputValidator struct{}

func NewInputValidator() *InputValidator {
	return &InputValidator{}
}

var _ interfaces.InputValidator = (*InputValidator)(nil)

// ValidateQuery returns the trimmed query or an error wrapping ErrInvalidInput
func (v *InputValidator) ValidateQuery(input string) (string, error) {
	query := strings.TrimSpace(input)
	if query == "" {
		return "", fmt.Errorf("%w: query cannot be empty", ErrInvalidInput)
	}

	if utf8.RuneCountInString(query) > maxQueryLength {
		return "", fmt.Errorf("%w: query too long: maximum %d characters", ErrInvalidInput, maxQueryLength)
	}

	if len(strings.Fields(query)) > maxQueryWords {
		return "", fmt.Errorf("%w: query too complex: maximum %d words allowed", ErrInvalidInput, maxQueryWords)
	}

	lower := strings.ToLower(query)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return "", fmt.Errorf("%w: query contains potentially dangerous content", ErrInvalidInput)
		}
	}

	if !queryRegex.MatchString(query) {
		return "", fmt.Errorf("%w: query contains invalid characters", ErrInvalidInput)
	}

	if hasExcessiveRepetition(query) {
		return "", fmt.Errorf("%w: query contains excessive character repetition", ErrInvalidInput)
	}

	return query, nil
}

// ValidateTermID accepts a positive decimal identifier as used by e-lactancia
// and returns it without leading zeros
func (v *InputValidator) ValidateTermID(input string) (string, error) {
	id := strings.TrimSpace(input)
	if id == "" {
		return "", fmt.Errorf("%w: term id cannot be empty", ErrInvalidInput)
	}
	if len(id) > maxTermIDLen || !termIDRegex.MatchString(id) {
		return "", fmt.Errorf("%w: term id must be a number of at most %d digits", ErrInvalidInput, maxTermIDLen)
	}
	id = strings.TrimLeft(id, "0")
	if id == "" {
		return "", fmt.Errorf("%w: term id must be positive", ErrInvalidInput)
	}
	return id, nil
}

// hasExcessiveRepetition reports a rune repeated more than 10 times in a row
func hasExcessiveRepetition(input string) bool {
	var prev rune
	run := 0
	for _, r := range input {
		if r == prev {
			run++
			if run > 10 {
				return true
			}
			continue
		}
		prev, run = r, 1
	}
	return false
}
