// Package validation holds the field-level checks shared by the menu and
// domain value types. Every failed check returns an *Error naming the field
// and the rule it broke.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule identifies which constraint a value violated.
type Rule string

const (
	RuleRequired Rule = "required"
	RuleLength   Rule = "length"
	RulePattern  Rule = "pattern"
	RuleRange    Rule = "range"
	RuleOrder    Rule = "order"
	RuleFormat   Rule = "format"
)

// Error is returned by constructors when a value fails validation.
type Error struct {
	Field   string
	Rule    Rule
	Message string
}

// Error renders "invalid <field>: <message>".
func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// New builds a validation error.
func New(field string, rule Rule, format string, args ...any) *Error {
	return &Error{Field: field, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err is a validation error.
func Is(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

// Alphanumeric matches letters, digits and spaces only.
var Alphanumeric = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

// Text checks that value is non-empty, at most maxLen characters long and,
// when pattern is non-nil, matches it.
func Text(field, value string, maxLen int, pattern *regexp.Regexp) error {
	if value == "" {
		return New(field, RuleRequired, "must not be empty")
	}
	if n := utf8.RuneCountInString(value); n > maxLen {
		return New(field, RuleLength, "must be at most %d characters (got %d)", maxLen, n)
	}
	if pattern != nil && !pattern.MatchString(value) {
		return New(field, RulePattern, "must match %s", pattern.String())
	}
	return nil
}

// Excludes checks that value contains none of the characters in forbidden.
func Excludes(field, value, forbidden string) error {
	if i := strings.IndexAny(value, forbidden); i >= 0 {
		return New(field, RulePattern, "must not contain %q", value[i:i+1])
	}
	return nil
}

// Range checks min <= value <= max.
func Range(field string, value, min, max int) error {
	if value < min || value > max {
		return New(field, RuleRange, "must be between %d and %d (got %d)", min, max, value)
	}
	return nil
}

// Min checks value >= min.
func Min(field string, value, min int) error {
	if value < min {
		return New(field, RuleRange, "must be at least %d (got %d)", min, value)
	}
	return nil
}
