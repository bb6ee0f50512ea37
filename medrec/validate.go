package medrec

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rules a field can violate.
const (
	RuleRequired  = "required"
	RuleMaxLength = "max_length"
	RuleChoices   = "choices"
	RuleUnique    = "unique"
)

// ValidationError reports the first field of a record that violates
// one of its declared constraints. It is raised at persist time and
// propagates uncaught to the caller, which translates it into a
// user-facing message.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q violates %s constraint", e.Field, e.Rule)
}

func checkRequired(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Rule: RuleRequired}
	}
	return nil
}

func checkRequiredID(field string, id primitive.ObjectID) error {
	if id.IsZero() {
		return &ValidationError{Field: field, Rule: RuleRequired}
	}
	return nil
}

func checkMaxLength(field, value string, max int) error {
	if len(value) > max {
		return &ValidationError{Field: field, Rule: RuleMaxLength}
	}
	return nil
}

func checkChoices(field, value string, choices []string) error {
	for _, choice := range choices {
		if value == choice {
			return nil
		}
	}
	return &ValidationError{Field: field, Rule: RuleChoices}
}
