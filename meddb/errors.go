package meddb

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Functions to check for specific, known errors.

// IsDuplicate checks to see if the specified error is for attempting to create a duplicate document.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}

	var e mongo.WriteException
	if errors.As(err, &e) {
		for _, we := range e.WriteErrors {
			if we.Code == 11000 {
				return true
			}
		}
	}

	return false
}

// IsNotFound checks an error condition to see if it matches the underlying database "not found" error.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, mongo.ErrNoDocuments)
}

// IsValidationFailure checks to see if the specified error is for a document validation failure.
func IsValidationFailure(err error) bool {
	if err == nil {
		return false
	}

	var e mongo.WriteException
	if errors.As(err, &e) {
		for _, we := range e.WriteErrors {
			if we.Code == 121 {
				return true
			}
		}
	}

	return false
}

// DuplicateKeyField recovers the field name of the violated unique index
// from a duplicate-key write error. The server reports the index by name,
// e.g. "... index: username_1 dup key: ...", and single-field unique
// indexes are named <field>_1. Returns "" when the error is not a
// duplicate-key error or the name cannot be recovered.
func DuplicateKeyField(err error) string {
	if err == nil {
		return ""
	}

	var e mongo.WriteException
	if !errors.As(err, &e) {
		return ""
	}

	for _, we := range e.WriteErrors {
		if we.Code != 11000 {
			continue
		}
		return indexFieldFromMessage(we.Message)
	}

	return ""
}

func indexFieldFromMessage(msg string) string {
	const marker = "index: "
	start := strings.Index(msg, marker)
	if start < 0 {
		return ""
	}
	name := msg[start+len(marker):]
	if end := strings.IndexByte(name, ' '); end >= 0 {
		name = name[:end]
	}
	return strings.TrimSuffix(name, "_1")
}
