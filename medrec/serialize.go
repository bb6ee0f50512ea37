package medrec

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Serialized records are the only contract other layers may depend on.
// These helpers fix the two conversions: identifiers become hex
// strings, timestamps become ISO-8601 strings, and either becomes nil
// when unset.

func isoTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func hexID(id primitive.ObjectID) interface{} {
	if id.IsZero() {
		return nil
	}
	return id.Hex()
}
