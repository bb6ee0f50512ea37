package meddb

import (
	"go.mongodb.org/mongo-driver/bson"
)

var testValidatorJSON = `{
	"$jsonSchema": {
		"bsonType": "object",
		"required": ["code", "seq"],
		"properties": {
			"code": {
				"bsonType": "string"
			},
			"seq": {
				"bsonType": "int"
			}
		}
	}
}`

var _ Identifier = &testDoc{}

type testDoc struct {
	Identity `bson:"inline"`
	Code     string `bson:"code,omitempty"`
	Seq      int    `bson:"seq,omitempty"`
	Note     string `bson:"note,omitempty"`
}

// Filter returns a filter for the code/seq of this document.
func (d *testDoc) Filter() bson.D {
	return bson.D{
		{Key: "code", Value: d.Code},
		{Key: "seq", Value: d.Seq},
	}
}

var (
	testDoc1 = &testDoc{
		Code: "one",
		Seq:  1,
		Note: "first of its name",
	}
	testDoc2 = &testDoc{
		Code: "two",
		Seq:  2,
		Note: "second verse",
	}
	testDocNone = &testDoc{
		Code: "missing",
		Seq:  404,
	}
)
