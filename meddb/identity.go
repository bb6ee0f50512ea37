package meddb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identifier provides an interface to items keyed by a Mongo ObjectID.
type Identifier interface {
	ID() primitive.ObjectID
	SetID(id primitive.ObjectID)
	IDFilter() bson.D
}

// Identity instantiates the Identifier interface.
// Embed it inline in document structs to pick up the _id field.
type Identity struct {
	ObjectID primitive.ObjectID `bson:"_id,omitempty"`
}

// ID returns the primitive Mongo ObjectID for an item.
func (idm *Identity) ID() primitive.ObjectID {
	return idm.ObjectID
}

// SetID records the server-assigned ObjectID after an insert.
func (idm *Identity) SetID(id primitive.ObjectID) {
	idm.ObjectID = id
}

// IDFilter returns a Mongo filter object for the item's ID.
func (idm *Identity) IDFilter() bson.D {
	return bson.D{{Key: "_id", Value: idm.ObjectID}}
}
