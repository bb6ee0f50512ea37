package meddb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// TypedCollection wraps a Collection so that found items are decoded
// into values of the collection's document type.
type TypedCollection[T any] struct {
	Collection
}

// ConnectTypedCollection acquires the collection described by the
// definition as a TypedCollection.
func ConnectTypedCollection[T any](access *Access, definition *CollectionDefinition) (*TypedCollection[T], error) {
	collection, err := ConnectCollection(access, definition)
	if err != nil {
		return nil, err
	}
	return &TypedCollection[T]{Collection: *collection}, nil
}

// Find an item in the database.
// Returns a pointer to an item of the collection's type.
func (c *TypedCollection[T]) Find(ctx context.Context, filter bson.D) (*T, error) {
	item := new(T)
	err := c.FindOne(ctx, filter).Decode(item)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("no item '%v': %w", filter, err)
		}
		return nil, fmt.Errorf("find item '%v': %w", filter, err)
	}

	return item, nil
}

// FindOrCreate returns an existing object or creates it if it does not already exist.
// The filter must correctly find the object as a second Find is done after any necessary creation.
func (c *TypedCollection[T]) FindOrCreate(ctx context.Context, filter bson.D, item *T) (*T, error) {
	found, err := c.Find(ctx, filter)
	if err != nil {
		if !IsNotFound(err) {
			return found, err
		}

		err = c.Create(ctx, item)
		if err != nil {
			return found, err
		}

		found, err = c.Find(ctx, filter)
		if err != nil {
			return found, fmt.Errorf("find just created item: %w", err)
		}
	}

	return found, nil
}

// Iterate over a set of items, applying the specified function to each one.
func (c *TypedCollection[T]) Iterate(ctx context.Context, filter bson.D, fn func(item *T) error) error {
	if cursor, err := c.Collection.Collection.Find(ctx, filter); err != nil {
		return fmt.Errorf("find items: %w", err)
	} else {
		for cursor.Next(ctx) {
			item := new(T)
			if err := cursor.Decode(item); err != nil {
				return fmt.Errorf("decode item: %w", err)
			}

			if err := fn(item); err != nil {
				return fmt.Errorf("apply function: %w", err)
			}
		}
	}

	return nil
}
