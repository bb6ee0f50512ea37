package meddb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection wraps a Mongo collection with its Access object.
type Collection struct {
	*Access
	*mongo.Collection
}

// CollectionDefinition declares a collection by name, with an optional
// JSON schema validator and finishers to run on creation (index setup).
type CollectionDefinition struct {
	Name           string
	ValidationJSON string
	Finishers      []CollectionFinisher
}

// ConnectCollection acquires the collection described by the definition,
// creating it and running its finishers if it does not already exist.
func ConnectCollection(access *Access, definition *CollectionDefinition) (*Collection, error) {
	collection, err := access.Collection(
		definition.Name, definition.ValidationJSON, definition.Finishers...)
	if err != nil {
		return nil, fmt.Errorf("connecting collection '%s': %w", definition.Name, err)
	}
	return collection, nil
}

// Count documents in collection matching filter.
func (c *Collection) Count(ctx context.Context, filter bson.D) (int64, error) {
	if count, err := c.Collection.CountDocuments(ctx, filter); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	} else {
		return count, nil
	}
}

// Create item in DB.
func (c *Collection) Create(ctx context.Context, item interface{}) error {
	if _, err := c.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	return nil
}

// Delete item from DB.
// Set idempotent to true to avoid errors if the item does not exist.
func (c *Collection) Delete(ctx context.Context, filter bson.D, idempotent bool) error {
	result, err := c.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if result.DeletedCount > 1 || (result.DeletedCount == 0 && !idempotent) {
		// Should have deleted a single item or none if idempotent flag set.
		return fmt.Errorf("deleted %d items", result.DeletedCount)
	}

	return nil
}

// DeleteAll items from this collection.
func (c *Collection) DeleteAll(ctx context.Context) error {
	_, err := c.DeleteMany(ctx, NoFilter())
	if err != nil {
		return fmt.Errorf("delete all: %w", err)
	}
	return nil
}

// Drop collection.
func (c *Collection) Drop() error {
	ctx, cancel := c.Access.ContextWithTimeout(c.Access.config.Timeout.Collection)
	defer cancel()
	return c.Collection.Drop(ctx)
}

// Find an item in the database and return it as a blank interface.
// The result will likely contain bson objects.
func (c *Collection) Find(ctx context.Context, filter bson.D) (interface{}, error) {
	var item interface{}
	if err := c.FindOne(ctx, filter).Decode(&item); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("no item '%v': %w", filter, err)
		}
		return nil, fmt.Errorf("find item '%v': %w", filter, err)
	}

	return item, nil
}

// Iterate over a set of items, applying the specified function to each one.
// The items passed to the function will likely contain bson objects.
func (c *Collection) Iterate(ctx context.Context, filter bson.D, fn func(item interface{}) error) error {
	if cursor, err := c.Collection.Find(ctx, filter); err != nil {
		return fmt.Errorf("find items: %w", err)
	} else {
		var item interface{}
		for cursor.Next(ctx) {
			if err := cursor.Decode(&item); err != nil {
				return fmt.Errorf("decode item: %w", err)
			} else if err := fn(item); err != nil {
				return fmt.Errorf("apply function: %w", err)
			}
		}
	}

	return nil
}

var errNoItemMatch = errors.New("no matching item")

// Replace the entire item referenced by filter with the specified item.
// If the filter matches more than one document Mongo will choose one to replace.
func (c *Collection) Replace(ctx context.Context, filter bson.D, item interface{}, opts ...*options.ReplaceOptions) error {
	result, err := c.ReplaceOne(ctx, filter, item, opts...)
	if err != nil {
		return fmt.Errorf("replace item: %w", err)
	} else if result.MatchedCount < 1 && result.UpsertedCount < 1 {
		return errNoItemMatch
	}

	return nil
}

// Update item referenced by filter by applying update operator expressions.
// If the filter matches more than one document Mongo will choose one to update.
func (c *Collection) Update(ctx context.Context, filter, operators interface{}, opts ...*options.UpdateOptions) error {
	result, err := c.UpdateOne(ctx, filter, operators, opts...)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	} else if result.MatchedCount < 1 && result.UpsertedCount < 1 {
		return errNoItemMatch
	}

	return nil
}

////////////////////////////////////////////////////////////////////////////////

// NoFilter returns an empty bson.D object for use as an empty filter.
func NoFilter() bson.D {
	return bson.D{}
}
