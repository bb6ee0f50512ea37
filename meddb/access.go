package meddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Access encapsulates the database connection.
type Access struct {
	client   *mongo.Client
	database *mongo.Database
	config   Config
}

// ErrNoDatabaseName is returned by Connect when the config names no database.
var ErrNoDatabaseName = errors.New("no database name")

// Connect to MongoDB and return an Access object.
// A nil config connects with DefaultConfig().
// Zero config values are filled with defaults before dialing.
// All failures are logged and returned; nothing panics past this boundary,
// the caller decides whether a failed connect aborts startup.
func Connect(config *Config) (*Access, error) {
	config = fixConfig(config)
	if config.Database == "" {
		return nil, ErrNoDatabaseName
	}

	access := &Access{config: *config}
	if err := access.dial(); err != nil {
		config.Logger.Error("MongoDB connect failed",
			zap.String("uri", config.URI),
			zap.String("database", config.Database),
			zap.Error(err))
		return nil, err
	}

	access.config.Logger.Info("Connected to MongoDB",
		zap.String("database", access.database.Name()))

	return access, nil
}

// dial opens a client with the configured tunables and pings it.
func (a *Access) dial() error {
	opts := options.Client().
		ApplyURI(a.config.URI).
		SetConnectTimeout(a.config.ConnectTimeout).
		SetSocketTimeout(a.config.SocketTimeout).
		SetServerSelectionTimeout(a.config.ServerSelectionTimeout).
		SetMaxPoolSize(a.config.MaxPoolSize).
		SetRetryWrites(a.config.RetryWrites)

	ctx, cancel := a.ContextWithTimeout(a.config.ConnectTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("unable to connect mongo server: %w", err)
	}

	a.client = client
	a.database = client.Database(a.config.Database)

	if err = a.Ping(); err != nil {
		return err
	}

	return nil
}

// Reconnect tears down any prior connection and dials anew with the
// same config. The teardown is unconditional and a teardown error does
// not block the new connection. Not safe concurrently with in-flight
// operations; intended for single-threaded use at process startup.
func (a *Access) Reconnect() error {
	if a.client != nil {
		if err := a.Disconnect(); err != nil {
			a.config.Logger.Warn("Disconnect before reconnect failed", zap.Error(err))
		}
		a.client = nil
		a.database = nil
	}

	if err := a.dial(); err != nil {
		a.config.Logger.Error("MongoDB reconnect failed", zap.Error(err))
		return err
	}

	a.config.Logger.Info("Reconnected to MongoDB",
		zap.String("database", a.database.Name()))

	return nil
}

// Disconnect the MongoDB client.
// Provided for use in defer statements.
func (a *Access) Disconnect() error {
	ctx, cancel := a.ContextWithTimeout(a.config.Timeout.Disconnect)
	defer cancel()
	if err := a.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("unable to disconnect mongo server: %w", err)
	}

	return nil
}

// Client returns the Mongo client object.
func (a *Access) Client() *mongo.Client {
	return a.client
}

// Context returns the base context for the object.
func (a *Access) Context() context.Context {
	return a.config.Ctx
}

// ContextWithTimeout returns the base context for the object with the specified timeout.
func (a *Access) ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(a.config.Ctx, timeout)
}

// Database returns the Mongo database object.
func (a *Access) Database() *mongo.Database {
	return a.database
}

// Logger returns the configured logger, never nil.
func (a *Access) Logger() *zap.Logger {
	return a.config.Logger
}

// Ping executes a bounded liveness probe against the primary.
func (a *Access) Ping() error {
	ctx, cancel := a.ContextWithTimeout(a.config.Timeout.Ping)
	defer cancel()
	err := a.client.Ping(ctx, readpref.Primary())
	if err != nil {
		return fmt.Errorf("unable to ping mongo server: %w", err)
	}

	return nil
}

// TestConnection is an operational diagnostic independent of any shared
// Access: it opens a fresh short-lived client, pings it, logs the server's
// database names and the target database's collection names, and releases
// the client. A failure here is not fatal to anything.
func TestConnection(config *Config) error {
	config = fixConfig(config)
	if config.Database == "" {
		return ErrNoDatabaseName
	}

	ctx, cancel := context.WithTimeout(config.Ctx, config.ServerSelectionTimeout)
	defer cancel()
	opts := options.Client().
		ApplyURI(config.URI).
		SetServerSelectionTimeout(config.ServerSelectionTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		config.Logger.Error("MongoDB connection test failed", zap.Error(err))
		return fmt.Errorf("unable to connect mongo server: %w", err)
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(config.Ctx, config.Timeout.Disconnect)
		defer dcancel()
		if err := client.Disconnect(dctx); err != nil {
			config.Logger.Warn("Disconnect after connection test failed", zap.Error(err))
		}
	}()

	pingCtx, pingCancel := context.WithTimeout(config.Ctx, config.Timeout.Ping)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		config.Logger.Error("MongoDB connection test failed", zap.Error(err))
		return fmt.Errorf("unable to ping mongo server: %w", err)
	}

	listCtx, listCancel := context.WithTimeout(config.Ctx, config.Timeout.Collection)
	defer listCancel()
	databases, err := client.ListDatabaseNames(listCtx, bson.M{})
	if err != nil {
		config.Logger.Error("MongoDB connection test failed", zap.Error(err))
		return fmt.Errorf("list database names: %w", err)
	}
	config.Logger.Info("Available databases", zap.Strings("names", databases))

	collCtx, collCancel := context.WithTimeout(config.Ctx, config.Timeout.Collection)
	defer collCancel()
	collections, err := client.Database(config.Database).ListCollectionNames(collCtx, bson.M{})
	if err != nil {
		config.Logger.Error("MongoDB connection test failed", zap.Error(err))
		return fmt.Errorf("list collection names: %w", err)
	}
	config.Logger.Info("Collections in database",
		zap.String("database", config.Database),
		zap.Strings("names", collections))

	return nil
}

////////////////////////////////////////////////////////////////////////////////

var errMissingCollectionName = errors.New("no collection name argument")

// CollectionExists checks to see if a specific collection already exists.
func (a *Access) CollectionExists(name string) (bool, error) {
	if name == "" {
		return false, errMissingCollectionName
	}

	ctx, cancel := a.ContextWithTimeout(a.config.Timeout.Collection)
	defer cancel()
	names, err := a.database.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, fmt.Errorf("getting collection names: %w", err)
	}

	exists := false
	for _, collName := range names {
		if collName == name {
			exists = true
			break
		}
	}

	return exists, nil
}

// CollectionFinisher provides a way to add special processing when creating a collection.
type CollectionFinisher func(access *Access, collection *Collection) error

// Collection acquires the named collection, creating it if necessary.
// Finishers run only when the collection is newly created.
func (a *Access) Collection(
	collectionName string, validatorJSON string, finishers ...CollectionFinisher) (*Collection, error) {
	if collectionName == "" {
		return nil, errMissingCollectionName
	}

	if exists, err := a.CollectionExists(collectionName); err != nil {
		return nil, fmt.Errorf("does collection '%s' exist: %w", collectionName, err)
	} else if exists {
		// Collection already exists, just return it.
		return &Collection{Access: a, Collection: a.database.Collection(collectionName)}, nil
	}

	// Add option for validator JSON if it is provided.
	opts := make([]*options.CreateCollectionOptions, 0)
	if validatorJSON != "" {
		var validator interface{}
		if err := bson.UnmarshalExtJSON([]byte(validatorJSON), false, &validator); err != nil {
			return nil, fmt.Errorf("unmarshal validator for collection: %w", err)
		}
		opts = append(opts, &options.CreateCollectionOptions{Validator: validator})
	}

	createCtx, cancel := a.ContextWithTimeout(a.config.Timeout.Collection)
	defer cancel()
	err := a.database.CreateCollection(createCtx, collectionName, opts...)
	if err != nil {
		if cmdErr, ok := err.(mongo.CommandError); !ok || !cmdErr.HasErrorLabel("NamespaceExists") {
			return nil, fmt.Errorf("create collection: %w", err)
		}
	}
	collection := &Collection{
		Access:     a,
		Collection: a.database.Collection(collectionName),
	}
	a.config.Logger.Info("Created collection", zap.String("name", collection.Name()))

	// Run finishers on the collection.
	for i, finisher := range finishers {
		if err = finisher(a, collection); err != nil {
			return nil, fmt.Errorf("collection finisher #%d: %w", i, err)
		}
	}

	return collection, nil
}
