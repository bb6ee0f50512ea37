package meddb

// Would prefer to name this file ending in _test.go
//  so that it won't be included in generated code,
//  but then it can't be referenced from other packages,
//  so it couldn't be used (as designed) in tests in other packages.

import (
	"github.com/stretchr/testify/suite"
)

const AccessTestDBname = "db-test"

// AccessTestSuite wraps database connect/disconnect for test suites
// that hit a live server. Guard such suites with '//go:build database'.
type AccessTestSuite struct {
	suite.Suite
	access *Access
}

func (suite *AccessTestSuite) Access() *Access {
	return suite.access
}

func (suite *AccessTestSuite) SetupSuite() {
	suite.SetupSuiteConfig(nil)
}

func (suite *AccessTestSuite) SetupSuiteConfig(config *Config) {
	if config == nil {
		config = DefaultConfig()
	}
	config.Database = AccessTestDBname
	var err error
	suite.access, err = Connect(config)
	suite.Require().NoError(err, "connect to mongo")
}

func (suite *AccessTestSuite) TearDownSuite() {
	suite.NoError(suite.access.Database().Drop(suite.access.Context()), "drop test database")
	suite.NoError(suite.access.Disconnect(), "disconnect from mongo")
}

// ConnectCollection connects to the specified collection and adds any provided indexes
// as necessary in a SetupSuite() with test checks so that any errors blow up the test.
func (suite *AccessTestSuite) ConnectCollection(
	definition *CollectionDefinition, indexDescriptions ...*IndexDescription) *Collection {
	collection, err := ConnectCollection(suite.access, definition)
	suite.Require().NoError(err)
	suite.NotNil(collection)
	suite.Require().NoError(collection.DeleteAll(suite.access.Context()))
	for _, indexDescription := range indexDescriptions {
		suite.Require().NoError(suite.access.Index(collection, indexDescription))
	}
	return collection
}

// ConnectTypedCollectionHelper is similar to AccessTestSuite.ConnectCollection().
// Go doesn't support generic methods so this can't be a method on AccessTestSuite.
func ConnectTypedCollectionHelper[T any](
	suite *AccessTestSuite, definition *CollectionDefinition, indexDescriptions ...*IndexDescription) *TypedCollection[T] {
	collection, err := ConnectTypedCollection[T](suite.access, definition)
	suite.Require().NoError(err)
	suite.NotNil(collection)
	suite.Require().NoError(collection.DeleteAll(suite.access.Context()))
	for _, indexDescription := range indexDescriptions {
		suite.Require().NoError(suite.access.Index(&collection.Collection, indexDescription))
	}
	return collection
}
