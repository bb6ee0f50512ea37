//go:build database

package meddb

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type indexTestSuite struct {
	AccessTestSuite
	collection *Collection
}

func TestIndexSuite(t *testing.T) {
	suite.Run(t, new(indexTestSuite))
}

func (suite *indexTestSuite) SetupTest() {
	suite.collection = suite.ConnectCollection(&CollectionDefinition{
		Name:           "meddb-index",
		ValidationJSON: testValidatorJSON,
	})
}

func (suite *indexTestSuite) TearDownTest() {
	_ = suite.collection.Drop()
}

func (suite *indexTestSuite) TestIndexNone() {
	NewIndexTester().TestIndexes(suite.T(), suite.collection)
}

func (suite *indexTestSuite) TestIndexOne() {
	index1 := NewIndexDescription(true, "code")
	suite.Require().NoError(suite.access.Index(suite.collection, index1))
	NewIndexTester().TestIndexes(suite.T(), suite.collection, index1)
}

func (suite *indexTestSuite) TestIndexSeveral() {
	index1 := NewIndexDescription(true, "code")
	index2 := NewIndexDescription(false, "seq")
	index3 := NewIndexDescription(false, "code", "seq")
	suite.Require().NoError(suite.access.Index(suite.collection, index1))
	suite.Require().NoError(suite.access.Index(suite.collection, index2))
	suite.Require().NoError(suite.access.Index(suite.collection, index3))
	NewIndexTester().TestIndexes(suite.T(), suite.collection, index1, index2, index3)
}

func (suite *indexTestSuite) TestIndexFinisher() {
	index := NewIndexDescription(true, "code", "seq")
	collection, err := ConnectCollection(suite.access,
		&CollectionDefinition{
			Name:           "meddb-index-finisher",
			ValidationJSON: testValidatorJSON,
			Finishers: []CollectionFinisher{
				index.Finisher(),
			},
		})
	suite.Require().NoError(err)
	suite.NotNil(collection)
	NewIndexTester().TestIndexes(suite.T(), collection, index)
}
