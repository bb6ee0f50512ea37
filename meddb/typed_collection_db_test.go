//go:build database

package meddb

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type typedTestSuite struct {
	AccessTestSuite
	typed *TypedCollection[testDoc]
}

func TestTypedSuite(t *testing.T) {
	suite.Run(t, new(typedTestSuite))
}

func (suite *typedTestSuite) SetupSuite() {
	suite.AccessTestSuite.SetupSuite()
	suite.typed = ConnectTypedCollectionHelper[testDoc](
		&suite.AccessTestSuite,
		&CollectionDefinition{Name: "meddb-typed-collection"},
		NewIndexDescription(true, "code"))
}

func (suite *typedTestSuite) TearDownTest() {
	suite.NoError(suite.typed.DeleteAll(suite.access.Context()))
}

func (suite *typedTestSuite) TestCreateDuplicate() {
	ctx := suite.access.Context()
	suite.Require().NoError(suite.typed.Create(ctx, testDoc1))
	item, err := suite.typed.Find(ctx, testDoc1.Filter())
	suite.Require().NoError(err)
	suite.NotNil(item)
	err = suite.typed.Create(ctx, testDoc1)
	suite.Require().Error(err)
	suite.True(IsDuplicate(err))
	suite.Equal("code", DuplicateKeyField(err))
}

func (suite *typedTestSuite) TestFindNone() {
	item, err := suite.typed.Find(suite.access.Context(), testDocNone.Filter())
	suite.Require().Error(err)
	suite.True(IsNotFound(err))
	suite.Nil(item)
}

func (suite *typedTestSuite) TestFindOrCreate() {
	ctx := suite.access.Context()
	item, err := suite.typed.FindOrCreate(ctx, testDoc2.Filter(), testDoc2)
	suite.Require().NoError(err)
	suite.Require().NotNil(item)
	suite.Equal(testDoc2.Note, item.Note)
	again, err := suite.typed.FindOrCreate(ctx, testDoc2.Filter(), testDoc2)
	suite.Require().NoError(err)
	suite.Require().NotNil(again)
	suite.Equal(item.ObjectID, again.ObjectID)
}

func (suite *typedTestSuite) TestIterate() {
	ctx := suite.access.Context()
	suite.Require().NoError(suite.typed.Create(ctx, testDoc1))
	suite.Require().NoError(suite.typed.Create(ctx, testDoc2))
	notes := make([]string, 0, 2)
	suite.Require().NoError(suite.typed.Iterate(ctx, NoFilter(), func(item *testDoc) error {
		notes = append(notes, item.Note)
		return nil
	}))
	suite.Len(notes, 2)
	suite.Contains(notes, testDoc1.Note)
	suite.Contains(notes, testDoc2.Note)
}
