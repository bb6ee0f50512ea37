package medrec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTranslateWriteDuplicate(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{
			Code: 11000,
			Message: `E11000 duplicate key error collection: medimorph_db.users ` +
				`index: email_1 dup key: { email: "alice@x.com" }`,
		}},
	}

	var vErr *ValidationError
	require.ErrorAs(t, translateWrite(dup), &vErr)
	assert.Equal(t, "email", vErr.Field)
	assert.Equal(t, RuleUnique, vErr.Rule)
}

func TestTranslateWritePassthrough(t *testing.T) {
	assert.NoError(t, translateWrite(nil))
	other := errors.New("socket closed")
	assert.Equal(t, other, translateWrite(other))
}
