package medrec

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ownerForTest() *User {
	owner := NewUser("alice", "alice@x.com")
	owner.SetID(primitive.NewObjectID())
	return owner
}

func TestNewMedicationDefaults(t *testing.T) {
	owner := ownerForTest()
	medication := NewMedication(owner, "Aspirin", "100mg", "daily")
	assert.Equal(t, owner.ID(), medication.UserID)
	assert.Equal(t, "alice", medication.UserUsername)
	assert.True(t, medication.IsActive)
	assert.Equal(t, SourceManual, medication.Source)
	assert.Equal(t, 1.0, medication.ConfidenceScore)
	assert.False(t, medication.StartDate.IsZero())
	assert.True(t, medication.EndDate.IsZero())
	assert.False(t, medication.CreatedAt.IsZero())
}

func TestMedicationValidate(t *testing.T) {
	assert.NoError(t, NewMedication(ownerForTest(), "Aspirin", "100mg", "daily").Validate())

	for _, tc := range []struct {
		name   string
		mutate func(m *Medication)
		field  string
		rule   string
	}{
		{"missing user id", func(m *Medication) { m.UserID = primitive.NilObjectID }, "user_id", RuleRequired},
		{"missing username", func(m *Medication) { m.UserUsername = "" }, "user_username", RuleRequired},
		{"missing name", func(m *Medication) { m.Name = "" }, "name", RuleRequired},
		{"long name", func(m *Medication) { m.Name = strings.Repeat("x", 101) }, "name", RuleMaxLength},
		{"missing dosage", func(m *Medication) { m.Dosage = "" }, "dosage", RuleRequired},
		{"long dosage", func(m *Medication) { m.Dosage = strings.Repeat("x", 51) }, "dosage", RuleMaxLength},
		{"missing frequency", func(m *Medication) { m.Frequency = "" }, "frequency", RuleRequired},
		{"long instructions", func(m *Medication) { m.Instructions = strings.Repeat("x", 501) }, "instructions", RuleMaxLength},
		{"long duration", func(m *Medication) { m.Duration = strings.Repeat("x", 101) }, "duration", RuleMaxLength},
	} {
		t.Run(tc.name, func(t *testing.T) {
			medication := NewMedication(ownerForTest(), "Aspirin", "100mg", "daily")
			tc.mutate(medication)
			var vErr *ValidationError
			require.ErrorAs(t, medication.Validate(), &vErr)
			assert.Equal(t, tc.field, vErr.Field)
			assert.Equal(t, tc.rule, vErr.Rule)
		})
	}
}

func TestMedicationSourceUnconstrained(t *testing.T) {
	medication := NewMedication(ownerForTest(), "Aspirin", "100mg", "daily")
	medication.Source = "pharmacy-import"
	medication.ConfidenceScore = 7.5
	assert.NoError(t, medication.Validate())
}

func TestMedicationTouch(t *testing.T) {
	medication := NewMedication(ownerForTest(), "Aspirin", "100mg", "daily")
	before := medication.UpdatedAt
	time.Sleep(time.Millisecond)
	medication.touch()
	assert.True(t, medication.UpdatedAt.After(before))
}

func TestMedicationSerialize(t *testing.T) {
	medication := NewMedication(ownerForTest(), "Aspirin", "100mg", "daily")
	medication.SetID(primitive.NewObjectID())

	flat := medication.Serialize()
	assert.Equal(t, medication.ID().Hex(), flat["id"])
	assert.Equal(t, medication.UserID.Hex(), flat["user_id"])
	assert.Equal(t, "Aspirin", flat["name"])
	assert.Equal(t, "100mg", flat["dosage"])
	assert.Equal(t, "daily", flat["frequency"])
	assert.Equal(t, SourceManual, flat["source"])
	assert.Equal(t, 1.0, flat["confidence_score"])
	assert.Nil(t, flat["end_date"])
	assert.NotNil(t, flat["start_date"])

	// The denormalized owner username stays internal.
	assert.NotContains(t, flat, "user_username")

	assert.Equal(t, flat, medication.Serialize())
}
