package medrec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewReminderDefaults(t *testing.T) {
	reminder := NewReminder(primitive.NewObjectID(), primitive.NewObjectID(), "08:00")
	assert.Equal(t, "08:00", reminder.TimeOfDay)
	assert.Equal(t, AllDaysOfWeek(), reminder.DaysOfWeek)
	assert.True(t, reminder.IsActive)
	assert.True(t, reminder.LastSent.IsZero())
	assert.True(t, reminder.NextDue.IsZero())
}

func TestReminderValidate(t *testing.T) {
	assert.NoError(t, NewReminder(primitive.NewObjectID(), primitive.NewObjectID(), "08:00").Validate())

	for _, tc := range []struct {
		name   string
		mutate func(r *Reminder)
		field  string
	}{
		{"missing medication id", func(r *Reminder) { r.MedicationID = primitive.NilObjectID }, "medication_id"},
		{"missing user id", func(r *Reminder) { r.UserID = primitive.NilObjectID }, "user_id"},
		{"missing time", func(r *Reminder) { r.TimeOfDay = "" }, "time"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			reminder := NewReminder(primitive.NewObjectID(), primitive.NewObjectID(), "08:00")
			tc.mutate(reminder)
			var vErr *ValidationError
			require.ErrorAs(t, reminder.Validate(), &vErr)
			assert.Equal(t, tc.field, vErr.Field)
			assert.Equal(t, RuleRequired, vErr.Rule)
		})
	}
}

func TestReminderTouch(t *testing.T) {
	reminder := NewReminder(primitive.NewObjectID(), primitive.NewObjectID(), "08:00")
	before := reminder.UpdatedAt
	time.Sleep(time.Millisecond)
	reminder.touch()
	assert.True(t, reminder.UpdatedAt.After(before))
}

func TestReminderTouchAppliesDaysDefault(t *testing.T) {
	reminder := NewReminder(primitive.NewObjectID(), primitive.NewObjectID(), "08:00")
	reminder.DaysOfWeek = nil
	reminder.touch()
	assert.Equal(t, AllDaysOfWeek(), reminder.DaysOfWeek)
}

func TestReminderSerialize(t *testing.T) {
	reminder := NewReminder(primitive.NewObjectID(), primitive.NewObjectID(), "08:00")
	reminder.SetID(primitive.NewObjectID())
	reminder.NextDue = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	flat := reminder.Serialize()
	assert.Equal(t, reminder.ID().Hex(), flat["id"])
	assert.Equal(t, reminder.MedicationID.Hex(), flat["medication_id"])
	assert.Equal(t, reminder.UserID.Hex(), flat["user_id"])
	assert.Equal(t, "08:00", flat["time"])
	assert.Equal(t, AllDaysOfWeek(), flat["days_of_week"])
	assert.Equal(t, "2026-09-01T08:00:00Z", flat["next_due"])
	assert.Nil(t, flat["last_sent"])

	assert.Equal(t, flat, reminder.Serialize())
}
