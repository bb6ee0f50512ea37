package medrec

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KARTHIKRAIG/MEDIMORPH/meddb"
)

// AllDaysOfWeek returns the default reminder schedule: every day.
func AllDaysOfWeek() []string {
	return []string{
		"monday", "tuesday", "wednesday", "thursday",
		"friday", "saturday", "sunday",
	}
}

// Reminder belongs to one medication and, transitively, one user.
// TimeOfDay is an "HH:MM" string; its format is not validated here.
// The scheduler collaborator reads reminders by active flag and due
// time and writes back LastSent and NextDue through the Store; this
// layer computes no due-time logic itself.
type Reminder struct {
	meddb.Identity `bson:"inline"`

	MedicationID primitive.ObjectID `bson:"medication_id"`
	UserID       primitive.ObjectID `bson:"user_id"`

	TimeOfDay  string   `bson:"time"`
	DaysOfWeek []string `bson:"days_of_week"`

	IsActive bool      `bson:"is_active"`
	LastSent time.Time `bson:"last_sent,omitempty"`
	NextDue  time.Time `bson:"next_due,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewReminder returns a reminder with defaults applied: active, every
// day of the week, created now.
func NewReminder(medicationID, userID primitive.ObjectID, timeOfDay string) *Reminder {
	now := time.Now().UTC()
	return &Reminder{
		MedicationID: medicationID,
		UserID:       userID,
		TimeOfDay:    timeOfDay,
		DaysOfWeek:   AllDaysOfWeek(),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate checks field constraints,
// returning a *ValidationError for the first violation.
func (r *Reminder) Validate() error {
	if err := checkRequiredID("medication_id", r.MedicationID); err != nil {
		return err
	}
	if err := checkRequiredID("user_id", r.UserID); err != nil {
		return err
	}
	return checkRequired("time", r.TimeOfDay)
}

// touch refreshes the update timestamp and applies the days-of-week
// default when unset. The Store calls this on every save.
func (r *Reminder) touch() {
	if len(r.DaysOfWeek) == 0 {
		r.DaysOfWeek = AllDaysOfWeek()
	}
	r.UpdatedAt = time.Now().UTC()
}

// Serialize returns the transport-safe representation of the reminder.
func (r *Reminder) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":            hexID(r.ObjectID),
		"medication_id": hexID(r.MedicationID),
		"user_id":       hexID(r.UserID),
		"time":          r.TimeOfDay,
		"days_of_week":  r.DaysOfWeek,
		"is_active":     r.IsActive,
		"last_sent":     isoTime(r.LastSent),
		"next_due":      isoTime(r.NextDue),
		"created_at":    isoTime(r.CreatedAt),
		"updated_at":    isoTime(r.UpdatedAt),
	}
}
