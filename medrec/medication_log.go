package medrec

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KARTHIKRAIG/MEDIMORPH/meddb"
)

// Outcome of a scheduled dose.
const (
	StatusTaken   = "taken"
	StatusMissed  = "missed"
	StatusDelayed = "delayed"
)

func logStatuses() []string {
	return []string{StatusTaken, StatusMissed, StatusDelayed}
}

// MedicationLog records one intake event. It belongs to one user and
// one medication and may reference the reminder that triggered it.
// Logs are immutable after creation; there is no update path.
type MedicationLog struct {
	meddb.Identity `bson:"inline"`

	UserID       primitive.ObjectID `bson:"user_id"`
	MedicationID primitive.ObjectID `bson:"medication_id"`

	TakenAt     time.Time `bson:"taken_at"`
	DosageTaken string    `bson:"dosage_taken,omitempty"`
	Notes       string    `bson:"notes,omitempty"`

	Status     string             `bson:"status"`
	ReminderID primitive.ObjectID `bson:"reminder_id,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
}

// NewMedicationLog returns a log entry with defaults applied:
// taken now, status taken.
func NewMedicationLog(userID, medicationID primitive.ObjectID) *MedicationLog {
	now := time.Now().UTC()
	return &MedicationLog{
		UserID:       userID,
		MedicationID: medicationID,
		TakenAt:      now,
		Status:       StatusTaken,
		CreatedAt:    now,
	}
}

// Validate checks field constraints,
// returning a *ValidationError for the first violation.
func (l *MedicationLog) Validate() error {
	if err := checkRequiredID("user_id", l.UserID); err != nil {
		return err
	}
	if err := checkRequiredID("medication_id", l.MedicationID); err != nil {
		return err
	}
	if err := checkMaxLength("dosage_taken", l.DosageTaken, maxDosageLength); err != nil {
		return err
	}
	if err := checkMaxLength("notes", l.Notes, maxInstructionsLength); err != nil {
		return err
	}
	return checkChoices("status", l.Status, logStatuses())
}

// Serialize returns the transport-safe representation of the log entry.
func (l *MedicationLog) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":            hexID(l.ObjectID),
		"user_id":       hexID(l.UserID),
		"medication_id": hexID(l.MedicationID),
		"taken_at":      isoTime(l.TakenAt),
		"dosage_taken":  l.DosageTaken,
		"notes":         l.Notes,
		"status":        l.Status,
		"reminder_id":   hexID(l.ReminderID),
		"created_at":    isoTime(l.CreatedAt),
	}
}
