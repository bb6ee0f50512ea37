package medrec

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KARTHIKRAIG/MEDIMORPH/meddb"
)

// Where a medication record came from. Not constrained to these
// values; the OCR pipeline writes SourceOCR or SourcePrescription.
const (
	SourceManual       = "manual"
	SourceOCR          = "ocr"
	SourcePrescription = "prescription"
)

const (
	maxMedicationNameLength = 100
	maxDosageLength         = 50
	maxFrequencyLength      = 50
	maxInstructionsLength   = 500
	maxDurationLength       = 100
)

// Medication belongs to exactly one user. UserUsername is a
// denormalized copy of the owner's username kept for query
// convenience; it is not re-synced if the username ever changes.
type Medication struct {
	meddb.Identity `bson:"inline"`

	UserID       primitive.ObjectID `bson:"user_id"`
	UserUsername string             `bson:"user_username"`

	Name         string `bson:"name"`
	Dosage       string `bson:"dosage"`
	Frequency    string `bson:"frequency"`
	Instructions string `bson:"instructions,omitempty"`
	Duration     string `bson:"duration,omitempty"`

	StartDate time.Time `bson:"start_date"`
	EndDate   time.Time `bson:"end_date,omitempty"`

	IsActive  bool      `bson:"is_active"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`

	Source          string  `bson:"source"`
	ConfidenceScore float64 `bson:"confidence_score"`
}

// NewMedication returns a medication owned by the given user with
// defaults applied: active, starting now, manual source, full
// confidence.
func NewMedication(owner *User, name, dosage, frequency string) *Medication {
	now := time.Now().UTC()
	return &Medication{
		UserID:          owner.ID(),
		UserUsername:    owner.Username,
		Name:            name,
		Dosage:          dosage,
		Frequency:       frequency,
		StartDate:       now,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
		Source:          SourceManual,
		ConfidenceScore: 1.0,
	}
}

// Validate checks field constraints,
// returning a *ValidationError for the first violation.
// Source and ConfidenceScore are deliberately unconstrained.
func (m *Medication) Validate() error {
	if err := checkRequiredID("user_id", m.UserID); err != nil {
		return err
	}
	if err := checkRequired("user_username", m.UserUsername); err != nil {
		return err
	}
	if err := checkRequired("name", m.Name); err != nil {
		return err
	}
	if err := checkMaxLength("name", m.Name, maxMedicationNameLength); err != nil {
		return err
	}
	if err := checkRequired("dosage", m.Dosage); err != nil {
		return err
	}
	if err := checkMaxLength("dosage", m.Dosage, maxDosageLength); err != nil {
		return err
	}
	if err := checkRequired("frequency", m.Frequency); err != nil {
		return err
	}
	if err := checkMaxLength("frequency", m.Frequency, maxFrequencyLength); err != nil {
		return err
	}
	if err := checkMaxLength("instructions", m.Instructions, maxInstructionsLength); err != nil {
		return err
	}
	return checkMaxLength("duration", m.Duration, maxDurationLength)
}

// touch refreshes the update timestamp. The Store calls this on every
// save; it cannot be bypassed.
func (m *Medication) touch() {
	m.UpdatedAt = time.Now().UTC()
}

// Serialize returns the transport-safe representation of the
// medication. The denormalized owner username is not part of the
// contract and is omitted.
func (m *Medication) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":               hexID(m.ObjectID),
		"user_id":          hexID(m.UserID),
		"name":             m.Name,
		"dosage":           m.Dosage,
		"frequency":        m.Frequency,
		"instructions":     m.Instructions,
		"duration":         m.Duration,
		"start_date":       isoTime(m.StartDate),
		"end_date":         isoTime(m.EndDate),
		"is_active":        m.IsActive,
		"created_at":       isoTime(m.CreatedAt),
		"updated_at":       isoTime(m.UpdatedAt),
		"source":           m.Source,
		"confidence_score": m.ConfidenceScore,
	}
}
