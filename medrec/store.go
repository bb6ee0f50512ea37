package medrec

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/KARTHIKRAIG/MEDIMORPH/meddb"
)

// Collection declarations with their indexes. Uniqueness carries
// semantics only on username and email; every other index exists to
// keep the by-user and by-status queries below efficient.
var (
	usersDefinition = &meddb.CollectionDefinition{
		Name: "users",
		Finishers: []meddb.CollectionFinisher{
			meddb.NewIndexDescription(true, "username").Finisher(),
			meddb.NewIndexDescription(true, "email").Finisher(),
		},
	}
	medicationsDefinition = &meddb.CollectionDefinition{
		Name: "medications",
		Finishers: []meddb.CollectionFinisher{
			meddb.NewIndexDescription(false, "user_id").Finisher(),
			meddb.NewIndexDescription(false, "user_username").Finisher(),
			meddb.NewIndexDescription(false, "name").Finisher(),
			meddb.NewIndexDescription(false, "is_active").Finisher(),
		},
	}
	remindersDefinition = &meddb.CollectionDefinition{
		Name: "reminders",
		Finishers: []meddb.CollectionFinisher{
			meddb.NewIndexDescription(false, "user_id").Finisher(),
			meddb.NewIndexDescription(false, "medication_id").Finisher(),
			meddb.NewIndexDescription(false, "is_active").Finisher(),
			meddb.NewIndexDescription(false, "next_due").Finisher(),
		},
	}
	medicationLogsDefinition = &meddb.CollectionDefinition{
		Name: "medication_logs",
		Finishers: []meddb.CollectionFinisher{
			meddb.NewIndexDescription(false, "user_id").Finisher(),
			meddb.NewIndexDescription(false, "medication_id").Finisher(),
			meddb.NewIndexDescription(false, "taken_at").Finisher(),
			meddb.NewIndexDescription(false, "status").Finisher(),
		},
	}
	prescriptionUploadsDefinition = &meddb.CollectionDefinition{
		Name: "prescription_uploads",
		Finishers: []meddb.CollectionFinisher{
			meddb.NewIndexDescription(false, "user_id").Finisher(),
			meddb.NewIndexDescription(false, "uploaded_at").Finisher(),
			meddb.NewIndexDescription(false, "processing_status").Finisher(),
		},
	}
)

// Store owns the five record collections. It is the only write path
// for records and the single handle passed to everything above it.
type Store struct {
	access      *meddb.Access
	log         *zap.Logger
	users       *meddb.TypedCollection[User]
	medications *meddb.TypedCollection[Medication]
	reminders   *meddb.TypedCollection[Reminder]
	logs        *meddb.TypedCollection[MedicationLog]
	uploads     *meddb.TypedCollection[PrescriptionUpload]
}

// Open connects the five collections, creating them and their indexes
// on first use.
func Open(access *meddb.Access, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	store := &Store{access: access, log: log}

	var err error
	if store.users, err = meddb.ConnectTypedCollection[User](access, usersDefinition); err != nil {
		return nil, fmt.Errorf("open users: %w", err)
	}
	if store.medications, err = meddb.ConnectTypedCollection[Medication](access, medicationsDefinition); err != nil {
		return nil, fmt.Errorf("open medications: %w", err)
	}
	if store.reminders, err = meddb.ConnectTypedCollection[Reminder](access, remindersDefinition); err != nil {
		return nil, fmt.Errorf("open reminders: %w", err)
	}
	if store.logs, err = meddb.ConnectTypedCollection[MedicationLog](access, medicationLogsDefinition); err != nil {
		return nil, fmt.Errorf("open medication_logs: %w", err)
	}
	if store.uploads, err = meddb.ConnectTypedCollection[PrescriptionUpload](access, prescriptionUploadsDefinition); err != nil {
		return nil, fmt.Errorf("open prescription_uploads: %w", err)
	}

	return store, nil
}

// saveDocument inserts a record without an identifier or rewrites the
// whole document otherwise, writing a server-assigned ObjectID back
// into the record on insert.
func saveDocument[T any](ctx context.Context, c *meddb.TypedCollection[T], item meddb.Identifier) error {
	if item.ID().IsZero() {
		result, err := c.InsertOne(ctx, item)
		if err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
		if id, ok := result.InsertedID.(primitive.ObjectID); ok {
			item.SetID(id)
		}
		return nil
	}

	return c.Replace(ctx, item.IDFilter(), item)
}

// translateWrite maps a duplicate-key error from a unique index into a
// ValidationError naming the offending field. Other errors pass
// through unchanged.
func translateWrite(err error) error {
	if err == nil || !meddb.IsDuplicate(err) {
		return err
	}
	field := meddb.DuplicateKeyField(err)
	if field == "" {
		field = "unknown"
	}
	return &ValidationError{Field: field, Rule: RuleUnique}
}

// findOne runs a single-document lookup. Not-found is an absent
// result, not an error; the caller interprets it.
func findOne[T any](ctx context.Context, c *meddb.TypedCollection[T], filter bson.D) (*T, error) {
	item, err := c.Find(ctx, filter)
	if err != nil {
		if meddb.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func findAll[T any](ctx context.Context, c *meddb.TypedCollection[T], filter bson.D) ([]*T, error) {
	items := make([]*T, 0)
	err := c.Iterate(ctx, filter, func(item *T) error {
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

////////////////////////////////////////////////////////////////////////////////
// Users

// SaveUser validates and persists a user, inserting or rewriting the
// whole document. A username or email collision surfaces as a
// *ValidationError with the unique rule.
func (s *Store) SaveUser(ctx context.Context, user *User) error {
	if err := user.Validate(); err != nil {
		s.log.Warn("User validation failed", zap.Error(err))
		return err
	}
	if err := translateWrite(saveDocument(ctx, s.users, user)); err != nil {
		s.log.Error("Save user failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) UserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	user, err := findOne(ctx, s.users, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		s.log.Error("Find user failed", zap.Error(err))
	}
	return user, err
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*User, error) {
	user, err := findOne(ctx, s.users, bson.D{{Key: "username", Value: username}})
	if err != nil {
		s.log.Error("Find user failed", zap.Error(err))
	}
	return user, err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	user, err := findOne(ctx, s.users, bson.D{{Key: "email", Value: email}})
	if err != nil {
		s.log.Error("Find user failed", zap.Error(err))
	}
	return user, err
}

////////////////////////////////////////////////////////////////////////////////
// Medications

// SaveMedication validates and persists a medication. The update
// timestamp is refreshed unconditionally before the write.
func (s *Store) SaveMedication(ctx context.Context, medication *Medication) error {
	if err := medication.Validate(); err != nil {
		s.log.Warn("Medication validation failed", zap.Error(err))
		return err
	}
	medication.touch()
	if err := saveDocument(ctx, s.medications, medication); err != nil {
		s.log.Error("Save medication failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) MedicationByID(ctx context.Context, id primitive.ObjectID) (*Medication, error) {
	medication, err := findOne(ctx, s.medications, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		s.log.Error("Find medication failed", zap.Error(err))
	}
	return medication, err
}

// MedicationsByUser returns the user's medications, optionally only
// the active ones.
func (s *Store) MedicationsByUser(ctx context.Context, userID primitive.ObjectID, activeOnly bool) ([]*Medication, error) {
	filter := bson.D{{Key: "user_id", Value: userID}}
	if activeOnly {
		filter = append(filter, bson.E{Key: "is_active", Value: true})
	}
	medications, err := findAll(ctx, s.medications, filter)
	if err != nil {
		s.log.Error("Find medications failed", zap.Error(err))
	}
	return medications, err
}

////////////////////////////////////////////////////////////////////////////////
// Reminders

// SaveReminder validates and persists a reminder. The update timestamp
// is refreshed unconditionally before the write.
func (s *Store) SaveReminder(ctx context.Context, reminder *Reminder) error {
	if err := reminder.Validate(); err != nil {
		s.log.Warn("Reminder validation failed", zap.Error(err))
		return err
	}
	reminder.touch()
	if err := saveDocument(ctx, s.reminders, reminder); err != nil {
		s.log.Error("Save reminder failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) ReminderByID(ctx context.Context, id primitive.ObjectID) (*Reminder, error) {
	reminder, err := findOne(ctx, s.reminders, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		s.log.Error("Find reminder failed", zap.Error(err))
	}
	return reminder, err
}

func (s *Store) RemindersByUser(ctx context.Context, userID primitive.ObjectID) ([]*Reminder, error) {
	reminders, err := findAll(ctx, s.reminders, bson.D{{Key: "user_id", Value: userID}})
	if err != nil {
		s.log.Error("Find reminders failed", zap.Error(err))
	}
	return reminders, err
}

func (s *Store) RemindersByMedication(ctx context.Context, medicationID primitive.ObjectID) ([]*Reminder, error) {
	reminders, err := findAll(ctx, s.reminders, bson.D{{Key: "medication_id", Value: medicationID}})
	if err != nil {
		s.log.Error("Find reminders failed", zap.Error(err))
	}
	return reminders, err
}

// DueReminders returns reminders whose next-due time is at or before
// the given instant. Reminders with no next-due time never match.
func (s *Store) DueReminders(ctx context.Context, before time.Time, activeOnly bool) ([]*Reminder, error) {
	filter := bson.D{{Key: "next_due", Value: bson.D{{Key: "$lte", Value: before}}}}
	if activeOnly {
		filter = append(filter, bson.E{Key: "is_active", Value: true})
	}
	reminders, err := findAll(ctx, s.reminders, filter)
	if err != nil {
		s.log.Error("Find due reminders failed", zap.Error(err))
	}
	return reminders, err
}

////////////////////////////////////////////////////////////////////////////////
// Medication logs

// InsertMedicationLog validates and inserts a log entry. Logs are
// immutable; there is no corresponding save or update operation.
func (s *Store) InsertMedicationLog(ctx context.Context, log *MedicationLog) error {
	if err := log.Validate(); err != nil {
		s.log.Warn("Medication log validation failed", zap.Error(err))
		return err
	}
	result, err := s.logs.InsertOne(ctx, log)
	if err != nil {
		err = fmt.Errorf("insert item: %w", err)
		s.log.Error("Insert medication log failed", zap.Error(err))
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		log.SetID(id)
	}
	return nil
}

func (s *Store) MedicationLogByID(ctx context.Context, id primitive.ObjectID) (*MedicationLog, error) {
	log, err := findOne(ctx, s.logs, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		s.log.Error("Find medication log failed", zap.Error(err))
	}
	return log, err
}

func (s *Store) LogsByUser(ctx context.Context, userID primitive.ObjectID) ([]*MedicationLog, error) {
	logs, err := findAll(ctx, s.logs, bson.D{{Key: "user_id", Value: userID}})
	if err != nil {
		s.log.Error("Find medication logs failed", zap.Error(err))
	}
	return logs, err
}

func (s *Store) LogsByMedication(ctx context.Context, medicationID primitive.ObjectID) ([]*MedicationLog, error) {
	logs, err := findAll(ctx, s.logs, bson.D{{Key: "medication_id", Value: medicationID}})
	if err != nil {
		s.log.Error("Find medication logs failed", zap.Error(err))
	}
	return logs, err
}

func (s *Store) LogsByStatus(ctx context.Context, userID primitive.ObjectID, status string) ([]*MedicationLog, error) {
	logs, err := findAll(ctx, s.logs, bson.D{
		{Key: "user_id", Value: userID},
		{Key: "status", Value: status},
	})
	if err != nil {
		s.log.Error("Find medication logs failed", zap.Error(err))
	}
	return logs, err
}

// LogsTakenBetween returns the user's log entries with a taken-at time
// in [from, to).
func (s *Store) LogsTakenBetween(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]*MedicationLog, error) {
	logs, err := findAll(ctx, s.logs, bson.D{
		{Key: "user_id", Value: userID},
		{Key: "taken_at", Value: bson.D{{Key: "$gte", Value: from}, {Key: "$lt", Value: to}}},
	})
	if err != nil {
		s.log.Error("Find medication logs failed", zap.Error(err))
	}
	return logs, err
}

////////////////////////////////////////////////////////////////////////////////
// Prescription uploads

// SaveUpload validates and persists an upload record. The OCR pipeline
// saves the same record again after each status transition.
func (s *Store) SaveUpload(ctx context.Context, upload *PrescriptionUpload) error {
	if err := upload.Validate(); err != nil {
		s.log.Warn("Upload validation failed", zap.Error(err))
		return err
	}
	if err := saveDocument(ctx, s.uploads, upload); err != nil {
		s.log.Error("Save upload failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) UploadByID(ctx context.Context, id primitive.ObjectID) (*PrescriptionUpload, error) {
	upload, err := findOne(ctx, s.uploads, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		s.log.Error("Find upload failed", zap.Error(err))
	}
	return upload, err
}

func (s *Store) UploadsByUser(ctx context.Context, userID primitive.ObjectID) ([]*PrescriptionUpload, error) {
	uploads, err := findAll(ctx, s.uploads, bson.D{{Key: "user_id", Value: userID}})
	if err != nil {
		s.log.Error("Find uploads failed", zap.Error(err))
	}
	return uploads, err
}

func (s *Store) UploadsByStatus(ctx context.Context, status string) ([]*PrescriptionUpload, error) {
	uploads, err := findAll(ctx, s.uploads, bson.D{{Key: "processing_status", Value: status}})
	if err != nil {
		s.log.Error("Find uploads failed", zap.Error(err))
	}
	return uploads, err
}
