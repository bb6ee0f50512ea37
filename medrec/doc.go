// Package medrec defines the MEDIMORPH record types and their storage.
//
// Five document types are stored, one collection each: User,
// Medication, Reminder, MedicationLog and PrescriptionUpload. Each
// type carries its validation rules (applied at the write boundary by
// the Store) and a Serialize method producing the flat representation
// other layers depend on: identifiers as strings, timestamps as
// ISO-8601 strings or nil when unset, everything else verbatim.
//
// The Store owns the five typed collections and is the only write
// path. It is constructed with Open() from a meddb.Access handle and
// passed by reference; there is no package-level state.
package medrec
