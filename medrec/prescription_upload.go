package medrec

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KARTHIKRAIG/MEDIMORPH/meddb"
)

// Processing lifecycle of an uploaded prescription.
const (
	UploadPending    = "pending"
	UploadProcessing = "processing"
	UploadCompleted  = "completed"
	UploadFailed     = "failed"
)

func uploadStatuses() []string {
	return []string{UploadPending, UploadProcessing, UploadCompleted, UploadFailed}
}

// PrescriptionUpload tracks an uploaded prescription image through the
// OCR pipeline. The pipeline writes the extracted text, confidence and
// counts back through the lifecycle methods; this layer stores the
// fields without validating OCR content. A completed upload
// conceptually produces zero or more Medication records.
type PrescriptionUpload struct {
	meddb.Identity `bson:"inline"`

	UserID primitive.ObjectID `bson:"user_id"`

	Filename         string `bson:"filename"`
	OriginalFilename string `bson:"original_filename"`
	FilePath         string `bson:"file_path"`
	FileSize         int64  `bson:"file_size,omitempty"`
	MimeType         string `bson:"mime_type,omitempty"`

	ExtractedText  string  `bson:"extracted_text,omitempty"`
	OCRConfidence  float64 `bson:"ocr_confidence,omitempty"`
	ProcessingTime float64 `bson:"processing_time,omitempty"`

	MedicationsFound int `bson:"medications_found"`
	MedicationsAdded int `bson:"medications_added"`

	ProcessingStatus string `bson:"processing_status"`
	ErrorMessage     string `bson:"error_message,omitempty"`

	UploadedAt  time.Time `bson:"uploaded_at"`
	ProcessedAt time.Time `bson:"processed_at,omitempty"`
}

// NewPrescriptionUpload returns an upload record with defaults
// applied: pending, uploaded now, no medications found yet.
func NewPrescriptionUpload(userID primitive.ObjectID, filename, originalFilename, filePath string) *PrescriptionUpload {
	return &PrescriptionUpload{
		UserID:           userID,
		Filename:         filename,
		OriginalFilename: originalFilename,
		FilePath:         filePath,
		ProcessingStatus: UploadPending,
		UploadedAt:       time.Now().UTC(),
	}
}

// StoredFilename generates a unique name for storing an uploaded file,
// preserving the original extension.
func StoredFilename(original string) string {
	return uuid.New().String() + filepath.Ext(original)
}

// Validate checks field constraints,
// returning a *ValidationError for the first violation.
func (p *PrescriptionUpload) Validate() error {
	if err := checkRequiredID("user_id", p.UserID); err != nil {
		return err
	}
	if err := checkRequired("filename", p.Filename); err != nil {
		return err
	}
	if err := checkRequired("original_filename", p.OriginalFilename); err != nil {
		return err
	}
	if err := checkRequired("file_path", p.FilePath); err != nil {
		return err
	}
	return checkChoices("processing_status", p.ProcessingStatus, uploadStatuses())
}

// BeginProcessing marks the upload as picked up by the OCR pipeline.
func (p *PrescriptionUpload) BeginProcessing() {
	p.ProcessingStatus = UploadProcessing
}

// CompleteProcessing records the OCR results and marks the upload
// completed.
func (p *PrescriptionUpload) CompleteProcessing(
	extractedText string, confidence, processingTime float64, found, added int) {
	p.ExtractedText = extractedText
	p.OCRConfidence = confidence
	p.ProcessingTime = processingTime
	p.MedicationsFound = found
	p.MedicationsAdded = added
	p.ProcessingStatus = UploadCompleted
	p.ErrorMessage = ""
	p.ProcessedAt = time.Now().UTC()
}

// FailProcessing marks the upload failed with a diagnostic message.
func (p *PrescriptionUpload) FailProcessing(message string) {
	p.ProcessingStatus = UploadFailed
	p.ErrorMessage = message
	p.ProcessedAt = time.Now().UTC()
}

// Serialize returns the transport-safe representation of the upload.
// The server-side file path is not part of the contract and is
// omitted.
func (p *PrescriptionUpload) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":                hexID(p.ObjectID),
		"user_id":           hexID(p.UserID),
		"filename":          p.Filename,
		"original_filename": p.OriginalFilename,
		"file_size":         p.FileSize,
		"mime_type":         p.MimeType,
		"extracted_text":    p.ExtractedText,
		"ocr_confidence":    p.OCRConfidence,
		"processing_time":   p.ProcessingTime,
		"medications_found": p.MedicationsFound,
		"medications_added": p.MedicationsAdded,
		"processing_status": p.ProcessingStatus,
		"error_message":     p.ErrorMessage,
		"uploaded_at":       isoTime(p.UploadedAt),
		"processed_at":      isoTime(p.ProcessedAt),
	}
}
